package corpus

import "github.com/poiesic/speechwatch/core"

// MergeResult is the outcome of Merge.
type MergeResult struct {
	Transcripts []core.Transcript
	Added       int // incoming records admitted
	Duplicates  int // incoming records dropped because their ID was already present
	Skipped     int // incoming records dropped because they had no ID
}

// Merge appends the records of incoming whose IDs are not yet present to a
// copy of existing. The result keeps existing in order, followed by admitted
// records in their incoming order. Records are never modified or removed, so
// merging the same batch twice gives the same result as merging it once.
func Merge(existing, incoming []core.Transcript) MergeResult {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]core.Transcript, 0, len(existing)+len(incoming))
	for _, t := range existing {
		seen[t.ID] = struct{}{}
		merged = append(merged, t)
	}

	res := MergeResult{}
	for _, t := range incoming {
		if t.ID == "" {
			res.Skipped++
			continue
		}
		if _, ok := seen[t.ID]; ok {
			res.Duplicates++
			continue
		}
		seen[t.ID] = struct{}{}
		merged = append(merged, t)
		res.Added++
	}

	res.Transcripts = merged
	return res
}

// AdoptExistingIDs returns a copy of incoming in which every record whose
// canonical source URL matches a transcript in existing carries that
// transcript's ID, so Merge counts it as a duplicate. Stored transcripts keep
// the IDs they were saved with. The second result is the number of records
// whose ID changed.
func AdoptExistingIDs(existing, incoming []core.Transcript) ([]core.Transcript, int) {
	byURL := make(map[string]string, len(existing))
	for _, t := range existing {
		if t.SourceURL == "" {
			continue
		}
		key := core.CanonicalURL(t.SourceURL)
		if _, ok := byURL[key]; !ok {
			byURL[key] = t.ID
		}
	}

	out := make([]core.Transcript, len(incoming))
	copy(out, incoming)
	adopted := 0
	for i := range out {
		if out[i].SourceURL == "" {
			continue
		}
		id, ok := byURL[core.CanonicalURL(out[i].SourceURL)]
		if !ok || id == out[i].ID {
			continue
		}
		out[i].Rekey(id)
		adopted++
	}
	return out, adopted
}
