package corpus

import "github.com/poiesic/speechwatch/core"

// UnknownSpeaker is the grouping key for transcripts without a speaker ID.
const UnknownSpeaker = "unknown"

// Aggregate recomputes corpus statistics from scratch. Topic and rhetoric
// counts are per quote: a label is counted once for every quote carrying it.
func Aggregate(transcripts []core.Transcript) core.Stats {
	stats := core.Stats{
		TotalTranscripts: len(transcripts),
		BySpeaker:        make(map[string]int),
		ByTopic:          make(map[string]int),
		ByRhetoric:       make(map[string]int),
	}

	for i := range transcripts {
		t := &transcripts[i]

		speaker := t.SpeakerID
		if speaker == "" {
			speaker = UnknownSpeaker
		}
		stats.BySpeaker[speaker]++

		for _, q := range t.Quotes() {
			stats.TotalQuotes++
			for _, label := range q.Categories {
				stats.ByTopic[label]++
			}
			for _, label := range q.Rhetoric {
				stats.ByRhetoric[label]++
			}
		}
	}

	return stats
}
