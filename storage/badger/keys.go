package badger

// Key prefixes for different data types
const (
	checkpointPrefix = "chkpt:"
)

// makeCheckpointKey generates a key for a source checkpoint.
// Format: prefix + source name
func makeCheckpointKey(source string) []byte {
	buf := make([]byte, 0, len(checkpointPrefix)+len(source))
	buf = append(buf, checkpointPrefix...)
	return append(buf, source...)
}
