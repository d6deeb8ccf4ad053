package badger

import "fmt"

// Key prefixes for different data types
const (
	entryPrefix      = "entry"
	checkpointPrefix = "chkpt"
)

// makeEntryKey generates a key for a cached catalog entry by code.
// Format: entry:code
func makeEntryKey(code string) []byte {
	return []byte(fmt.Sprintf("%s:%s", entryPrefix, code))
}

// entryKeyPrefix matches every cached catalog entry.
func entryKeyPrefix() []byte {
	return []byte(entryPrefix + ":")
}

// makeCheckpointKey generates a key for a named build checkpoint.
// Format: chkpt:name
func makeCheckpointKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", checkpointPrefix, name))
}
