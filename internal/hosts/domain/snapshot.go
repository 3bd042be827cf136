package domain

import "time"

// Snapshot captures source-file metadata at the moment a table generation
// was built: modification time (seconds and nanoseconds, as reported by
// stat) and byte size. The zero value means the file has never been
// observed.
type Snapshot struct {
	ModTime time.Time
	Size    int64
}

// Equal reports whether two snapshots describe the same file state.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Size == o.Size && s.ModTime.Equal(o.ModTime)
}

// IsZero reports whether the snapshot has never observed a file.
func (s Snapshot) IsZero() bool {
	return s.ModTime.IsZero() && s.Size == 0
}
