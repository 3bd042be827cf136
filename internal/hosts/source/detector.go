package source

import (
	"time"

	"github.com/haukened/hostblock/internal/hosts/common/clock"
	"github.com/haukened/hostblock/internal/hosts/common/log"
	"github.com/haukened/hostblock/internal/hosts/domain"
)

// Detector decides whether the source file warrants a reload relative to
// the snapshot the current generation was built from. Implementations
// must be safe for concurrent use and must fail toward "no reload": a
// missing file or a file still being written keeps the current table.
type Detector interface {
	ShouldReload(last domain.Snapshot) bool
}

// StatDetector polls file metadata. A metadata change is only reported
// once two back-to-back samples taken ProbeInterval apart agree, so a
// file still being written is picked up on a later check instead of
// mid-write. Best effort: a writer can still race the probe; the design
// accepts eventual consistency.
type StatDetector struct {
	Path          string
	ProbeInterval time.Duration
	Clock         clock.Clock
	Logger        log.Logger
}

func (d *StatDetector) ShouldReload(last domain.Snapshot) bool {
	snap, err := Stat(d.Path)
	if err != nil {
		// unreadable now; keep serving the current generation
		return false
	}
	if snap.Equal(last) {
		return false
	}
	return d.stable()
}

// stable reports whether two metadata samples taken ProbeInterval apart
// agree.
func (d *StatDetector) stable() bool {
	first, err := Stat(d.Path)
	if err != nil {
		return false
	}
	d.Clock.Sleep(d.ProbeInterval)
	second, err := Stat(d.Path)
	if err != nil {
		return false
	}
	if !first.Equal(second) {
		d.Logger.Debug(map[string]any{"path": d.Path}, "source file mid-write, reload deferred")
		return false
	}
	return true
}

var _ Detector = (*StatDetector)(nil)
