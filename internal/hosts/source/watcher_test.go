package source

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/hostblock/internal/hosts/common/clock"
	"github.com/haukened/hostblock/internal/hosts/domain"
)

func TestNotifyDetector_StartsDirtyThenQuiets(t *testing.T) {
	path := writeFile(t, "0.0.0.0 ads.example.com\n")
	last, err := Stat(path)
	require.NoError(t, err)

	nd, err := NewNotifyDetector(newStatDetector(path, clock.RealClock{}))
	require.NoError(t, err)
	defer nd.Close()

	// starts dirty, but the metadata matches the snapshot, so this first
	// check clears the flag
	assert.False(t, nd.ShouldReload(last))

	// once clean, the hint short-circuits even a snapshot that differs
	assert.False(t, nd.ShouldReload(domain.Snapshot{}))
}

func TestNotifyDetector_ReportsAfterWrite(t *testing.T) {
	path := writeFile(t, "0.0.0.0 ads.example.com\n")
	last, err := Stat(path)
	require.NoError(t, err)

	nd, err := NewNotifyDetector(newStatDetector(path, clock.RealClock{}))
	require.NoError(t, err)
	defer nd.Close()

	// clear the initial dirty flag
	require.False(t, nd.ShouldReload(last))

	// modify the file with a different size; the watch goroutine flags it
	require.NoError(t, os.WriteFile(path, []byte("0.0.0.0 ads.example.com\n0.0.0.0 more.example.com\n"), 0o644))

	assert.Eventually(t, func() bool {
		return nd.ShouldReload(last)
	}, 2*time.Second, 10*time.Millisecond, "write should be observed and reported")
}

func TestNotifyDetector_MissingFileReportsNothing(t *testing.T) {
	path := writeFile(t, "0.0.0.0 ads.example.com\n")
	last, err := Stat(path)
	require.NoError(t, err)

	nd, err := NewNotifyDetector(newStatDetector(path, clock.RealClock{}))
	require.NoError(t, err)
	defer nd.Close()

	require.NoError(t, os.Remove(path))

	assert.Eventually(t, func() bool {
		// the remove event sets the dirty flag, but the failed stat keeps
		// the answer at "no reload"
		return !nd.ShouldReload(last)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNotifyDetector_Close(t *testing.T) {
	path := writeFile(t, "0.0.0.0 ads.example.com\n")

	nd, err := NewNotifyDetector(newStatDetector(path, clock.RealClock{}))
	require.NoError(t, err)

	assert.NoError(t, nd.Close())
}
