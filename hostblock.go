// Package hostblock implements a self-reloading, concurrently readable
// domain override table backed by a hosts-style text file. A DNS resolver
// asks it one question per query: is this name blocked, and if so, what
// address should be returned instead of performing normal resolution.
//
// The table is replaced whole whenever the source file changes; there is
// no incremental update. Lookups proceed in parallel under a read lock
// and only serialize behind the rare reload.
package hostblock

import (
	"errors"
	"sync"
	"time"

	"github.com/haukened/hostblock/internal/hosts/cache"
	"github.com/haukened/hostblock/internal/hosts/common/clock"
	"github.com/haukened/hostblock/internal/hosts/common/log"
	"github.com/haukened/hostblock/internal/hosts/common/utils"
	"github.com/haukened/hostblock/internal/hosts/config"
	"github.com/haukened/hostblock/internal/hosts/domain"
	"github.com/haukened/hostblock/internal/hosts/source"
	"github.com/haukened/hostblock/internal/hosts/table"
)

const defaultProbeInterval = time.Millisecond

// ErrNoPath is returned by New when Options.Path is empty.
var ErrNoPath = errors.New("hostblock: Options.Path is required")

// Options configures a Manager. Path is required; everything else has a
// usable zero value.
type Options struct {
	// Path is the override source file, one `<address> <domain>` pair per
	// line.
	Path string

	// ProbeInterval is the delay between the two metadata samples of the
	// mid-write stability check. Defaults to 1ms.
	ProbeInterval time.Duration

	// CacheSize bounds the per-name decision cache. 0 disables caching.
	CacheSize int

	// Watch switches change detection from per-lookup stat polling to
	// fsnotify events in front of the same metadata compare.
	Watch bool

	// Clock overrides the wall clock, for tests.
	Clock clock.Clock
}

// Stats reports the size of the current table generation plus reload and
// cache counters.
type Stats struct {
	Domains   int
	Addresses int

	// Reloads counts successful generation replacements, including the
	// initial load.
	Reloads uint64

	CacheHits      uint64
	CacheMisses    uint64
	CacheEvictions uint64
}

// Manager owns the current table generation and coordinates
// reload-or-lookup under a reader/writer lock. Construct one per source
// file with New and share it by reference; there is no package-level
// instance, so the operative path is always the one the owner chose.
type Manager struct {
	mu       sync.RWMutex
	path     string
	detector source.Detector
	table    *table.Table
	cache    cache.DecisionCache
	logger   log.Logger
	reloads  uint64 // guarded by mu
	closer   func() error
}

// New builds a Manager and performs the initial load. A missing or
// unreadable source file is not fatal: the Manager starts empty
// (nothing blocked) and picks the file up once it appears.
func New(opts Options) (*Manager, error) {
	if opts.Path == "" {
		return nil, ErrNoPath
	}
	if opts.ProbeInterval <= 0 {
		opts.ProbeInterval = defaultProbeInterval
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	logger := log.GetLogger()

	dc, err := cache.New(opts.CacheSize)
	if err != nil {
		return nil, err
	}

	stat := &source.StatDetector{
		Path:          opts.Path,
		ProbeInterval: opts.ProbeInterval,
		Clock:         opts.Clock,
		Logger:        logger,
	}
	var detector source.Detector = stat
	closer := func() error { return nil }
	if opts.Watch {
		nd, err := source.NewNotifyDetector(stat)
		if err != nil {
			return nil, err
		}
		detector = nd
		closer = nd.Close
	}

	m := &Manager{
		path:     opts.Path,
		detector: detector,
		table:    table.Empty(),
		cache:    dc,
		logger:   logger,
		closer:   closer,
	}

	m.mu.Lock()
	m.reload()
	m.mu.Unlock()

	return m, nil
}

// NewFromEnv builds a Manager from HOSTS_* environment variables and
// configures package logging from the same source. See the internal
// config package for the variable set and defaults.
func NewFromEnv() (*Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		return nil, err
	}
	return New(Options{
		Path:          cfg.Path,
		ProbeInterval: time.Duration(cfg.ProbeIntervalMS) * time.Millisecond,
		CacheSize:     cfg.CacheSize,
		Watch:         cfg.Watch,
	})
}

// ConfigureLogging adjusts the package's structured logging. env is "dev"
// or "prod"; level is one of debug, info, warn, error.
func ConfigureLogging(env, level string) error {
	return log.Configure(env, level)
}

// CheckDomain reports whether name is blocked and, if so, the substitute
// address to return in place of normal resolution. The name is matched
// case-insensitively, exact entries first, then suffix wildcards from
// most specific to least.
//
// CheckDomain never fails: a missing or mid-write source file simply
// leaves the previous answer set in place, and an empty table blocks
// nothing.
func (m *Manager) CheckDomain(name string) (bool, string) {
	cn := utils.CanonicalHostName(name)

	m.mu.RLock()
	if !m.detector.ShouldReload(m.table.Snapshot()) {
		d := m.decide(cn)
		m.mu.RUnlock()
		return d.Blocked, d.Address
	}
	m.mu.RUnlock()

	m.mu.Lock()
	// Re-check: another goroutine may have reloaded while we waited for
	// the write lock.
	if m.detector.ShouldReload(m.table.Snapshot()) {
		m.reload()
	}
	d := m.decide(cn)
	m.mu.Unlock()
	return d.Blocked, d.Address
}

// ForceReload replaces the current generation regardless of what the
// change detector reports. Administrative and test use.
func (m *Manager) ForceReload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger.Info(map[string]any{"path": m.path}, "forcing override table reload")
	m.reload()
}

// Stats returns current table sizes and cumulative counters.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hits, misses, evictions := m.cache.Stats()
	return Stats{
		Domains:        m.table.Len(),
		Addresses:      m.table.Addresses(),
		Reloads:        m.reloads,
		CacheHits:      hits,
		CacheMisses:    misses,
		CacheEvictions: evictions,
	}
}

// Close releases the change-detection watch when one exists. Lookups keep
// working against the current generation afterwards; only automatic
// change detection stops. No-op in polling mode.
func (m *Manager) Close() error {
	return m.closer()
}

// decide runs the cache → table pipeline for a canonical name. Callers
// hold m.mu in either mode; the cache is internally synchronized.
func (m *Manager) decide(cn string) domain.Decision {
	if d, ok := m.cache.Get(cn); ok {
		return d
	}
	d := m.table.Lookup(cn)
	m.cache.Put(cn, d)
	return d
}

// reload replaces the generation from the source file. Callers hold m.mu
// exclusively. Failures keep the current generation untouched.
func (m *Manager) reload() {
	t, err := source.Load(m.path, m.logger)
	if err != nil {
		m.logger.Warn(map[string]any{
			"path":  m.path,
			"error": err.Error(),
		}, "override source unavailable, keeping current table")
		return
	}
	m.table = t
	m.cache.Purge()
	m.reloads++
}
