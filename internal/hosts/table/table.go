// Package table holds one immutable generation of the override table and
// answers lookups against it. Generations are replaced whole on reload,
// never mutated in place.
package table

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/haukened/hostblock/internal/hosts/domain"
)

// bloomFPRate is the target false-positive rate for the per-generation
// prefilter. False positives only cost the map probes the filter exists
// to skip.
const bloomFPRate = 0.01

// Table is one generation: the entry map (canonical domain → shared
// address handle), a Bloom prefilter over its keys, and the file snapshot
// that produced it.
type Table struct {
	entries   map[string]*string
	filter    *bloom.BloomFilter
	snapshot  domain.Snapshot
	addresses int
}

// Build assembles a generation from parsed entries. addresses is the
// distinct-address count of the pool the handles came from.
func Build(entries map[string]*string, addresses int, snap domain.Snapshot) *Table {
	t := &Table{
		entries:   entries,
		snapshot:  snap,
		addresses: addresses,
	}
	if len(entries) > 0 {
		f := bloom.NewWithEstimates(uint(len(entries)), bloomFPRate)
		for k := range entries {
			f.AddString(k)
		}
		t.filter = f
	}
	return t
}

// Empty returns a generation with no entries and no snapshot guarantee,
// used before the first successful load.
func Empty() *Table {
	return &Table{entries: map[string]*string{}}
}

// Snapshot returns the file metadata this generation was built from.
func (t *Table) Snapshot() domain.Snapshot { return t.snapshot }

// Len returns the number of domain entries in this generation.
func (t *Table) Len() int { return len(t.entries) }

// Addresses returns the number of distinct addresses in this generation.
func (t *Table) Addresses() int { return t.addresses }

// Lookup resolves a canonical name to a block decision.
//
// Matching order: exact entry first, then each dot-suffix of the name from
// most specific to least. Suffix candidates keep their leading dot, so a
// wildcard entry ".ads.example.com" matches "x.ads.example.com" but never
// the bare "ads.example.com".
func (t *Table) Lookup(name string) domain.Decision {
	if !t.mightMatch(name) {
		return domain.EmptyDecision()
	}
	if addr, ok := t.entries[name]; ok {
		return domain.Decision{Blocked: true, Address: *addr}
	}
	for i := strings.IndexByte(name, '.'); i >= 0; {
		if addr, ok := t.entries[name[i:]]; ok {
			return domain.Decision{Blocked: true, Address: *addr}
		}
		j := strings.IndexByte(name[i+1:], '.')
		if j < 0 {
			break
		}
		i += 1 + j
	}
	return domain.EmptyDecision()
}

// mightMatch is the Bloom early-allow gate: false means neither the name
// nor any of its suffix candidates can be present, so the caller skips the
// map probes entirely. With no filter loaded it returns true to let the
// authoritative map answer.
func (t *Table) mightMatch(name string) bool {
	if t.filter == nil {
		return true
	}
	if t.filter.TestString(name) {
		return true
	}
	for i := strings.IndexByte(name, '.'); i >= 0; {
		if t.filter.TestString(name[i:]) {
			return true
		}
		j := strings.IndexByte(name[i+1:], '.')
		if j < 0 {
			break
		}
		i += 1 + j
	}
	return false
}
