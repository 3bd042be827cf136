// Package intern deduplicates target-address strings within one table
// generation. Thousands of blocked domains typically sink to a handful of
// addresses (most often a null address), so entries share one handle per
// distinct address instead of each owning a copy.
package intern

// Pool maps address text to its shared handle. A Pool is built
// single-threaded during a load and is read-only afterwards; it is not
// safe for concurrent mutation.
type Pool struct {
	handles map[string]*string
}

// New returns an empty Pool. Each table generation gets a fresh one;
// handle identity is never guaranteed across generations.
func New() *Pool {
	return &Pool{handles: make(map[string]*string)}
}

// Intern returns the shared handle for text, creating it on first use.
// Identical text always yields the identical pointer within one Pool.
func (p *Pool) Intern(text string) *string {
	if h, ok := p.handles[text]; ok {
		return h
	}
	h := new(string)
	*h = text
	p.handles[text] = h
	return h
}

// Len returns the number of distinct addresses interned.
func (p *Pool) Len() int {
	return len(p.handles)
}
