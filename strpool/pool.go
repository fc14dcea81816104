// package strpool implements a string interner. Catalog entities keep
// references to the canonical copy of repeated strings (feature names, values,
// publishers, interfaces) instead of holding their own.
package strpool

// A Pool deduplicates strings. Strings returned by Add are the canonical copy
// and stay valid for the lifetime of the pool. There's no removal.
//
// A Pool is not safe for concurrent use.
type Pool struct {
	strs  map[string]string
	bytes int
}

// New returns an empty pool.
func New() *Pool {
	return &Pool{strs: make(map[string]string)}
}

// Add returns the canonical copy of s, adding it to the pool if necessary.
// Equal inputs always return strings sharing the same storage.
func (p *Pool) Add(s string) string {
	if s == "" {
		return ""
	}
	if p.strs == nil {
		p.strs = make(map[string]string)
	}
	if c, ok := p.strs[s]; ok {
		return c
	}

	// s may point into a larger buffer (a decoder token for example), take
	// our own copy so that we don't retain it.
	c := string([]byte(s))
	p.strs[c] = c
	p.bytes += len(c)
	return c
}

// AddBytes is like Add but avoids the allocation when b is already interned.
func (p *Pool) AddBytes(b []byte) string {
	if c, ok := p.strs[string(b)]; ok {
		return c
	}
	return p.Add(string(b))
}

// Len returns the number of distinct strings in the pool.
func (p *Pool) Len() int { return len(p.strs) }

// Size returns the cumulated size in bytes of the pooled strings.
func (p *Pool) Size() int { return p.bytes }
