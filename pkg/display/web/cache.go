package web

import "github.com/cespare/xxhash"

// cache remembers the hashes of recently broadcast payloads, so that
// a scope that has not changed (a held note, silence) is not sent
// again.
type cache struct {
	hashes []uint64
	idx    int
	size   int
}

func newCache(size int) *cache {
	return &cache{
		hashes: make([]uint64, size),
		size:   size,
	}
}

// seen reports whether b was among the last payloads, and remembers
// it if not.
func (c *cache) seen(b []byte) bool {
	hash := xxhash.Sum64(b)
	if c.has(hash) {
		return true
	}
	c.add(hash)
	return false
}

func (c *cache) has(hash uint64) bool {
	for _, h := range c.hashes {
		if h == hash {
			return true
		}
	}

	return false
}

func (c *cache) add(hash uint64) {
	c.hashes[c.idx] = hash
	c.idx = (c.idx + 1) % c.size
}
