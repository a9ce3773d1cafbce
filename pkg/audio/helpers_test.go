package audio

import "sync/atomic"

type countingSource struct {
	n atomic.Int64
}

func (c *countingSource) Samples(out []int16) int {
	c.n.Add(int64(len(out)))
	return len(out)
}

func (c *countingSource) SampleRate() int { return 8000 }

func (c *countingSource) count() int64 { return c.n.Load() }
