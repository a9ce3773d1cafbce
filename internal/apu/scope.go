package apu

import "sync"

// ScopeSize is the number of samples kept by the scope.
const ScopeSize = 1024

// Scope is a ring buffer holding the most recent samples, read by
// the front panel and the plots while the audio path writes to it.
type Scope struct {
	data          []int16
	writePosition int
	filled        bool
	sync.RWMutex
}

// NewScope returns a Scope holding size samples.
func NewScope(size int) *Scope {
	return &Scope{data: make([]int16, size)}
}

// Write appends samples, overwriting the oldest ones.
func (s *Scope) Write(samples []int16) {
	s.Lock()
	defer s.Unlock()
	for _, v := range samples {
		s.data[s.writePosition] = v
		s.writePosition++
		if s.writePosition == len(s.data) {
			s.writePosition = 0
			s.filled = true
		}
	}
}

// Snapshot returns the held samples, oldest first.
func (s *Scope) Snapshot() []int16 {
	s.RLock()
	defer s.RUnlock()
	if !s.filled {
		return append([]int16(nil), s.data[:s.writePosition]...)
	}
	out := make([]int16, 0, len(s.data))
	out = append(out, s.data[s.writePosition:]...)
	return append(out, s.data[:s.writePosition]...)
}
