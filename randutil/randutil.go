// Package randutil provides the randomness source shared by the
// allocation code. A bare rand.Rand is not safe for concurrent use, so
// the seeded generator handed to services is built on a locked source.
package randutil

import (
	"math/rand/v2"
	"sync"
)

type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

// NewLockedSource wraps src so that concurrent callers serialize their
// draws.
func NewLockedSource(src rand.Source) rand.Source {
	return &lockedSource{src: src}
}

// NewRand returns a seeded generator safe to share across request
// handlers.
func NewRand(seed1, seed2 uint64) *rand.Rand {
	return rand.New(NewLockedSource(rand.NewPCG(seed1, seed2)))
}
