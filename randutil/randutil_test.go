package randutil

import (
	"sync"
	"testing"
)

func TestNewRand_Deterministic(t *testing.T) {
	a := NewRand(1, 2)
	b := NewRand(1, 2)
	for i := 0; i < 100; i++ {
		if got, want := a.Uint64(), b.Uint64(); got != want {
			t.Fatalf("draw %d diverged: %d vs %d", i, got, want)
		}
	}
}

func TestNewRand_ConcurrentDraws(t *testing.T) {
	rng := NewRand(3, 4)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if n := rng.IntN(10); n < 0 || n >= 10 {
					t.Errorf("draw out of range: %d", n)
					return
				}
			}
		}()
	}
	wg.Wait()
}
