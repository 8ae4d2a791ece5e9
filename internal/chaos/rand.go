package chaos

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand is the source of randomness shared by the latency simulator, the
// failure injector and order id generation. Implementations must be safe
// for concurrent use.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a seedable Rand. A zero seed picks a time-based seed, so
// production runs differ while tests can pin the sequence.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1))}
}

// lockedRand guards a single generator so concurrent request handlers can
// draw from it without corrupting its state.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
