package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	// top 53 bits fill a float64 mantissa
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// DefaultRNG is the source used for real draws.
func DefaultRNG() RandomSource { return cryptoRNG{} }

// seededRNG is reproducible, for tests and simulations. It is safe for
// concurrent use.
type seededRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededRNG returns a deterministic source for the given seed.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// FixedRNG replays the given values in order and then repeats the last one.
type FixedRNG struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewFixedRNG returns a source that yields values in order.
func NewFixedRNG(values ...float64) *FixedRNG {
	return &FixedRNG{values: values}
}

func (f *FixedRNG) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.values) == 0 {
		return 0
	}
	if f.next >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.next]
	f.next++
	return v
}
