// Package dice provides die sources for the game engine.
//
// Seeded rolls a fair six-sided die from an explicit seed, so a game can be
// replayed by reusing the seed. Sequence replays a fixed list of values.
package dice

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"sync"
)

// Sides is the number of faces on the game's die
const Sides = 6

var ErrSequenceExhausted = errors.New("dice sequence exhausted")

// Seeded rolls a uniform die in 1..Sides. It is safe for concurrent use.
type Seeded struct {
	seed int64
	mu   sync.Mutex
	rng  *rand.Rand
}

// NewSeeded creates a die source from seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the source was created with
func (s *Seeded) Seed() int64 {
	return s.seed
}

// Roll returns the next die value
func (s *Seeded) Roll(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Intn is exclusive, so +1 makes Sides reachable
	return s.rng.Intn(Sides) + 1, nil
}

// Sequence replays a fixed list of values in order
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequence creates a source that returns values in order
func NewSequence(values ...int) *Sequence {
	copied := make([]int, len(values))
	copy(copied, values)
	return &Sequence{values: copied}
}

// Roll returns the next value, or ErrSequenceExhausted when none are left
func (s *Sequence) Roll(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.values) {
		return 0, ErrSequenceExhausted
	}
	v := s.values[s.next]
	s.next++
	return v, nil
}

// Remaining returns how many values have not been rolled yet
func (s *Sequence) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values) - s.next
}

// NewSeed generates a random seed using crypto/rand
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
