// Package rng provides the random sources the game engine draws from.
// The engine never generates entropy itself; a Source is injected so tests
// can replay fixed sequences.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	mathrand "math/rand"
)

// ErrUnavailable is returned when a source cannot produce a value.
var ErrUnavailable = errors.New("rng: random source unavailable")

// Source supplies uniformly distributed 32-bit values.
type Source interface {
	// Uint32 returns the next value. Salt is an opaque per-call
	// disambiguator; sources that do not need it ignore it.
	Uint32(salt string) (uint32, error)
}

// New returns a Seeded source for a non-zero seed and a Crypto source otherwise.
func New(seed int64) Source {
	if seed == 0 {
		return Crypto{}
	}
	return NewSeeded(seed)
}

// Crypto reads from the operating system CSPRNG.
type Crypto struct{}

// Uint32 implements Source.
func (Crypto) Uint32(_ string) (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Seeded is a reproducible source backed by math/rand.
type Seeded struct {
	rng *mathrand.Rand
}

// NewSeeded creates a source that yields the same sequence for the same seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: mathrand.New(mathrand.NewSource(seed))}
}

// Uint32 implements Source.
func (s *Seeded) Uint32(_ string) (uint32, error) {
	return s.rng.Uint32(), nil
}

// Sequence returns queued values in order. Once drained every call fails
// with ErrUnavailable.
type Sequence struct {
	values []uint32
	salts  []string
}

// NewSequence creates a source that replays values.
func NewSequence(values ...uint32) *Sequence {
	return &Sequence{values: values}
}

// Uint32 implements Source.
func (s *Sequence) Uint32(salt string) (uint32, error) {
	if len(s.values) == 0 {
		return 0, fmt.Errorf("%w: sequence exhausted", ErrUnavailable)
	}
	v := s.values[0]
	s.values = s.values[1:]
	s.salts = append(s.salts, salt)
	return v, nil
}

// Remaining reports how many queued values are left.
func (s *Sequence) Remaining() int {
	return len(s.values)
}

// Salts returns the salts seen so far, in call order.
func (s *Sequence) Salts() []string {
	return append([]string(nil), s.salts...)
}
