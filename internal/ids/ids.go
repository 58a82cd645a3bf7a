// Package ids provides the identifier generator injected into code that
// creates bills, items and diners.
package ids

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces collision-free string identifiers.
type Generator interface {
	NewID() string
}

// UUID generates random (version 4) UUIDs.
type UUID struct{}

// NewID returns a new UUID string.
func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence generates predictable IDs ("<prefix>-1", "<prefix>-2", ...).
// Tests use it to make generated IDs deterministic.
type Sequence struct {
	Prefix string

	mu   sync.Mutex
	next int
}

// NewSequence returns a Sequence with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

// NewID returns the next ID in the sequence.
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	if s.Prefix == "" {
		return fmt.Sprintf("id-%d", s.next)
	}
	return fmt.Sprintf("%s-%d", s.Prefix, s.next)
}
