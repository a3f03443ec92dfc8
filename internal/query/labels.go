package query

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// LabelGenerator mints blank node labels.
// Implemented by UUIDLabels (production) and SequenceLabels (tests).
type LabelGenerator interface {
	Label() string
}

// UUIDLabels generates collision-free blank node labels from random UUIDs.
//
// Labels look like "b1f4c0ffee...". The "b" head keeps the label a valid
// blank node identifier even when the UUID starts with a digit.
//
// Thread-safety: UUIDLabels is stateless and safe for concurrent use.
type UUIDLabels struct{}

// Label returns a fresh label.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDLabels) Label() string {
	return "b" + strings.ReplaceAll(uuid.Must(uuid.NewRandom()).String(), "-", "")
}

// SequenceLabels returns predictable sequential labels for testing.
//
// This enables deterministic evaluation output and golden-file comparison.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceLabels struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceLabels creates a generator yielding prefix1, prefix2, ...
func NewSequenceLabels(prefix string) *SequenceLabels {
	return &SequenceLabels{prefix: prefix}
}

// Label returns the next label in the sequence.
func (s *SequenceLabels) Label() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s%d", s.prefix, s.n)
}
