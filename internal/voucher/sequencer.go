package voucher

import (
	"fmt"
	"time"
)

// Sequencer issues voucher ids for one conversion run.
// The sequence is shared by all categories and starts at 1.
type Sequencer struct {
	day  string
	next int
}

// NewSequencer creates a sequencer stamped with now's date
func NewSequencer(now time.Time) *Sequencer {
	return &Sequencer{day: now.Format("20060102"), next: 1}
}

// Next returns the id for c and advances the sequence
func (s *Sequencer) Next(c Category) string {
	id := fmt.Sprintf("%s-%s-%03d", c.Prefix(), s.day, s.next)
	s.next++
	return id
}
