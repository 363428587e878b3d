// Package lesson sequences the items of a unit into a practice session.
package lesson

import (
	"errors"

	"github.com/abhisek/speakflow/internal/content"
	"github.com/abhisek/speakflow/internal/recording"
)

// XPPerItem is the experience awarded for each item in a completed lesson.
const XPPerItem = 10

// ErrEmptyUnit is returned when a lesson is started on a unit with no items.
var ErrEmptyUnit = errors.New("unit has no items")

// Stepper walks a unit's items in order, one recording cycle per item.
type Stepper struct {
	unit  content.Unit
	index int
	cycle *recording.Cycle
	done  bool
}

// NewStepper creates a stepper positioned at the first item of unit.
func NewStepper(unit content.Unit) (*Stepper, error) {
	if len(unit.Items) == 0 {
		return nil, ErrEmptyUnit
	}
	u := unit.Clone()
	return &Stepper{
		unit:  u,
		cycle: recording.New(u.Items[0].Text),
	}, nil
}

// Unit returns the unit being practiced.
func (s *Stepper) Unit() content.Unit { return s.unit }

// Index is the zero-based position of the current item.
func (s *Stepper) Index() int { return s.index }

// Total is the number of items in the lesson.
func (s *Stepper) Total() int { return len(s.unit.Items) }

// Item returns the current item.
func (s *Stepper) Item() content.LessonItem { return s.unit.Items[s.index] }

// Cycle returns the recording cycle for the current item.
func (s *Stepper) Cycle() *recording.Cycle { return s.cycle }

// Done reports whether the lesson has completed.
func (s *Stepper) Done() bool { return s.done }

// Progress is the percentage of items passed so far, for the progress bar.
func (s *Stepper) Progress() int {
	if s.done {
		return 100
	}
	return s.index * 100 / len(s.unit.Items)
}

// Advance moves to the next item with a fresh recording cycle. On the
// last item it completes the lesson and returns the XP earned; further
// calls do nothing.
func (s *Stepper) Advance() (xpGained int, completed bool) {
	if s.done {
		return 0, false
	}
	if s.index < len(s.unit.Items)-1 {
		s.index++
		s.cycle = recording.New(s.unit.Items[s.index].Text)
		return 0, false
	}
	s.done = true
	return len(s.unit.Items) * XPPerItem, true
}
