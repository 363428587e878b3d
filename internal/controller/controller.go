package controller

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/speakflow/internal/logging"
	"github.com/abhisek/speakflow/internal/progress"
	"github.com/abhisek/speakflow/internal/store"
)

// Journal records lesson lifecycle events. store.EventRepo satisfies it.
type Journal interface {
	AppendLessonEvent(ctx context.Context, data store.LessonEventData) error
}

// Controller owns the active view and routes every state change through
// the progress store.
type Controller struct {
	store   *progress.Store
	journal Journal
	log     *logging.Logger
	now     func() time.Time

	view View

	lessonID    string
	lessonStart time.Time
}

// New creates a controller positioned at the initial view for the
// store's state. journal may be nil.
func New(st *progress.Store, journal Journal, log *logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		store:   st,
		journal: journal,
		log:     log.With("component", "controller"),
		now:     time.Now,
		view:    InitialView(st.State()),
	}
}

// View returns the active view.
func (c *Controller) View() View { return c.view }

// State returns a copy of the application state.
func (c *Controller) State() progress.AppState { return c.store.State() }

// Subscribe registers fn to be called after every committed state change.
func (c *Controller) Subscribe(fn func(progress.AppState)) (unsubscribe func()) {
	return c.store.Subscribe(fn)
}

// LessonSessionID identifies the lesson in progress, or "" outside a
// lesson.
func (c *Controller) LessonSessionID() string { return c.lessonID }

// Dispatch applies e. It returns the resulting view and whether anything
// changed. State changes are persisted before subscribers see them.
func (c *Controller) Dispatch(ctx context.Context, e Event) (View, bool) {
	prev := c.view
	state := c.store.State()

	next, nextState, mutated := Transition(prev, state, e)
	if mutated {
		if err := c.store.Update(ctx, func(s *progress.AppState) { *s = nextState }); err != nil {
			c.log.Error("state update rejected", "event", eventName(e), "error", err)
			return prev, false
		}
	}

	c.view = next
	c.journalLesson(ctx, prev, next, state, e)

	changed := mutated || next != prev
	if changed {
		c.log.Debug("dispatch", "event", eventName(e), "from", prev.Kind.String(), "to", next.Kind.String(), "unit", next.UnitID)
	}
	return next, changed
}

func (c *Controller) journalLesson(ctx context.Context, prev, next View, before progress.AppState, e Event) {
	switch {
	case prev.Kind != KindLesson && next.Kind == KindLesson:
		c.lessonID = uuid.NewString()
		c.lessonStart = c.now()
		c.appendLesson(ctx, store.LessonEventData{
			UnitID:     next.UnitID,
			Action:     store.LessonStarted,
			TotalSteps: totalSteps(before, next.UnitID),
		})

	case prev.Kind == KindLesson && next.Kind != KindLesson:
		data := store.LessonEventData{
			UnitID:     prev.UnitID,
			Action:     store.LessonAbandoned,
			TotalSteps: totalSteps(before, prev.UnitID),
			Duration:   c.now().Sub(c.lessonStart),
		}
		if cs := before.CurrentSession; cs != nil {
			data.StepsDone = cs.Step
		}
		if done, ok := e.(SessionCompleted); ok {
			data.Action = store.LessonCompleted
			data.StepsDone = data.TotalSteps
			data.XPGained = done.XPGained
		}
		c.appendLesson(ctx, data)
		c.lessonID = ""
	}
}

func (c *Controller) appendLesson(ctx context.Context, data store.LessonEventData) {
	if c.journal == nil {
		return
	}
	data.SessionID = c.lessonID
	if err := c.journal.AppendLessonEvent(ctx, data); err != nil {
		c.log.Warn("failed to record lesson event", "action", data.Action, "error", err)
	}
}

func totalSteps(s progress.AppState, unitID string) int {
	if u, ok := s.Unit(unitID); ok {
		return len(u.Items)
	}
	return 0
}

func eventName(e Event) string {
	switch e.(type) {
	case ProfileSubmitted:
		return "profile_submitted"
	case UnitSelected:
		return "unit_selected"
	case StepAdvanced:
		return "step_advanced"
	case Back:
		return "back"
	case SessionCompleted:
		return "session_completed"
	}
	return "unknown"
}
