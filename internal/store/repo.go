package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	From    time.Time // timestamp >= From
	Purpose string    // LLM events only; empty matches all
}

// SnapshotData is the persisted form of the learner's state.
type SnapshotData struct {
	Version        int                `json:"version"`
	Profile        *ProfileData       `json:"profile,omitempty"`
	Units          []UnitProgressData `json:"units,omitempty"`
	CurrentSession *SessionData       `json:"current_session,omitempty"`
}

// ProfileData mirrors the learner profile.
type ProfileData struct {
	Name             string `json:"name"`
	Experience       string `json:"experience"`
	Goal             string `json:"goal"`
	Level            string `json:"level"`
	XP               int    `json:"xp"`
	Streak           int    `json:"streak"`
	DailyGoalMinutes int    `json:"daily_goal_minutes"`
	Onboarded        bool   `json:"onboarded"`
}

// UnitProgressData is the per-user part of a unit. Content lives in the
// catalog and is not persisted.
type UnitProgressData struct {
	UnitID   string `json:"unit_id"`
	Locked   bool   `json:"locked"`
	Progress int    `json:"progress"`
}

// SessionData mirrors the in-progress lesson descriptor.
type SessionData struct {
	UnitID     string `json:"unit_id"`
	Step       int    `json:"step"`
	TotalSteps int    `json:"total_steps"`
	Review     bool   `json:"review"`
}

// Snapshot is a point-in-time save of SnapshotData.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Sequence is filled from the
	// global counter and a zero Timestamp with the current time.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error

	// Clear deletes every snapshot.
	Clear(ctx context.Context) error
}

// LLMRequestEventData captures a single LLM request.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStat aggregates token usage for one purpose or model.
type LLMUsageStat struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// Lesson event actions.
const (
	LessonStarted   = "start"
	LessonCompleted = "complete"
	LessonAbandoned = "abandon"
)

// LessonEventData captures a lesson lifecycle transition.
type LessonEventData struct {
	SessionID  string
	UnitID     string
	Action     string
	StepsDone  int
	TotalSteps int
	XPGained   int
	Duration   time.Duration
}

// AttemptEventData captures one scored attempt at a lesson item.
type AttemptEventData struct {
	SessionID  string
	UnitID     string
	ItemID     string
	Target     string
	Transcript string
	Score      int
	Feedback   string
	Fallback   bool
}

// AttemptSummary aggregates attempts for one unit.
type AttemptSummary struct {
	UnitID    string
	Attempts  int
	AvgScore  float64
	Fallbacks int
}

// ChatEventData captures one conversational turn.
type ChatEventData struct {
	SessionID string
	UnitID    string
	UserText  string
	Reply     string
	Fallback  bool
	LatencyMs int64
}

// EventRepo provides append and query access to practice events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsageStat, error)

	AppendLessonEvent(ctx context.Context, data LessonEventData) error
	// PracticeTimeSince sums the duration of lessons finished at or after since.
	PracticeTimeSince(ctx context.Context, since time.Time) (time.Duration, error)
	// CompletedLessons counts completed lessons per unit.
	CompletedLessons(ctx context.Context) (map[string]int, error)

	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error
	AttemptSummaries(ctx context.Context) ([]AttemptSummary, error)

	AppendChatEvent(ctx context.Context, data ChatEventData) error
	ChatTurns(ctx context.Context) (int, error)
}
