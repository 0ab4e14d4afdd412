package store

import (
	"clementus360/momentum/types"
	"time"
)

// Store is the persistence contract the daily engine depends on. The Supabase
// client and the in-memory store both implement it. All query methods return
// rows in a stable order so the engine's "first match" reads are deterministic.
type Store interface {
	InsertGoal(goal *types.Goal) error
	UpdateGoal(goal *types.Goal) error
	// DeleteGoal cascades to the goal's moves and progress records.
	DeleteGoal(goalID string) error
	// CurrentGoal returns the earliest-created goal that is not completed,
	// or nil when none exists.
	CurrentGoal() (*types.Goal, error)
	Goals() ([]types.Goal, error)

	InsertMove(move *types.Move) error
	UpdateMove(move *types.Move) error
	DeleteMove(moveID string) error
	// MovesForGoal returns the goal's moves ordered by creation time.
	MovesForGoal(goalID string) ([]types.Move, error)
	GetMove(moveID string) (*types.Move, error)

	InsertProgress(progress *types.DailyProgress) error
	DeleteProgress(progressID string) error
	// ProgressForDay returns the goal's progress records whose date falls on
	// the same local calendar day, ordered by creation time.
	ProgressForDay(goalID string, day time.Time) ([]types.DailyProgress, error)
	// RecentCompletions returns non-skipped progress records that reference a
	// move, most recent first, capped at limit.
	RecentCompletions(goalID string, limit int) ([]types.DailyProgress, error)
}
