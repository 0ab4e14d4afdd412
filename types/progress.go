package types

import "time"

// DailyProgress records how one calendar day was resolved for a goal. A day
// can accumulate several records when multiple moves are completed.
type DailyProgress struct {
	ID        string    `json:"id,omitempty"`
	GoalID    string    `json:"goal_id"`
	MoveID    *string   `json:"move_id,omitempty"` // nullable, absent when skipped without a move
	Date      time.Time `json:"date"`
	Skipped   bool      `json:"skipped"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// SameDay reports whether two timestamps fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
