package types

import "time"

type Goal struct {
	ID          string     `json:"id,omitempty"`
	UserID      string     `json:"user_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	TargetDays  *int       `json:"target_days,omitempty"` // nullable
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
}

type GoalResponse struct {
	Success      bool   `json:"success"`
	Goal         Goal   `json:"goal,omitempty"`
	ErrorMessage string `json:"error,omitempty"` // only set on failure
}

type GetGoalsResponse struct {
	Success      bool   `json:"success"`
	Goals        []Goal `json:"goals,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type DeleteGoalResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error,omitempty"`
	Message      string `json:"message,omitempty"` // confirmation message
}
