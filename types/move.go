package types

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryWriting    Category = "writing"
	CategoryPlanning   Category = "planning"
	CategoryOrganizing Category = "organizing"
	CategoryLearning   Category = "learning"
	CategoryCreating   Category = "creating"
	CategoryReflecting Category = "reflecting"
)

var Categories = []Category{
	CategoryWriting,
	CategoryPlanning,
	CategoryOrganizing,
	CategoryLearning,
	CategoryCreating,
	CategoryReflecting,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Move struct {
	ID              string    `json:"id,omitempty"`
	GoalID          string    `json:"goal_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DurationSeconds float64   `json:"duration_seconds"`
	Category        Category  `json:"category"`
	IsDefault       bool      `json:"is_default"`
	AISuggested     bool      `json:"ai_suggested"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}

// Validate checks the invariants a Move must hold before it is persisted.
func (m *Move) Validate() error {
	if m.Title == "" {
		return fmt.Errorf("move title is empty")
	}
	if m.DurationSeconds <= 0 {
		return fmt.Errorf("move duration must be positive, got %v", m.DurationSeconds)
	}
	if !m.Category.Valid() {
		return fmt.Errorf("unknown move category %q", m.Category)
	}
	return nil
}

type MoveResponse struct {
	Success      bool   `json:"success"`
	Move         Move   `json:"move,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}
