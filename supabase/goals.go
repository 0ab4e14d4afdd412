package supabase

import (
	"clementus360/momentum/types"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

func (s *Store) InsertGoal(goal *types.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now()
	}

	_, _, err := s.client.From("goals").Insert(goal, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

func (s *Store) UpdateGoal(goal *types.Goal) error {
	updates := map[string]interface{}{
		"title":        goal.Title,
		"description":  goal.Description,
		"completed":    goal.Completed,
		"completed_at": goal.CompletedAt,
		"target_days":  goal.TargetDays,
	}

	_, _, err := s.client.From("goals").
		Update(updates, "", "").
		Eq("id", goal.ID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return nil
}

// DeleteGoal removes the goal and cascades to its moves and progress records.
// Supabase has no implicit object-graph delete, so the cascade is explicit.
func (s *Store) DeleteGoal(goalID string) error {
	if _, _, err := s.client.From("daily_progress").
		Delete("", "").
		Eq("goal_id", goalID).
		Execute(); err != nil {
		return fmt.Errorf("failed to delete progress for goal %s: %w", goalID, err)
	}

	if _, _, err := s.client.From("moves").
		Delete("", "").
		Eq("goal_id", goalID).
		Execute(); err != nil {
		return fmt.Errorf("failed to delete moves for goal %s: %w", goalID, err)
	}

	if _, _, err := s.client.From("goals").
		Delete("", "").
		Eq("id", goalID).
		Execute(); err != nil {
		return fmt.Errorf("failed to delete goal %s: %w", goalID, err)
	}
	return nil
}

func (s *Store) CurrentGoal() (*types.Goal, error) {
	resp, _, err := s.client.From("goals").
		Select("*", "exact", false).
		Eq("completed", "false").
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get current goal: %w", err)
	}

	var goals []types.Goal
	if err := json.Unmarshal(resp, &goals); err != nil {
		return nil, fmt.Errorf("failed to decode goal data: %w", err)
	}
	if len(goals) == 0 {
		return nil, nil
	}
	return &goals[0], nil
}

func (s *Store) Goals() ([]types.Goal, error) {
	resp, _, err := s.client.From("goals").
		Select("*", "exact", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}

	var goals []types.Goal
	if err := json.Unmarshal(resp, &goals); err != nil {
		return nil, fmt.Errorf("failed to decode goal data: %w", err)
	}
	return goals, nil
}
