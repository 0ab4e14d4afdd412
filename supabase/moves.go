package supabase

import (
	"clementus360/momentum/types"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

func (s *Store) InsertMove(move *types.Move) error {
	if move.ID == "" {
		move.ID = uuid.NewString()
	}
	if move.CreatedAt.IsZero() {
		move.CreatedAt = time.Now()
	}

	_, _, err := s.client.From("moves").Insert(move, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to insert move: %w", err)
	}
	return nil
}

func (s *Store) UpdateMove(move *types.Move) error {
	updates := map[string]interface{}{
		"title":            move.Title,
		"description":      move.Description,
		"duration_seconds": move.DurationSeconds,
		"category":         move.Category,
		"is_default":       move.IsDefault,
	}

	_, _, err := s.client.From("moves").
		Update(updates, "", "").
		Eq("id", move.ID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update move: %w", err)
	}
	return nil
}

func (s *Store) DeleteMove(moveID string) error {
	_, _, err := s.client.From("moves").
		Delete("", "").
		Eq("id", moveID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete move %s: %w", moveID, err)
	}
	return nil
}

func (s *Store) MovesForGoal(goalID string) ([]types.Move, error) {
	resp, _, err := s.client.From("moves").
		Select("*", "exact", false).
		Eq("goal_id", goalID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}

	var moves []types.Move
	if err := json.Unmarshal(resp, &moves); err != nil {
		return nil, fmt.Errorf("failed to decode move data: %w", err)
	}
	return moves, nil
}

func (s *Store) GetMove(moveID string) (*types.Move, error) {
	resp, _, err := s.client.From("moves").
		Select("*", "exact", false).
		Eq("id", moveID).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get move %s: %w", moveID, err)
	}

	var moves []types.Move
	if err := json.Unmarshal(resp, &moves); err != nil {
		return nil, fmt.Errorf("failed to decode move data: %w", err)
	}
	if len(moves) == 0 {
		return nil, fmt.Errorf("move %s not found", moveID)
	}
	return &moves[0], nil
}
