package supabase

import (
	"clementus360/momentum/types"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

func (s *Store) InsertProgress(progress *types.DailyProgress) error {
	if progress.ID == "" {
		progress.ID = uuid.NewString()
	}
	if progress.CreatedAt.IsZero() {
		progress.CreatedAt = time.Now()
	}
	if progress.Date.IsZero() {
		progress.Date = progress.CreatedAt
	}

	_, _, err := s.client.From("daily_progress").Insert(progress, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to insert progress: %w", err)
	}
	return nil
}

func (s *Store) DeleteProgress(progressID string) error {
	_, _, err := s.client.From("daily_progress").
		Delete("", "").
		Eq("id", progressID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete progress %s: %w", progressID, err)
	}
	return nil
}

// ProgressForDay bounds the query by the local calendar day, not the exact
// timestamp.
func (s *Store) ProgressForDay(goalID string, day time.Time) ([]types.DailyProgress, error) {
	local := day.Local()
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	end := start.AddDate(0, 0, 1)

	resp, _, err := s.client.From("daily_progress").
		Select("*", "exact", false).
		Eq("goal_id", goalID).
		Gte("date", start.Format(time.RFC3339)).
		Lt("date", end.Format(time.RFC3339)).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get today's progress: %w", err)
	}

	var records []types.DailyProgress
	if err := json.Unmarshal(resp, &records); err != nil {
		return nil, fmt.Errorf("failed to decode progress data: %w", err)
	}
	return records, nil
}

func (s *Store) RecentCompletions(goalID string, limit int) ([]types.DailyProgress, error) {
	resp, _, err := s.client.From("daily_progress").
		Select("*", "exact", false).
		Eq("goal_id", goalID).
		Eq("skipped", "false").
		Not("move_id", "is", "null").
		Order("date", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent completions: %w", err)
	}

	var records []types.DailyProgress
	if err := json.Unmarshal(resp, &records); err != nil {
		return nil, fmt.Errorf("failed to decode progress data: %w", err)
	}
	return records, nil
}
