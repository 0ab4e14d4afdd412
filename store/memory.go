package store

import (
	"clementus360/momentum/types"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs local mode and
// tests; the Supabase store is the production implementation.
type MemoryStore struct {
	mu       sync.RWMutex
	goals    map[string]*types.Goal
	moves    map[string]*types.Move
	progress map[string]*types.DailyProgress
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		goals:    make(map[string]*types.Goal),
		moves:    make(map[string]*types.Move),
		progress: make(map[string]*types.DailyProgress),
	}
}

func (s *MemoryStore) InsertGoal(goal *types.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now()
	}
	copied := *goal
	s.goals[goal.ID] = &copied
	return nil
}

func (s *MemoryStore) UpdateGoal(goal *types.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.goals[goal.ID]; !exists {
		return fmt.Errorf("goal %s not found", goal.ID)
	}
	copied := *goal
	s.goals[goal.ID] = &copied
	return nil
}

func (s *MemoryStore) DeleteGoal(goalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.goals[goalID]; !exists {
		return fmt.Errorf("goal %s not found", goalID)
	}
	delete(s.goals, goalID)

	// Cascade to owned moves and progress records
	for id, move := range s.moves {
		if move.GoalID == goalID {
			delete(s.moves, id)
		}
	}
	for id, record := range s.progress {
		if record.GoalID == goalID {
			delete(s.progress, id)
		}
	}
	return nil
}

func (s *MemoryStore) CurrentGoal() (*types.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var current *types.Goal
	for _, goal := range s.goals {
		if goal.Completed {
			continue
		}
		if current == nil || goal.CreatedAt.Before(current.CreatedAt) {
			current = goal
		}
	}
	if current == nil {
		return nil, nil
	}
	copied := *current
	return &copied, nil
}

func (s *MemoryStore) Goals() ([]types.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goals := make([]types.Goal, 0, len(s.goals))
	for _, goal := range s.goals {
		goals = append(goals, *goal)
	}
	sort.Slice(goals, func(i, j int) bool {
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})
	return goals, nil
}

func (s *MemoryStore) InsertMove(move *types.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.goals[move.GoalID]; !exists {
		return fmt.Errorf("goal %s not found", move.GoalID)
	}
	if move.ID == "" {
		move.ID = uuid.NewString()
	}
	if move.CreatedAt.IsZero() {
		move.CreatedAt = time.Now()
	}
	copied := *move
	s.moves[move.ID] = &copied
	return nil
}

func (s *MemoryStore) UpdateMove(move *types.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.moves[move.ID]; !exists {
		return fmt.Errorf("move %s not found", move.ID)
	}
	copied := *move
	s.moves[move.ID] = &copied
	return nil
}

func (s *MemoryStore) DeleteMove(moveID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.moves[moveID]; !exists {
		return fmt.Errorf("move %s not found", moveID)
	}
	delete(s.moves, moveID)
	return nil
}

func (s *MemoryStore) MovesForGoal(goalID string) ([]types.Move, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var moves []types.Move
	for _, move := range s.moves {
		if move.GoalID == goalID {
			moves = append(moves, *move)
		}
	}
	sort.Slice(moves, func(i, j int) bool {
		if moves[i].CreatedAt.Equal(moves[j].CreatedAt) {
			return moves[i].ID < moves[j].ID
		}
		return moves[i].CreatedAt.Before(moves[j].CreatedAt)
	})
	return moves, nil
}

func (s *MemoryStore) GetMove(moveID string) (*types.Move, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	move, exists := s.moves[moveID]
	if !exists {
		return nil, fmt.Errorf("move %s not found", moveID)
	}
	copied := *move
	return &copied, nil
}

func (s *MemoryStore) InsertProgress(progress *types.DailyProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.goals[progress.GoalID]; !exists {
		return fmt.Errorf("goal %s not found", progress.GoalID)
	}
	if progress.ID == "" {
		progress.ID = uuid.NewString()
	}
	if progress.CreatedAt.IsZero() {
		progress.CreatedAt = time.Now()
	}
	if progress.Date.IsZero() {
		progress.Date = progress.CreatedAt
	}
	copied := *progress
	s.progress[progress.ID] = &copied
	return nil
}

func (s *MemoryStore) DeleteProgress(progressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.progress[progressID]; !exists {
		return fmt.Errorf("progress %s not found", progressID)
	}
	delete(s.progress, progressID)
	return nil
}

func (s *MemoryStore) ProgressForDay(goalID string, day time.Time) ([]types.DailyProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []types.DailyProgress
	for _, record := range s.progress {
		if record.GoalID == goalID && types.SameDay(record.Date, day) {
			records = append(records, *record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (s *MemoryStore) RecentCompletions(goalID string, limit int) ([]types.DailyProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []types.DailyProgress
	for _, record := range s.progress {
		if record.GoalID == goalID && !record.Skipped && record.MoveID != nil {
			records = append(records, *record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
