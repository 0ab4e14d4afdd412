package handlers

import (
	"clementus360/momentum/config"
	"clementus360/momentum/middleware"
	"clementus360/momentum/types"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

type createGoalRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	TargetDays  *int            `json:"target_days,omitempty"`
	FirstMove   *createGoalMove `json:"first_move,omitempty"`
}

type createGoalMove struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Duration    float64 `json:"duration_seconds,omitempty"`
}

type formatSMARTRequest struct {
	GoalID string `json:"goal_id"`
}

func (h *Handler) CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Logger.Error("Failed to decode goal JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		writeError(w, "Missing goal title", http.StatusBadRequest)
		return
	}

	goal := &types.Goal{
		UserID:      middleware.UserIDFromContext(r.Context()),
		Title:       req.Title,
		Description: req.Description,
		TargetDays:  req.TargetDays,
	}
	var firstMove *types.Move
	if req.FirstMove != nil && req.FirstMove.Title != "" {
		firstMove = &types.Move{
			Title:           req.FirstMove.Title,
			Description:     req.FirstMove.Description,
			DurationSeconds: req.FirstMove.Duration,
		}
	}

	if err := h.Engine.CreateGoal(goal, firstMove); err != nil {
		config.Logger.Error("Failed to create goal:", err)
		writeError(w, "Failed to create goal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, types.GoalResponse{
		Success: true,
		Goal:    *goal,
	})
}

func (h *Handler) GetGoalsHandler(w http.ResponseWriter, r *http.Request) {
	goals, err := h.Engine.Goals()
	if err != nil {
		config.Logger.Error("Failed to fetch goals:", err)
		writeError(w, "Failed to fetch goals", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, types.GetGoalsResponse{
		Success: true,
		Goals:   goals,
	})
}

func (h *Handler) CompleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	goalID := r.URL.Query().Get("id")
	if goalID == "" {
		writeError(w, "Missing goal ID", http.StatusBadRequest)
		return
	}

	if err := h.Engine.CompleteGoal(goalID); err != nil {
		config.Logger.Error("Failed to complete goal:", err)
		writeError(w, "Could not complete goal", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, types.DeleteGoalResponse{
		Success: true,
		Message: "Goal completed",
	})
}

func (h *Handler) DeleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	goalID := r.URL.Query().Get("id")
	if goalID == "" {
		writeError(w, "Missing goal ID", http.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(goalID); err != nil {
		config.Logger.Error("Invalid goal ID format:", err)
		writeError(w, "Invalid goal ID", http.StatusBadRequest)
		return
	}

	if err := h.Engine.DeleteGoal(goalID); err != nil {
		config.Logger.Error("Failed to delete goal:", err)
		writeError(w, "Could not delete goal", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, types.DeleteGoalResponse{
		Success: true,
		Message: "Goal deleted successfully",
	})
}

func (h *Handler) FormatSMARTHandler(w http.ResponseWriter, r *http.Request) {
	var req formatSMARTRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GoalID == "" {
		writeError(w, "Missing goal_id", http.StatusBadRequest)
		return
	}

	if err := h.Engine.FormatGoalSMART(r.Context(), req.GoalID); err != nil {
		config.Logger.Error("Failed to format goal:", err)
		writeError(w, "Could not reformat goal", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, types.StateResponse{
		Success:  true,
		Snapshot: h.Engine.Snapshot(),
	})
}
