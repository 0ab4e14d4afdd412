package handlers

import (
	"clementus360/momentum/config"
	"clementus360/momentum/types"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

type noteRequest struct {
	Note string `json:"note,omitempty"`
}

type postponeRequest struct {
	Minutes int `json:"minutes"`
}

type selectMoveRequest struct {
	MoveID string `json:"move_id"`
}

type adoptSuggestionRequest struct {
	SuggestionID string `json:"suggestion_id"`
	SetAsToday   bool   `json:"set_as_today"`
}

type adjustMoveRequest struct {
	MoveID string            `json:"move_id"`
	Level  types.DetailLevel `json:"level"`
}

// GetTodayHandler returns the current state snapshot without recomputing.
func (h *Handler) GetTodayHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.StateResponse{
		Success:  true,
		Snapshot: h.Engine.Snapshot(),
	})
}

// ResolveTodayHandler recomputes today's state from persisted history.
func (h *Handler) ResolveTodayHandler(w http.ResponseWriter, r *http.Request) {
	snapshot := h.Engine.ResolveToday(r.Context())
	writeJSON(w, http.StatusOK, types.StateResponse{
		Success:  true,
		Snapshot: snapshot,
	})
}

func (h *Handler) MarkDoneHandler(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	json.NewDecoder(r.Body).Decode(&req) // empty body is fine

	if err := h.Engine.MarkDone(r.Context(), req.Note); err != nil {
		config.Logger.Error("Failed to mark done:", err)
		writeError(w, "Could not mark today's move as done", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, types.StateResponse{
		Success:  true,
		Snapshot: h.Engine.Snapshot(),
	})
}

func (h *Handler) MarkSkippedHandler(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	json.NewDecoder(r.Body).Decode(&req)

	if err := h.Engine.MarkSkipped(r.Context(), req.Note); err != nil {
		config.Logger.Error("Failed to skip:", err)
		writeError(w, "Could not skip today", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, types.StateResponse{
		Success:  true,
		Snapshot: h.Engine.Snapshot(),
	})
}

func (h *Handler) PostponeHandler(w http.ResponseWriter, r *http.Request) {
	var req postponeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Minutes <= 0 {
		writeError(w, "Invalid postpone interval", http.StatusBadRequest)
		return
	}

	if err := h.Engine.Postpone(time.Duration(req.Minutes) * time.Minute); err != nil {
		writeError(w, "No move to postpone", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, types.StateResponse{
		Success:  true,
		Snapshot: h.Engine.Snapshot(),
	})
}

// SwapHandler refreshes alternatives and asks the AI for different moves.
func (h *Handler) SwapHandler(w http.ResponseWriter, r *http.Request) {
	h.Engine.PrepareForSwap(r.Context())
	writeJSON(w, http.StatusOK, types.StateResponse{
		Success:  true,
		Snapshot: h.Engine.Snapshot(),
	})
}

func (h *Handler) SelectMoveHandler(w http.ResponseWriter, r *http.Request) {
	var req selectMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MoveID == "" {
		writeError(w, "Missing move_id", http.StatusBadRequest)
		return
	}

	if err := h.Engine.SelectMove(req.MoveID); err != nil {
		config.Logger.Error("Failed to select move:", err)
		writeError(w, "Could not select that move", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, types.StateResponse{
		Success:  true,
		Snapshot: h.Engine.Snapshot(),
	})
}

func (h *Handler) AdoptSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	var req adoptSuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SuggestionID == "" {
		writeError(w, "Missing suggestion_id", http.StatusBadRequest)
		return
	}

	move, err := h.Engine.AdoptSuggestion(req.SuggestionID, req.SetAsToday)
	if err != nil {
		config.Logger.Error("Failed to adopt suggestion:", err)
		writeError(w, "Could not adopt that suggestion", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, types.MoveResponse{
		Success: true,
		Move:    *move,
	})
}

// AdjustMoveHandler schedules a debounced detail-level rewrite. The response
// acknowledges the request; the rewrite lands asynchronously.
func (h *Handler) AdjustMoveHandler(w http.ResponseWriter, r *http.Request) {
	var req adjustMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MoveID == "" {
		writeError(w, "Missing move_id", http.StatusBadRequest)
		return
	}

	// The debounce outlives the HTTP request, so detach from its context
	if err := h.Engine.AdjustDetailLevel(context.Background(), req.MoveID, req.Level); err != nil {
		writeError(w, "Unknown detail level", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusAccepted, types.StateResponse{
		Success:  true,
		Snapshot: h.Engine.Snapshot(),
	})
}
