package main

import (
	"clementus360/momentum/config"
	"clementus360/momentum/engine"
	"clementus360/momentum/handlers"
	"clementus360/momentum/llm"
	"clementus360/momentum/middleware"
	"clementus360/momentum/store"
	"clementus360/momentum/supabase"
	"log"
	"net/http"
	"os"
)

func main() {

	config.LoadEnv()
	config.InitLogger()

	var progressStore store.Store
	if os.Getenv("SUPABASE_URL") != "" {
		supabase.Init()
		progressStore = supabase.NewStore(supabase.Client)
	} else {
		config.Logger.Warn("SUPABASE_URL not set, using in-memory store")
		progressStore = store.NewMemoryStore()
	}

	aiClient, err := llm.FromEnv()
	if err != nil {
		config.Logger.Fatal("Failed to create AI client:", err)
	}

	daily := engine.New(progressStore, aiClient, config.Logger)
	h := handlers.NewHandler(daily)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /today", h.GetTodayHandler)
	mux.HandleFunc("POST /today/resolve", h.ResolveTodayHandler)
	mux.HandleFunc("POST /today/done", h.MarkDoneHandler)
	mux.HandleFunc("POST /today/skip", h.MarkSkippedHandler)
	mux.HandleFunc("POST /today/postpone", h.PostponeHandler)
	mux.HandleFunc("POST /today/swap", h.SwapHandler)
	mux.HandleFunc("POST /today/select", h.SelectMoveHandler)
	mux.HandleFunc("POST /suggestions/adopt", h.AdoptSuggestionHandler)
	mux.HandleFunc("POST /moves/adjust", h.AdjustMoveHandler)
	mux.HandleFunc("POST /goals/create", h.CreateGoalHandler)
	mux.HandleFunc("GET /goals", h.GetGoalsHandler)
	mux.HandleFunc("POST /goals/complete", h.CompleteGoalHandler)
	mux.HandleFunc("POST /goals/format-smart", h.FormatSMARTHandler)
	mux.HandleFunc("DELETE /goals/delete", h.DeleteGoalHandler)

	chain := middleware.Chain(
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
		middleware.AuthMiddleware,
	)

	log.Println("Server is running on port 8080")
	log.Fatal(http.ListenAndServe(":8080", chain(mux)))
}
