package handler

import (
	"context"
	"net/http"

	"ewintr.nl/ytwatch/model"
	"golang.org/x/exp/slog"
)

type Runner interface {
	Run(ctx context.Context) (model.Summary, error)
	Clear(ctx context.Context) error
}

// TriggerAPI exposes the manual triggers: POST runs a search, DELETE clears
// the seen videos.
type TriggerAPI struct {
	runner Runner
	logger *slog.Logger
}

func NewTriggerAPI(runner Runner, logger *slog.Logger) *TriggerAPI {
	return &TriggerAPI{
		runner: runner,
		logger: logger,
	}
}

func (t *TriggerAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		t.Run(w, r)
	case http.MethodDelete:
		t.Clear(w, r)
	default:
		Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	}
}

func (t *TriggerAPI) Run(w http.ResponseWriter, r *http.Request) {
	t.logger.Info("starting manual search")
	summary, err := t.runner.Run(r.Context())
	if err != nil {
		Error(w, http.StatusInternalServerError, "Search failed", err)
		return
	}

	Message(w, http.StatusOK, "Search completed successfully", summary)
}

func (t *TriggerAPI) Clear(w http.ResponseWriter, r *http.Request) {
	if err := t.runner.Clear(r.Context()); err != nil {
		Error(w, http.StatusInternalServerError, "Failed to clear seen videos", err)
		return
	}

	Message(w, http.StatusOK, "Seen videos cleared successfully", nil)
}
