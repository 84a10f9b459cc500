package api

import (
	"context"
	"net/http"

	"github.com/okian/catalog/internal/domain/catalog"
)

// ScoresDependencies defines the interface for the score aggregate.
type ScoresDependencies interface {
	Scores(ctx context.Context) ([]catalog.Score, error)
}

// ScoresHandler handles score aggregate requests.
type ScoresHandler struct {
	deps Dependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps Dependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

// HandleScores handles GET /scores requests.
func (h *ScoresHandler) HandleScores(w http.ResponseWriter, r *http.Request) {
	const op = "api.scores"
	if !readOnly(w, r) {
		return
	}
	scores, err := h.deps.Scores(r.Context())
	if err != nil {
		writeQueryError(w, h.deps.Ready(), op, err)
		return
	}
	if scores == nil {
		scores = []catalog.Score{}
	}
	writeJSON(w, http.StatusOK, scores)
}
