package api

import (
	"context"
	"net/http"

	"github.com/okian/catalog/internal/domain/catalog"
)

// EntriesDependencies defines the interface for sampling entries.
type EntriesDependencies interface {
	RandomEntries(ctx context.Context) ([]catalog.Entry, error)
}

// EntriesHandler handles random entry requests.
type EntriesHandler struct {
	deps Dependencies
}

// NewEntriesHandler creates a new entries handler.
func NewEntriesHandler(deps Dependencies) *EntriesHandler {
	return &EntriesHandler{deps: deps}
}

// HandleRandomEntries handles GET /random-entries requests.
func (h *EntriesHandler) HandleRandomEntries(w http.ResponseWriter, r *http.Request) {
	const op = "api.random_entries"
	if !readOnly(w, r) {
		return
	}
	entries, err := h.deps.RandomEntries(r.Context())
	if err != nil {
		writeQueryError(w, h.deps.Ready(), op, err)
		return
	}
	writeJSON(w, http.StatusOK, entriesOrEmpty(entries))
}
