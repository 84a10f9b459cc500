package api

import "net/http"

// StatusHandler answers with a fixed status and no body.
type StatusHandler struct{}

// NewStatusHandler creates a new fixed-status handler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// HandleUnauthorized handles GET /unauthorized.
func (h *StatusHandler) HandleUnauthorized(w http.ResponseWriter, r *http.Request) {
	if !readOnly(w, r) {
		return
	}
	w.WriteHeader(http.StatusUnauthorized)
}

// HandleNotFound handles GET /not-found.
func (h *StatusHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	if !readOnly(w, r) {
		return
	}
	w.WriteHeader(http.StatusNotFound)
}
