// Package site renders the HTML views served at the root of the service.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
)

// Error constants
var (
	ErrParse  = errors.New("view parse failed")
	ErrRender = errors.New("view render failed")
)

// homeView is the template rendered at /.
const homeView = "index"

// RootHandler renders the home view.
type RootHandler struct {
	views *template.Template
	title string
}

// NewRootHandler parses the embedded views.
func NewRootHandler(title string) (*RootHandler, error) {
	views, err := parseViews()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if views.Lookup(homeView) == nil {
		return nil, fmt.Errorf("%w: view %q not defined", ErrParse, homeView)
	}
	return &RootHandler{views: views, title: title}, nil
}

// Register attaches the home view to mux. Because / is the catch-all pattern,
// any path without its own route ends up here and gets a 404.
func Register(_ context.Context, mux *http.ServeMux, title string) error {
	if mux == nil {
		panic("mux is nil")
	}
	h, err := NewRootHandler(title)
	if err != nil {
		return err
	}
	mux.HandleFunc("/", h.HandleRoot)
	return nil
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		http.NotFound(w, r)
		return
	}

	// Render into a buffer so a template failure does not leave a half-written 200.
	var buf bytes.Buffer
	if err := h.views.ExecuteTemplate(&buf, homeView, struct{ Title string }{Title: h.title}); err != nil {
		http.Error(w, fmt.Sprintf("%v: %v", ErrRender, err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
