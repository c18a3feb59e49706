// Package site renders the public trending page from live service data.
package site

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/verdiblanco/rumormill/internal/domain/types"
)

// Error constants
var (
	ErrRender = errors.New("site page render failed")
)

// trendingPageLimit caps how many rows the rendered board shows.
const trendingPageLimit = 20

// Dependencies supplies the live data rendered on the page.
type Dependencies interface {
	Trending(ctx context.Context, limit int) ([]types.TrendingEntry, error)
	Rumors(ctx context.Context) []types.RumorView
}

// Register attaches the rendered site and its static assets to mux.
func Register(_ context.Context, mux *http.ServeMux, deps Dependencies) {
	if mux == nil {
		panic("mux is nil")
	}

	handler := NewRootHandler(deps)
	mux.HandleFunc("/", handler.HandleRoot)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(StaticFS())))
}

// pageData is the template context for the index page.
type pageData struct {
	Trending    []types.TrendingEntry
	Rumors      []types.RumorView
	GeneratedAt time.Time
}

// RootHandler renders the trending page.
type RootHandler struct {
	deps Dependencies
}

// NewRootHandler creates a new root handler.
func NewRootHandler(deps Dependencies) *RootHandler {
	return &RootHandler{deps: deps}
}

// HandleRoot handles GET / requests. Any other path under / is a 404 so the
// page does not shadow unknown routes.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	data := pageData{GeneratedAt: time.Now()}
	if h.deps != nil {
		entries, err := h.deps.Trending(r.Context(), trendingPageLimit)
		if err != nil {
			http.Error(w, ErrRender.Error(), http.StatusInternalServerError)
			return
		}
		data.Trending = entries
		data.Rumors = h.deps.Rumors(r.Context())
	}

	// Render into a buffer so a template failure never sends a half page.
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		http.Error(w, ErrRender.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
