package feedsim

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/verdiblanco/rumormill/pkg/logger"
)

// serverShutdownTimeout bounds how long Stop waits for in-flight requests.
const serverShutdownTimeout = 5 * time.Second

// Server serves the generated items as RSS feeds, one feed per source at
// /feeds/{source}.xml.
type Server struct {
	mu       sync.Mutex
	listener net.Listener
	srv      *http.Server
	feeds    map[string][]byte
}

// NewServer partitions items by source and pre-renders each feed.
func NewServer(items []Item) (*Server, error) {
	bySource := make(map[string][]Item)
	for _, item := range items {
		bySource[item.Source] = append(bySource[item.Source], item)
	}

	feeds := make(map[string][]byte, len(bySource))
	for source, sourceItems := range bySource {
		body, err := RenderRSS(source, sourceItems)
		if err != nil {
			return nil, err
		}
		feeds[source] = body
	}

	return &Server{feeds: feeds}, nil
}

// Start begins serving feeds on addr. An addr ending in ":0" picks a free
// port; use URL to discover it.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return fmt.Errorf("feed server already started")
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/feeds/", s.handleFeed)

	s.listener = listener
	s.srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := s.srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Get().Error(context.Background(), "feed server stopped", logger.Error(err))
		}
	}()

	logger.Get().Info(ctx, "feed server listening",
		logger.String("addr", listener.Addr().String()),
		logger.Int("feeds", len(s.feeds)))
	return nil
}

// URL returns the base URL of the feed at /feeds/{source}.xml for source.
func (s *Server) URL(source string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String() + "/feeds/" + source + ".xml"
}

// Sources lists the feeds the server can serve.
func (s *Server) Sources() []string {
	out := make([]string, 0, len(s.feeds))
	for source := range s.feeds {
		out = append(out, source)
	}
	return out
}

// Stop shuts the server down, waiting briefly for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.listener = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, serverShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("feed server shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/feeds/")
	name = strings.TrimSuffix(name, ".xml")

	body, ok := s.feeds[name]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write(body)
}
