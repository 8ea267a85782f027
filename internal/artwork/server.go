// Package artwork serves track pictures over HTTP so that host metadata can
// reference them by URL.
package artwork

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/smartnsoft/beatbox/internal/domain"
	"go.uber.org/zap"
)

// Library resolves track identifiers to their metadata
type Library interface {
	Lookup(id string) (domain.TrackMetadata, error)
}

// Server exposes embedded artwork and icons of the catalog
type Server struct {
	logger  *zap.Logger
	library Library
	addr    string
	router  chi.Router

	mu       sync.RWMutex
	server   *http.Server
	listener net.Listener
}

// NewServer creates a stopped server bound to the configured address.
// An empty address disables it.
func NewServer(logger *zap.Logger, cfg domain.Config, lib Library) *Server {
	s := &Server{
		logger:  logger,
		library: lib,
		addr:    cfg.GetArtAddr(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/art/{id}", s.serveArtwork)
	r.Get("/icon/{id}", s.serveIcon)
	return r
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Enabled reports whether an address is configured
func (s *Server) Enabled() bool {
	return s.addr != ""
}

// Start listens on the configured address and serves in the background
func (s *Server) Start(ctx context.Context) error {
	if !s.Enabled() {
		s.logger.Info("Artwork server disabled")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return nil
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.server = srv
	s.listener = ln

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Artwork server failed", zap.Error(err))
		}
	}()

	s.logger.Info("Artwork server started", zap.String("addr", ln.Addr().String()))
	return nil
}

// Stop shuts the server down, waiting for in-flight requests up to ctx
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("artwork server shutdown failed: %w", err)
	}
	s.logger.Info("Artwork server stopped")
	return nil
}

// ArtURL returns the URL of the picture shown for id. Embedded artwork is
// preferred over the icon. It is empty when the server is disabled or the
// track has neither.
func (s *Server) ArtURL(id string) string {
	if !s.Enabled() {
		return ""
	}
	meta, err := s.library.Lookup(id)
	if err != nil {
		return ""
	}

	var kind string
	switch {
	case len(meta.Artwork) > 0:
		kind = "art"
	case len(meta.Icon) > 0:
		kind = "icon"
	default:
		return ""
	}
	return fmt.Sprintf("http://%s/%s/%s", s.hostPort(), kind, url.PathEscape(id))
}

// hostPort prefers the bound address so that port 0 resolves
func (s *Server) hostPort() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func (s *Server) serveArtwork(w http.ResponseWriter, r *http.Request) {
	meta, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if len(meta.Artwork) == 0 {
		http.NotFound(w, r)
		return
	}
	mime := meta.ArtworkMIME
	if mime == "" {
		mime = http.DetectContentType(meta.Artwork)
	}
	writeImage(w, mime, meta.Artwork)
}

func (s *Server) serveIcon(w http.ResponseWriter, r *http.Request) {
	meta, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if len(meta.Icon) == 0 {
		http.NotFound(w, r)
		return
	}
	writeImage(w, "image/png", meta.Icon)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (domain.TrackMetadata, bool) {
	id := chi.URLParam(r, "id")
	meta, err := s.library.Lookup(id)
	if err != nil {
		s.logger.Debug("Artwork requested for unknown track", zap.String("id", id))
		http.NotFound(w, r)
		return domain.TrackMetadata{}, false
	}
	return meta, true
}

func writeImage(w http.ResponseWriter, mime string, data []byte) {
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
