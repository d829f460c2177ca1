// Package server exposes the detection engine and subscription store over
// HTTP. The engine itself is a pure function; this layer owns request
// concerns only (identity, validation, status codes).
package server

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/subtrack-dev/subtrack/internal/store"
)

// ownerHeader names the requesting owner. Requests without it fall back
// to the configured default owner.
const ownerHeader = "X-Owner-ID"

// Server routes API requests to the engine and the store.
type Server struct {
	store        store.Store
	log          zerolog.Logger
	defaultOwner string
}

// New creates a Server.
func New(st store.Store, log zerolog.Logger, defaultOwner string) *Server {
	return &Server{store: st, log: log, defaultOwner: defaultOwner}
}

// Handler returns the full middleware-wrapped HTTP handler.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/import", s.handleImport)
	mux.HandleFunc("GET /api/subscriptions", s.handleList)
	mux.HandleFunc("POST /api/subscriptions", s.handleCreate)
	mux.HandleFunc("GET /api/subscriptions/{id}", s.handleGet)
	mux.HandleFunc("PATCH /api/subscriptions/{id}", s.handlePatch)
	mux.HandleFunc("DELETE /api/subscriptions/{id}", s.handleDelete)
	mux.HandleFunc("POST /api/subscriptions/{id}/status", s.handleSetStatus)
	mux.HandleFunc("GET /api/totals", s.handleTotals)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", ownerHeader},
	})

	var h http.Handler = mux
	h = recovery(s.log)(h)
	h = requestLogger(s.log)(h)
	return c.Handler(h)
}

// owner resolves the requesting owner from the request header.
func (s *Server) owner(r *http.Request) string {
	if owner := r.Header.Get(ownerHeader); owner != "" {
		return owner
	}
	return s.defaultOwner
}
