package api

import (
	"errors"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/prathamdarmwal/ragscope/internal/cache"
	"github.com/prathamdarmwal/ragscope/internal/config"
	"github.com/prathamdarmwal/ragscope/internal/harness"
	"github.com/prathamdarmwal/ragscope/internal/store"
)

// Server hosts the comparison harness over HTTP. It owns the mutable
// "last successful comparison" state; the harness itself stays stateless
// between dispatches.
type Server struct {
	router     *gin.Engine
	config     *config.Config
	resources  *cache.Resources
	dispatcher *harness.Dispatcher
	store      store.Store

	mu   sync.Mutex
	last *harness.ExportRecord
}

func NewServer(cfg *config.Config, resources *cache.Resources, st store.Store) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("api: nil config")
	}
	if resources == nil {
		return nil, errors.New("api: nil resources")
	}

	r := gin.New()
	s := &Server{
		router:     r,
		config:     cfg,
		resources:  resources,
		dispatcher: harness.NewDispatcher(cfg.Compare.Pause),
		store:      st,
	}
	s.registerMiddleware()
	if err := s.registerRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) Run(addr string) error {
	if s == nil || s.router == nil {
		return errors.New("api: nil server")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = ":8090"
	}
	return s.router.Run(addr)
}

// lastRecord returns the most recent successful comparison, if any.
func (s *Server) lastRecord() *harness.ExportRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// setLastRecord replaces the last successful comparison. Failed dispatches
// never reach this, so stale results are never mixed with a failed attempt.
func (s *Server) setLastRecord(rec *harness.ExportRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = rec
}
