package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agenthands/casefile/internal/core/engine"
	"github.com/agenthands/casefile/internal/core/generator"
	"github.com/agenthands/casefile/internal/core/model"
	"github.com/agenthands/casefile/internal/core/narrator"
	"github.com/agenthands/casefile/internal/graph"
)

// CaseStore is a graph store bound to one case.
type CaseStore interface {
	engine.CaseReader
	LoadCase(ctx context.Context, c *model.Case) error
	Reset(ctx context.Context) error
}

// StoreFactory returns the store for a new session's case id.
type StoreFactory func(caseID string) CaseStore

// GraphStores binds sessions to namespaces of base.
func GraphStores(base *graph.Store) StoreFactory {
	return func(caseID string) CaseStore { return base.WithCase(caseID) }
}

type session struct {
	mu     sync.Mutex
	c      *model.Case
	store  CaseStore
	game   *engine.Game
	closed bool
}

// Server exposes the game over HTTP. Each session owns its game and a store
// namespaced by the session id; requests on one session are serialized.
type Server struct {
	generator *generator.Generator
	narrator  *narrator.Narrator
	newStore  StoreFactory
	timeLimit time.Duration
	clock     func() time.Time
	logger    *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

type Option func(*Server)

func WithTimeLimit(d time.Duration) Option {
	return func(s *Server) { s.timeLimit = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.clock = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

func NewServer(gen *generator.Generator, nar *narrator.Narrator, newStore StoreFactory, opts ...Option) *Server {
	s := &Server{
		generator: gen,
		narrator:  nar,
		newStore:  newStore,
		timeLimit: engine.DefaultTimeLimit,
		clock:     time.Now,
		logger:    slog.Default(),
		sessions:  make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")
	return s
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)
	r.POST("/cases", s.NewCase)

	cases := r.Group("/cases/:id")
	cases.DELETE("", s.CloseCase)
	cases.POST("/search", s.Search)
	cases.POST("/witnesses", s.Witnesses)
	cases.GET("/relationships/:person", s.Relationships)
	cases.POST("/interview", s.Interview)
	cases.GET("/evidence", s.Evidence)
	cases.GET("/summary", s.Summary)
	cases.GET("/hint", s.Hint)
	cases.POST("/ask", s.Ask)
	cases.POST("/accuse", s.Accuse)

	return r
}

func (s *Server) Health(c *gin.Context) {
	s.mu.RLock()
	n := len(s.sessions)
	s.mu.RUnlock()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": n})
}

// NewCase generates a case, loads it under a fresh session id and starts
// the clock.
func (s *Server) NewCase(c *gin.Context) {
	ctx := c.Request.Context()

	mystery, report, err := s.generator.Assemble(ctx)
	if err != nil {
		s.logger.Error("case generation aborted", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to generate case"})
		return
	}

	id := uuid.NewString()
	store := s.newStore(id)
	active := store.IsActive()
	if err := store.LoadCase(ctx, mystery); err != nil {
		var loadErr *graph.LoadError
		switch {
		case errors.Is(err, graph.ErrInactive):
			active = false
		case errors.As(err, &loadErr):
			s.logger.Warn("case partially loaded", "case_id", id, "failed", loadErr.Failed, "total", loadErr.Total)
		default:
			s.logger.Error("case load failed", "case_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load case"})
			return
		}
	}

	game := engine.NewGame(store,
		engine.WithTimeLimit(s.timeLimit),
		engine.WithClock(s.clock),
		engine.WithLogger(s.logger.With("case_id", id)),
	)
	game.Start()

	s.mu.Lock()
	s.sessions[id] = &session{c: mystery, store: store, game: game}
	s.mu.Unlock()

	s.logger.Info("case opened", "case_id", id, "title", mystery.Title, "repairs", report)
	c.JSON(http.StatusCreated, newBrief(id, mystery, game.TimeLimit(), active))
}

// CloseCase drops the session and clears its graph namespace.
func (s *Server) CloseCase(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.store.Reset(c.Request.Context()); err != nil {
		s.logger.Warn("case reset failed", "case_id", id, "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}

// withSession runs fn holding the session lock, or answers 404.
func (s *Server) withSession(c *gin.Context, fn func(*session)) {
	s.mu.RLock()
	sess, ok := s.sessions[c.Param("id")]
	s.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Case not found"})
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess)
}

// playable answers for sessions that no longer accept investigation.
func playable(c *gin.Context, sess *session) bool {
	switch {
	case sess.closed:
		c.JSON(http.StatusConflict, gin.H{"error": "The case is closed"})
		return false
	case sess.game.IsExpired():
		c.JSON(http.StatusForbidden, gin.H{"error": "Time is up. Make your accusation."})
		return false
	}
	return true
}
