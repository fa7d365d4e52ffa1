// Package demoserver is an in-memory implementation of the quiz service
// HTTP API. It generates small questions for every option kind and grades
// answers against the solution it computed at generation time.
package demoserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/abhisek/smartest/internal/catalog"
	"github.com/abhisek/smartest/internal/options"
	"github.com/abhisek/smartest/internal/rules"
)

// DefaultCatalog is the topic tree served by the demo service.
func DefaultCatalog() catalog.Catalog {
	return catalog.Catalog{Chapters: []catalog.Chapter{
		{Number: 1, Name: "Search Strategies", Subchapters: []catalog.Subchapter{
			{Number: 1, Name: "Problem Solving by Search"},
		}},
		{Number: 2, Name: "Game Theory", Subchapters: []catalog.Subchapter{
			{Number: 1, Name: "Nash Equilibrium"},
			{Number: 2, Name: "MinMax with Alpha-Beta"},
		}},
		{Number: 3, Name: "Constraint Satisfaction", Subchapters: []catalog.Subchapter{
			{Number: 1, Name: "Backtracking"},
		}},
	}}
}

// Server serves the quiz API from memory. It is safe for concurrent use.
type Server struct {
	cfg     Config
	catalog catalog.Catalog
	logger  *log.Logger

	mu        sync.Mutex
	rng       *rand.Rand
	questions map[string]*question
	order     []string
}

// New creates a Server. A nil logger discards request logs.
func New(cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Server{
		cfg:       cfg,
		catalog:   DefaultCatalog(),
		logger:    logger,
		rng:       rand.New(rand.NewPCG(seed, seed>>1|1)),
		questions: make(map[string]*question),
	}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/catalog", s.handleCatalog).Methods(http.MethodGet)
	api.HandleFunc("/question", s.handleQuestion).Methods(http.MethodPost)
	api.HandleFunc("/question/check", s.handleCheck).Methods(http.MethodPost)
	api.HandleFunc("/test/generate", s.handleTest).Methods(http.MethodPost)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found", "")
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Printf("listening on %s", s.cfg.Addr)

	select {
	case err := <-errc:
		return fmt.Errorf("demo server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("demo server shutdown: %w", err)
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// generate builds and remembers a question for sel.
func (s *Server) generate(sel catalog.Selection, rec options.Record) (*question, error) {
	kind := catalog.KindFor(sel)
	gen, ok := generators[kind]
	if !ok || !s.catalog.Contains(sel) {
		return nil, fmt.Errorf("unsupported subchapter %s", sel)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := gen(s.rng, rec)
	if err != nil {
		return nil, err
	}
	q.ID = uuid.NewString()
	q.Sel = sel
	s.remember(q)
	return q, nil
}

// remember stores q, evicting the oldest questions past MaxStored. Caller
// holds s.mu.
func (s *Server) remember(q *question) {
	s.questions[q.ID] = q
	s.order = append(s.order, q.ID)
	for len(s.order) > s.cfg.MaxStored {
		delete(s.questions, s.order[0])
		s.order = s.order[1:]
	}
}

func (s *Server) lookup(id string) (*question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	return q, ok
}

func (s *Server) randomOptions(kind rules.Kind, tier rules.Tier) options.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return randomOptions(s.rng, kind, tier)
}

func (s *Server) pick(sels []catalog.Selection) catalog.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sels[s.rng.IntN(len(sels))]
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Printf("%s %s -> %d (%dms)", r.Method, r.URL.Path, rec.status, time.Since(start).Milliseconds())
	})
}
