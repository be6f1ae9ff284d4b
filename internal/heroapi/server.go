// Package heroapi serves the api/heroes REST resource from memory, optionally
// persisted to a JSON file after every write.
package heroapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/Makepad-fr/heroes/internal/auth"
	"github.com/Makepad-fr/heroes/internal/logging"
	"github.com/Makepad-fr/heroes/internal/model"
	"github.com/Makepad-fr/heroes/internal/store/jsonstore"
)

// firstID is handed out when the store is empty.
const firstID = 11

// Seed is the roster a fresh server starts with.
func Seed() []model.Hero {
	return []model.Hero{
		{ID: 12, Name: "Dr. Nice", Strength: 10},
		{ID: 13, Name: "Bombasto", Strength: 38},
		{ID: 14, Name: "Celeritas", Strength: 21},
		{ID: 15, Name: "Magneta", Strength: 47},
		{ID: 16, Name: "RubberMan", Strength: 15},
		{ID: 17, Name: "Dynama", Strength: 52},
		{ID: 18, Name: "Dr. IQ", Strength: 33},
		{ID: 19, Name: "Magma", Strength: 44},
		{ID: 20, Name: "Tornado", Strength: 29},
	}
}

type Server struct {
	mu       sync.RWMutex
	heroes   []model.Hero
	dataFile string
	token    string
	logger   logging.Logger
}

type Option func(s *Server)

func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithHeroes replaces the seed roster.
func WithHeroes(heroes []model.Hero) Option {
	return func(s *Server) {
		s.heroes = append([]model.Hero(nil), heroes...)
	}
}

// WithToken requires "Authorization: Bearer <token>" on every api/heroes
// request. An empty token leaves the API open.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = auth.TrimScheme(token)
	}
}

// WithDataFile loads heroes from p when it exists and saves to it after
// every mutation.
func WithDataFile(p string) Option {
	return func(s *Server) {
		s.dataFile = p
	}
}

func New(opts ...Option) (*Server, error) {
	s := &Server{
		heroes: Seed(),
		logger: logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = log.With(s.logger, "component", "heroapi")

	if s.dataFile != "" {
		heroes, err := jsonstore.Load(s.dataFile)
		switch {
		case errors.Is(err, os.ErrNotExist):
			if err := jsonstore.Save(s.dataFile, s.heroes); err != nil {
				return nil, fmt.Errorf("seed data file: %w", err)
			}
		case err != nil:
			return nil, fmt.Errorf("load data file: %w", err)
		default:
			s.heroes = heroes
		}
	}
	return s, nil
}

// Heroes returns a copy of the current roster.
func (s *Server) Heroes() []model.Hero {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Hero(nil), s.heroes...)
}

// Handler routes /api/heroes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api/heroes", func(r chi.Router) {
		if s.token != "" {
			r.Use(s.requireToken)
		}
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Put("/", s.update)
		r.Get("/{id}", s.get)
		r.Put("/{id}", s.update)
		r.Delete("/{id}", s.delete)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	return r
}

// ListenAndServe serves Handler on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		level.Info(s.logger).Log("msg", "listening", "addr", addr, "auth", s.token != "")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		level.Info(s.logger).Log(
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"took", time.Since(start),
		)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Check(r.Header.Get("Authorization"), s.token); err != nil {
			level.Warn(s.logger).Log("msg", "rejected", "path", r.URL.Path, "err", err,
				"request_id", middleware.GetReqID(r.Context()))
			w.Header().Set("WWW-Authenticate", `Bearer realm="heroes"`)
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	term := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("name")))

	s.mu.RLock()
	out := make([]model.Hero, 0, len(s.heroes))
	for _, h := range s.heroes {
		if term == "" || strings.Contains(strings.ToLower(h.Name), term) {
			out = append(out, h)
		}
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.RLock()
	i := model.IndexOf(s.heroes, id)
	var h model.Hero
	if i >= 0 {
		h = s.heroes[i]
	}
	s.mu.RUnlock()

	if i < 0 {
		writeError(w, http.StatusNotFound, model.ErrNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var in model.Hero
	if !decode(w, r, &in) {
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	in.ID = s.nextID()
	s.heroes = append(s.heroes, in)
	err := s.persist()
	s.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var in model.Hero
	if !decode(w, r, &in) {
		return
	}
	if chi.URLParam(r, "id") != "" {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		in.ID = id
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	i := model.IndexOf(s.heroes, in.ID)
	var err error
	if i >= 0 {
		s.heroes[i] = in
		err = s.persist()
	}
	s.mu.Unlock()

	switch {
	case i < 0:
		writeError(w, http.StatusNotFound, model.ErrNotFound.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, struct{}{})
	}
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	i := model.IndexOf(s.heroes, id)
	var err error
	if i >= 0 {
		s.heroes = append(s.heroes[:i], s.heroes[i+1:]...)
		err = s.persist()
	}
	s.mu.Unlock()

	switch {
	case i < 0:
		writeError(w, http.StatusNotFound, model.ErrNotFound.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// nextID must be called with mu held.
func (s *Server) nextID() int {
	if len(s.heroes) == 0 {
		return firstID
	}
	highest := s.heroes[0].ID
	for _, h := range s.heroes[1:] {
		if h.ID > highest {
			highest = h.ID
		}
	}
	return highest + 1
}

// persist must be called with mu held.
func (s *Server) persist() error {
	if s.dataFile == "" {
		return nil
	}
	if err := jsonstore.Save(s.dataFile, s.heroes); err != nil {
		level.Error(s.logger).Log("msg", "persist heroes", "file", s.dataFile, "err", err)
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid hero id %q", raw))
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
