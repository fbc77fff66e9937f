package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/imamik/onboard/internal/metrics"
	"github.com/imamik/onboard/internal/onboarding"
)

// maxBodyBytes bounds a command body. Image payloads are data URLs.
const maxBodyBytes = 8 << 20

// WizardFactory builds the wizard for a new session.
type WizardFactory func() *onboarding.Wizard

// Server routes HTTP requests to per-session wizards.
type Server struct {
	newWizard WizardFactory
	sessions  *sessions
	metrics   *metrics.Recorder
	log       logr.Logger
	ttl       time.Duration
	now       func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records session counts and serves /metrics.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Server) { s.metrics = r }
}

// WithLogger sets the request logger.
func WithLogger(log logr.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithSessionTTL drops sessions that have not been used for ttl. Zero
// disables expiry.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) { s.ttl = ttl }
}

// WithClock overrides the time source used for session expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a Server that builds wizards with factory.
func New(factory WizardFactory, opts ...Option) *Server {
	s := &Server{
		newWizard: factory,
		log:       logr.Discard(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = newSessions(s.now)
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/commands", s.postCommand)
		})
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr, "sessionTTL", s.ttl)
		errCh <- srv.ListenAndServe()
	}()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	if s.ttl > 0 {
		go s.sweep(sweepCtx)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ExpireIdle drops sessions unused for longer than the session TTL and
// returns how many were dropped. Sessions with a submission in flight are
// kept.
func (s *Server) ExpireIdle() int {
	if s.ttl <= 0 {
		return 0
	}
	ids := s.sessions.expire(s.ttl)
	for _, id := range ids {
		s.metrics.SessionClosed()
		s.log.V(1).Info("session expired", "session", id)
	}
	return len(ids)
}

func (s *Server) sweep(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.ExpireIdle()
		}
	}
}

func (s *Server) createSession(w http.ResponseWriter, _ *http.Request) {
	wiz := s.newWizard()
	id := s.sessions.add(wiz)
	s.metrics.SessionOpened()
	s.log.V(1).Info("session created", "session", id)

	writeJSON(w, http.StatusCreated, SessionView{ID: id, State: newStateView(wiz.State())})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wiz, ok := s.sessions.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, errSessionNotFound)
		return
	}
	s.reply(w, id, wiz.State())
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.sessions.remove(id) {
		writeError(w, http.StatusNotFound, errSessionNotFound)
		return
	}
	s.metrics.SessionClosed()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postCommand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wiz, ok := s.sessions.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, errSessionNotFound)
		return
	}

	var cmd onboarding.Command
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %w", errBadBody, err))
		return
	}

	// A submission runs to completion even if the client goes away.
	ctx := context.WithoutCancel(r.Context())
	if err := wiz.Dispatch(ctx, cmd); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.reply(w, id, wiz.State())
}

// reply writes the state view. A session that has reached SUCCESS is
// dropped once its final state has been read.
func (s *Server) reply(w http.ResponseWriter, id string, st onboarding.State) {
	if st.Step.Terminal() && s.sessions.remove(id) {
		s.metrics.SessionClosed()
		s.log.V(1).Info("session finished", "session", id)
	}
	writeJSON(w, http.StatusOK, newStateView(st))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.V(1).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start),
			"requestID", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		status = http.StatusRequestEntityTooLarge
	}
	writeJSON(w, status, errorView{Error: err.Error()})
}
