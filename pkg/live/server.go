package live

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/mkdom"
	"github.com/vango-dev/mkdom/internal/errors"
	"github.com/vango-dev/mkdom/pkg/htmlhost"
	"github.com/vango-dev/mkdom/pkg/middleware"
	"github.com/vango-dev/mkdom/pkg/script"
	"github.com/vango-dev/mkdom/pkg/store"
)

// maxScriptSize bounds POST /ops bodies.
const maxScriptSize = 1 << 20

// Server serves a single document.
type Server struct {
	// publishMu orders POST /ops requests end to end so snapshots are
	// saved and broadcast in version order. It is taken before mu.
	publishMu sync.Mutex

	mu      sync.Mutex
	doc     *htmlhost.Document
	dom     mkdom.Document
	version uint64

	hub      *Hub
	registry *prometheus.Registry
	runner   *script.Runner
	logger   *slog.Logger
	router   chi.Router

	store    store.Store
	storeKey string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithRegistry sets the Prometheus registry served on /metrics.
func WithRegistry(r *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = r
	}
}

// WithRunner sets the script runner.
func WithRunner(r *script.Runner) Option {
	return func(s *Server) {
		s.runner = r
	}
}

// WithStore saves the document under key after every successful script.
func WithStore(st store.Store, key string) Option {
	return func(s *Server) {
		s.store = st
		s.storeKey = key
	}
}

// New returns a server for doc.
func New(doc *htmlhost.Document, opts ...Option) *Server {
	s := &Server{doc: doc}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "live")
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	if s.runner == nil {
		s.runner = script.NewRunner(script.WithLogger(s.logger))
	}

	s.dom = middleware.Observe(doc,
		middleware.MetricsObserver(middleware.WithRegistry(s.registry)),
		middleware.LogObserver(s.logger),
	)
	s.hub = NewHub(s.snapshot)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleDocument)
	r.Get("/query", s.handleQuery)
	r.Post("/ops", s.handleOps)
	r.Get("/live", s.hub.HandleWebSocket)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Version returns the number of scripts that changed the document.
func (s *Server) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.New("E141").Wrap(err)
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("E141").Wrap(err)
	}
	return nil
}

// snapshot returns the current document as a message.
func (s *Server) snapshot() Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Server) snapshotLocked() Message {
	return Message{Type: MessageSnapshot, Version: s.version, HTML: s.doc.String()}
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.doc.Render(w); err != nil {
		s.logger.Error("render failed", "error", err)
	}
}

// QueryResult is the response of GET /query.
type QueryResult struct {
	Selector string   `json:"selector"`
	Count    int      `json:"count"`
	Matches  []string `json:"matches"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	selector := r.URL.Query().Get("selector")
	if selector == "" {
		writeError(w, http.StatusBadRequest, errors.New("E003").WithDetail("selector parameter is required"))
		return
	}

	s.mu.Lock()
	c := mkdom.All(s.dom, selector)
	res := QueryResult{Selector: selector, Count: c.Len(), Matches: []string{}}
	for _, n := range c.Nodes() {
		res.Matches = append(res.Matches, s.doc.OuterHTML(n))
	}
	s.mu.Unlock()

	if err := c.Err(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, res)
}

func (s *Server) handleOps(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxScriptSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("E160").Wrap(err))
		return
	}
	sc, err := script.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	before := s.doc.String()
	report, runErr := s.runner.Run(r.Context(), s.dom, sc)
	changed := s.doc.String() != before
	if changed {
		s.version++
	}
	msg := s.snapshotLocked()
	s.mu.Unlock()

	// A failed script may still have changed the document; persist and
	// publish whatever was applied.
	var saveErr error
	if changed {
		saveErr = s.save(r.Context(), msg)
		s.hub.Broadcast(msg)
	}
	if runErr != nil {
		writeError(w, http.StatusUnprocessableEntity, runErr)
		return
	}
	if saveErr != nil {
		writeError(w, http.StatusInternalServerError, saveErr)
		return
	}
	writeJSONResponse(w, http.StatusOK, report)
}

// save writes msg to the configured store, if any.
func (s *Server) save(ctx context.Context, msg Message) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(ctx, s.storeKey, []byte(msg.HTML)); err != nil {
		s.logger.Error("save failed", "key", s.storeKey, "version", msg.Version, "error", err)
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

func writeJSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, errors.FromError(err, "E010").FormatJSON())
}
