package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/groepsplan/internal/compliance"
	"github.com/jonathan/groepsplan/internal/config"
	"github.com/jonathan/groepsplan/internal/db"
	"github.com/jonathan/groepsplan/internal/llm"
	"github.com/jonathan/groepsplan/internal/logging"
	"github.com/jonathan/groepsplan/internal/metrics"
	"github.com/jonathan/groepsplan/internal/pipeline"
	"github.com/jonathan/groepsplan/internal/server/middleware"
	"github.com/jonathan/groepsplan/internal/server/ratelimit"
	"github.com/jonathan/groepsplan/internal/validation"
)

// Generator runs a generation. *pipeline.Pipeline implements it.
type Generator interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// DocumentStore reads and deletes stored generations. *db.DB implements it.
type DocumentStore interface {
	GetDocument(ctx context.Context, id uuid.UUID) (*db.Document, error)
	ListDocuments(ctx context.Context, opts db.ListDocumentsOptions) ([]db.DocumentSummary, int, error)
	DeleteDocument(ctx context.Context, id uuid.UUID, teacherID string) (bool, error)
}

// pinger is implemented by stores that can report their health.
type pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators of the server. Only Config is required; routes whose collaborator
// is missing answer 503.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Generator Generator
	Store     DocumentStore
	// Enricher fills upload fields the parser could not find, on ?enrich=true.
	Enricher llm.Client
	Metrics  *metrics.Metrics
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	logger      *zap.Logger
	generator   Generator
	store       DocumentStore
	enricher    llm.Client
	metrics     *metrics.Metrics
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	corsOrigins []string
	mode        compliance.Mode
}

// New creates a new server instance
func New(deps Deps) (*Server, error) {
	cfg := deps.Config
	if cfg == nil {
		return nil, errors.New("server config is required")
	}
	jwtConfig, err := cfg.JWT.Require()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := &Server{
		logger:      logging.OrNop(deps.Logger),
		generator:   deps.Generator,
		store:       deps.Store,
		enricher:    deps.Enricher,
		metrics:     deps.Metrics,
		jwtService:  NewJWTService(jwtConfig),
		corsOrigins: cfg.Server.CORSOrigins,
		mode:        compliance.ModeFromStrict(cfg.Compliance.Strict),
	}
	if cfg.RateLimit.Enabled {
		s.rateLimiter = ratelimit.NewLimiter(ratelimit.FromSettings(cfg.RateLimit))
	}

	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metricsHandler())

	// Pure endpoints: no model call, no storage
	mux.HandleFunc("POST /api/prompts/scratch", s.handleScratchPrompt)
	mux.HandleFunc("POST /api/prompts/upload", s.handleUploadPrompt)
	mux.HandleFunc("POST /api/groepsplannen/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/experiments", s.handleListExperiments)
	mux.HandleFunc("GET /api/experiments/{id}", s.handleGetExperiment)
	mux.HandleFunc("POST /api/uploads/extract", s.handleExtract)

	// Authenticated endpoints
	mux.Handle("POST /api/groepsplannen/generate", protected(s.handleGenerate))
	mux.Handle("POST /api/groepsplannen/generate/stream", protected(s.handleGenerateStream))
	mux.Handle("GET /api/groepsplannen", protected(s.handleListDocuments))
	mux.Handle("GET /api/groepsplannen/{id}", protected(s.handleGetDocument))
	mux.Handle("DELETE /api/groepsplannen/{id}", protected(s.handleDeleteDocument))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// JWT returns the token service, for issuing tokens.
func (s *Server) JWT() *JWTService {
	return s.jwtService
}

// Start listens until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve listens until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close stops background work. It does not close the store.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	allowAll := slices.Contains(s.corsOrigins, "*")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case allowAll:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.corsOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	if s.rateLimiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging. It keeps Flush working for SSE.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", s.extractClientID(r)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok", "database": "disabled"}
	status := http.StatusOK
	if p, ok := s.store.(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			s.logger.Warn("database ping failed", zap.Error(err))
			resp["status"], resp["database"] = "degraded", "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			resp["database"] = "ok"
		}
	}
	s.jsonResponse(w, status, resp)
}

func (s *Server) metricsHandler() http.Handler {
	if s.metrics == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			s.writeError(w, &ErrUnavailable{Component: "metrics"})
		})
	}
	return s.metrics.Handler()
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorBody is the shape of every error response.
type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, code, message string) {
	s.jsonResponse(w, status, errorBody{Error: message, Code: code})
}

// writeError maps err to a status and writes it.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, body := s.errorBodyFor(err)
	s.jsonResponse(w, status, body)
}

// errorBodyFor classifies err. Internal errors are logged and their message is not exposed.
func (s *Server) errorBodyFor(err error) (int, errorBody) {
	status, code := classify(err)
	body := errorBody{Error: err.Error(), Code: code}

	var inputErr *validation.InputError
	if errors.As(err, &inputErr) {
		body.Error = "invalid input"
		body.Details = inputErr.Errors
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
		if status == http.StatusInternalServerError {
			body.Error = "internal server error"
		}
	}
	return status, body
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return &ErrValidation{Field: "body", Message: "request body is required"}
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxJSONBytes))
	if err := dec.Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// maxJSONBytes bounds JSON request bodies. Upload text is the largest legitimate payload.
const maxJSONBytes = 2 << 20

// extractClientID extracts the client identifier (IP address) from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate limit exceeded, please try again later",
		"code":      "RATE_LIMIT_EXCEEDED",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds() + 0.5)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", s.extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// queryFlag reports whether a boolean query parameter is set to a true value.
func queryFlag(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get(name)))
	return err == nil && v
}
