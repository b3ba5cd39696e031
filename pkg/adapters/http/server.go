// Package http exposes a story engine as a JSON API.
//
// Sessions are kept in a session.Manager, so any ports.SessionStore (memory,
// Redis) can back the server. Requests are validated against the embedded
// OpenAPI document before they reach a handler.
package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/storybuilder"
	"github.com/aretw0/storybuilder/internal/logging"
	"github.com/aretw0/storybuilder/internal/presentation/graph"
	"github.com/aretw0/storybuilder/pkg/assets"
	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/aretw0/storybuilder/pkg/ports"
	"github.com/aretw0/storybuilder/pkg/runner"
	"github.com/aretw0/storybuilder/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// Engine is the story engine surface the server needs.
type Engine interface {
	ports.StoryEngine
	Issues() []domain.ValidationIssue
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Engine   Engine
	Sessions *session.Manager
	Assets   *assets.Resolver
	Metrics  http.Handler
	Streams  *StreamManager
	Name     string

	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAssets serves node images from the resolver under /assets.
func WithAssets(resolver *assets.Resolver) Option {
	return func(s *Server) {
		s.Assets = resolver
	}
}

// WithMetrics mounts a Prometheus handler under /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithStoryName is reported by /info.
func WithStoryName(name string) Option {
	return func(s *Server) {
		s.Name = name
	}
}

// NewServer creates a Server for engine backed by sessions.
func NewServer(engine Engine, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Engine:   engine,
		Sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, sessions *session.Manager, opts ...Option) (http.Handler, error) {
	return NewServer(engine, sessions, opts...).Handler()
}

// Handler builds the router.
func (s *Server) Handler() (http.Handler, error) {
	validate, err := requestValidator(func(w http.ResponseWriter, r *http.Request, err error) {
		s.logger.Warn("request rejected by openapi validation", "method", r.Method, "path", r.URL.Path, "err", err)
		s.writeError(w, http.StatusBadRequest, firstLine(err.Error()))
	})
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(validate)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec())
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Get("/graph", s.GetGraph)
	r.Get("/graph/issues", s.GetGraphIssues)
	r.Get("/graph/mermaid", s.GetGraphMermaid)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.StartSession)
		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/choices", s.Choose)
			r.Get("/history", s.GetHistory)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	if s.Assets != nil {
		r.Get("/assets/{name}", s.GetAsset)
	}
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics)
	}

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Story Builder API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := GetSwagger(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "storybuilder-http",
		"version":     strings.TrimSpace(storybuilder.Version),
		"api_version": apiVersion,
		"story":       s.Name,
	})
}

// GetGraph handles the GET /graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	g := s.Engine.Graph()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"start": g.StartKey(),
		"nodes": g.Nodes(),
	})
}

// GetGraphIssues handles the GET /graph/issues request.
func (s *Server) GetGraphIssues(w http.ResponseWriter, r *http.Request) {
	issues := s.Engine.Issues()
	if issues == nil {
		issues = []domain.ValidationIssue{}
	}
	s.writeJSON(w, http.StatusOK, issues)
}

// GetGraphMermaid handles the GET /graph/mermaid request.
func (s *Server) GetGraphMermaid(w http.ResponseWriter, r *http.Request) {
	var overlay *graph.GraphOverlay
	if id := r.URL.Query().Get("session"); id != "" {
		sess, err := s.Sessions.Load(r.Context(), id)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		overlay = graph.OverlayFor(sess)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(s.Engine.Graph(), overlay))
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// StartSession handles the POST /sessions request.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	resp, err := runner.StartAndView(r.Context(), s.Engine)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.Sessions.Create(r.Context(), resp.Session); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.logger.Info("session started", "session_id", resp.Session.ID, "node_id", resp.View.NodeID)
	s.writeJSON(w, http.StatusCreated, resp)
}

// GetSession handles the GET /sessions/{sessionId} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	sess, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	resp, err := runner.View(s.Engine, sess)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// DeleteSession handles the DELETE /sessions/{sessionId} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	if _, err := s.Sessions.Load(r.Context(), id); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.logger.Info("session aborted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// ChoiceRequest is the body of POST /sessions/{sessionId}/choices.
type ChoiceRequest struct {
	Choice int `json:"choice"`
}

// Choose handles the POST /sessions/{sessionId}/choices request.
func (s *Server) Choose(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	var body ChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("Choose: Invalid request body", "err", err)
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	next, err := s.Sessions.Update(r.Context(), id, func(current *domain.Session) (*domain.Session, error) {
		return s.Engine.Advance(r.Context(), current, body.Choice)
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	resp, err := runner.View(s.Engine, next)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if resp.Finished {
		s.logger.Info("session finished", "session_id", id, "node_id", next.Current)
	}

	if payload, err := json.Marshal(resp); err == nil {
		s.Streams.Broadcast(id, Event{Data: string(payload), Final: resp.Finished})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GetHistory handles the GET /sessions/{sessionId}/history request.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	sess, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"history": s.Engine.History(sess)})
}

// SubscribeEvents handles the GET /sessions/{sessionId}/events request (SSE).
// The stream ends when the client disconnects or the session finishes.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	if _, err := s.Sessions.Load(r.Context(), id); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected", "session_id", id)
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", ev.Data)
			flusher.Flush()
			if ev.Final {
				return
			}
		}
	}
}

// GetAsset handles the GET /assets/{name} request.
func (s *Server) GetAsset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var buf bytes.Buffer
	if err := s.Assets.WritePNG(&buf, name); err != nil {
		switch {
		case errors.Is(err, assets.ErrAssetNotFound), errors.Is(err, assets.ErrNoImage):
			s.writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, assets.ErrInvalidName):
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error("asset failed", "name", name, "err", err)
			s.writeError(w, http.StatusInternalServerError, "asset unavailable")
		}
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// -- Helpers --

func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "sessionId", chi.URLParam(r, "sessionId"), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid format for parameter sessionId: %s", err))
		return "", false
	}
	return id, true
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidChoiceIndex):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSessionFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		s.writeError(w, status, "internal error")
		return
	}
	s.writeError(w, status, err.Error())
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
