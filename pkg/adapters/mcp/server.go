// Package mcp exposes a story engine as Model Context Protocol tools, so an
// assistant can read a story with a user.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/aretw0/storybuilder"
	"github.com/aretw0/storybuilder/internal/logging"
	"github.com/aretw0/storybuilder/internal/presentation/graph"
	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/aretw0/storybuilder/pkg/ports"
	"github.com/aretw0/storybuilder/pkg/runner"
	"github.com/aretw0/storybuilder/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// GraphURI is the resource holding the story graph.
const GraphURI = "storybuilder://graph"

// HistoryResponse is returned by the story_history tool.
type HistoryResponse struct {
	SessionID string   `json:"session_id" jsonschema_description:"The session the history belongs to"`
	History   []string `json:"history" jsonschema_description:"Texts of every visited node, in order"`
}

// Server wraps the story engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.StoryEngine
	sessions  *session.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.StoryEngine, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		sessions:  sessions,
		mcpServer: server.NewMCPServer("storybuilder-mcp", strings.TrimSpace(storybuilder.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on addr using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("start_story",
		mcp.WithDescription("Start a new reading session at the first page of the story."),
		mcp.WithOutputSchema[runner.RichResponse](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("view_story",
		mcp.WithDescription("Show the current page of a session and its numbered choices."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by start_story")),
		mcp.WithOutputSchema[runner.RichResponse](),
	), mcp.NewStructuredToolHandler(s.handleView))

	s.mcpServer.AddTool(mcp.NewTool("choose",
		mcp.WithDescription("Take a choice on the current page. Finished sessions are closed after the last page is returned."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by start_story")),
		mcp.WithNumber("choice", mcp.Required(), mcp.Description("Zero-based index from view.choices[].index")),
		mcp.WithOutputSchema[runner.RichResponse](),
	), mcp.NewStructuredToolHandler(s.handleChoose))

	s.mcpServer.AddTool(mcp.NewTool("story_history",
		mcp.WithDescription("List the text of every page visited so far, in order."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by start_story")),
		mcp.WithOutputSchema[HistoryResponse](),
	), mcp.NewStructuredToolHandler(s.handleHistory))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the full story graph for introspection."),
		mcp.WithString("format", mcp.Description("json (default) or mermaid")),
	), s.handleGraph)
}

type sessionArgs struct {
	SessionID string `mapstructure:"session_id"`
}

type chooseArgs struct {
	SessionID string `mapstructure:"session_id"`
	Choice    int    `mapstructure:"choice"`
}

type graphArgs struct {
	Format string `mapstructure:"format"`
}

// decodeArgs maps loosely typed tool arguments onto out ("2" and 2.0 both
// become 2, 1.7 is rejected).
func decodeArgs(args map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       rejectFractionalInts,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// rejectFractionalInts stops weak decoding from truncating 1.7 into an int.
func rejectFractionalInts(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}
	var f float64
	switch from.Kind() {
	case reflect.Float64:
		f = data.(float64)
	case reflect.Float32:
		f = float64(data.(float32))
	default:
		return data, nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("expected a whole number, got %v", f)
	}
	return data, nil
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (runner.RichResponse, error) {
	resp, err := runner.StartAndView(ctx, s.engine)
	if err != nil {
		return runner.RichResponse{}, fmt.Errorf("start failed: %w", err)
	}
	if err := s.sessions.Create(ctx, resp.Session); err != nil {
		return runner.RichResponse{}, fmt.Errorf("start failed: %w", err)
	}
	s.logger.Info("MCP session started", "session_id", resp.Session.ID)
	return *resp, nil
}

func (s *Server) handleView(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (runner.RichResponse, error) {
	var in sessionArgs
	if err := decodeSessionArgs(args, &in.SessionID, &in); err != nil {
		return runner.RichResponse{}, err
	}
	sess, err := s.sessions.Load(ctx, in.SessionID)
	if err != nil {
		return runner.RichResponse{}, describe(err)
	}
	resp, err := runner.View(s.engine, sess)
	if err != nil {
		return runner.RichResponse{}, describe(err)
	}
	return *resp, nil
}

func (s *Server) handleChoose(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (runner.RichResponse, error) {
	var in chooseArgs
	if err := decodeSessionArgs(args, &in.SessionID, &in); err != nil {
		return runner.RichResponse{}, err
	}
	if _, ok := args["choice"]; !ok {
		return runner.RichResponse{}, errors.New("missing required argument: choice")
	}

	next, err := s.sessions.Update(ctx, in.SessionID, func(current *domain.Session) (*domain.Session, error) {
		return s.engine.Advance(ctx, current, in.Choice)
	})
	if err != nil {
		s.logger.Debug("MCP choose rejected", "session_id", in.SessionID, "choice", in.Choice, "err", err)
		return runner.RichResponse{}, describe(err)
	}
	resp, err := runner.View(s.engine, next)
	if err != nil {
		return runner.RichResponse{}, describe(err)
	}
	return *resp, nil
}

func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (HistoryResponse, error) {
	var in sessionArgs
	if err := decodeSessionArgs(args, &in.SessionID, &in); err != nil {
		return HistoryResponse{}, err
	}
	sess, err := s.sessions.Load(ctx, in.SessionID)
	if err != nil {
		return HistoryResponse{}, describe(err)
	}
	return HistoryResponse{SessionID: sess.ID, History: s.engine.History(sess)}, nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in graphArgs
	if err := decodeArgs(request.GetArguments(), &in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	switch in.Format {
	case "", "json":
		data, err := s.graphJSON()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode graph: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	case "mermaid":
		return mcp.NewToolResultText(graph.GenerateMermaid(s.engine.Graph(), nil)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q (want json or mermaid)", in.Format)), nil
	}
}

func (s *Server) graphJSON() ([]byte, error) {
	g := s.engine.Graph()
	return json.Marshal(map[string]any{
		"start": g.StartKey(),
		"nodes": g.Nodes(),
	})
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Story Graph",
		mcp.WithMIMEType("application/json"),
	), s.handleGraphResource)
}

func (s *Server) handleGraphResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := s.graphJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GraphURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func decodeSessionArgs(args map[string]interface{}, id *string, out interface{}) error {
	if err := decodeArgs(args, out); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("missing required argument: session_id")
	}
	return nil
}

// describe turns domain errors into messages an assistant can act on.
func describe(err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return fmt.Errorf("%w: it may have finished already; call start_story for a new one", err)
	case errors.Is(err, domain.ErrInvalidChoiceIndex):
		return fmt.Errorf("%w: call view_story to see the valid choices", err)
	default:
		return err
	}
}
