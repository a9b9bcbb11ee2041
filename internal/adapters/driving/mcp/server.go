package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wbrank/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for wbrank.
type Server struct {
	ports   *Ports
	server  *mcp.Server
	tracker *tracker

	// jobCtx outlives individual tool calls; rank jobs run on it.
	mu     sync.Mutex
	jobCtx context.Context
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "wbrank",
		Version: Version,
	}

	s := &Server{
		ports:   ports,
		server:  mcp.NewServer(impl, nil),
		tracker: newTracker(time.Now),
		jobCtx:  context.Background(),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	s.setJobContext(ctx)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	s.setJobContext(ctx)

	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("MCP server listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) setJobContext(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobCtx = ctx
}

func (s *Server) jobContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobCtx
}
