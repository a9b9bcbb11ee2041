package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for wbrank resources.
	uriScheme = "wbrank://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sessions",
		Name:        "sessions",
		Description: "Rank sessions started on this server",
		MIMEType:    "application/json",
	}, s.handleSessionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sessions/{sessionId}",
		Name:        "session-progress",
		Description: "Latest progress text or final report of a rank session",
		MIMEType:    "text/plain",
	}, s.handleSessionResource)
}

// handleSessionsResource lists tracked sessions.
func (s *Server) handleSessionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(s.tracker.list(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sessions: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSessionResource returns the visible text of one session.
func (s *Server) handleSessionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sessionID := extractSessionID(req.Params.URI)
	if sessionID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	snapshot, ok := s.tracker.get(sessionID)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	text := snapshot.Progress
	if snapshot.Error != "" {
		text = "❌ " + snapshot.Error
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		}},
	}, nil
}

// extractSessionID extracts the session ID from a URI like wbrank://sessions/{sessionId}.
func extractSessionID(uri string) string {
	const prefix = uriScheme + "sessions/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
