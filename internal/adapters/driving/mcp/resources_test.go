package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
)

func TestExtractSessionID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid session URI",
			uri:      "wbrank://sessions/chat-1",
			expected: "chat-1",
		},
		{
			name:     "invalid prefix",
			uri:      "file://sessions/chat-1",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "wbrank://sessions/chat-1/extra",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractSessionID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleSessionsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("empty server returns empty list", func(t *testing.T) {
		server := newTestServer(t, &Ports{Jobs: newMockJobService(), Sessions: &mockSessionService{}})

		result, err := server.handleSessionsResource(ctx, makeReadResourceRequest("wbrank://sessions"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists started sessions", func(t *testing.T) {
		jobs := newMockJobService()
		server := newTestServer(t, &Ports{Jobs: jobs, Sessions: &mockSessionService{}})
		_, _, err := server.handleStartRank(ctx, nil, StartRankInput{Product: "146972802", SessionID: "chat-1"})
		require.NoError(t, err)
		defer func() { jobs.release <- driving.RankJobResult{} }()

		result, err := server.handleSessionsResource(ctx, makeReadResourceRequest("wbrank://sessions"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "chat-1")
		assert.Contains(t, result.Contents[0].Text, "146972802")
	})
}

func TestServer_handleSessionResource(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown session is not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{Jobs: newMockJobService(), Sessions: &mockSessionService{}})

		_, err := server.handleSessionResource(ctx, makeReadResourceRequest("wbrank://sessions/nope"))

		assert.Error(t, err)
	})

	t.Run("returns latest progress text", func(t *testing.T) {
		jobs := newMockJobService()
		server := newTestServer(t, &Ports{Jobs: jobs, Sessions: &mockSessionService{}})
		_, _, err := server.handleStartRank(ctx, nil, StartRankInput{Product: "1", SessionID: "chat-1"})
		require.NoError(t, err)
		sink := <-jobs.sinks
		require.NoError(t, sink.Update(ctx, "🔎 Searching 3 keywords...", false))

		result, err := server.handleSessionResource(ctx, makeReadResourceRequest("wbrank://sessions/chat-1"))

		require.NoError(t, err)
		assert.Equal(t, "🔎 Searching 3 keywords...", result.Contents[0].Text)
		jobs.release <- driving.RankJobResult{Report: &domain.Report{Status: domain.ReportCompleted}}
	})

	t.Run("failed session shows error", func(t *testing.T) {
		jobs := newMockJobService()
		server := newTestServer(t, &Ports{Jobs: jobs, Sessions: &mockSessionService{}})
		_, _, err := server.handleStartRank(ctx, nil, StartRankInput{Product: "1", SessionID: "chat-1"})
		require.NoError(t, err)
		<-jobs.sinks
		jobs.release <- driving.RankJobResult{Err: domain.ErrNoKeywords}

		require.Eventually(t, func() bool {
			result, err := server.handleSessionResource(ctx, makeReadResourceRequest("wbrank://sessions/chat-1"))
			return err == nil && result.Contents[0].Text == "❌ "+domain.ErrNoKeywords.Error()
		}, time.Second, 10*time.Millisecond)
	})
}
