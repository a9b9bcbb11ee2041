package mcp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
	"github.com/custodia-labs/wbrank/internal/logger"
)

// ProductInput is the input schema for the product_info tool.
type ProductInput struct {
	Product string `json:"product" jsonschema:"product link (…/catalog/{id}/detail.aspx) or numeric id"`
}

// ProductOutput is the output schema for the product_info tool.
type ProductOutput struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Brand       string   `json:"brand"`
	Composition string   `json:"composition"`
	Country     string   `json:"country"`
	OldPrice    *float64 `json:"old_price,omitempty"`
	NewPrice    *float64 `json:"new_price,omitempty"`
	Photos      []string `json:"photos,omitempty"`
	Keywords    []string `json:"keywords"`
}

// StartRankInput is the input schema for the start_rank tool.
type StartRankInput struct {
	Product   string   `json:"product" jsonschema:"product link or numeric id to rank"`
	Keywords  []string `json:"keywords,omitempty" jsonschema:"search phrases; extracted from the product card when empty"`
	SessionID string   `json:"session_id,omitempty" jsonschema:"caller-chosen session id; generated when empty"`
	Pages     int      `json:"pages,omitempty" jsonschema:"maximum pages scanned per keyword"`
	Interval  int      `json:"interval,omitempty" jsonschema:"pages between progress updates"`
}

// StartRankOutput is the output schema for the start_rank tool.
type StartRankOutput struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
}

// SessionInput identifies a rank session.
type SessionInput struct {
	SessionID string `json:"session_id" jsonschema:"session id returned by start_rank"`
}

// CancelRankOutput is the output schema for the cancel_rank tool.
type CancelRankOutput struct {
	SessionID string `json:"session_id"`
	Cancelled bool   `json:"cancelled"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "product_info",
		Description: "Fetch product metadata, prices and search keywords from the catalog",
	}, s.handleProductInfo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "start_rank",
		Description: "Start ranking a product in marketplace search for each keyword; poll rank_status for progress",
	}, s.handleStartRank)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rank_status",
		Description: "Get the latest progress text and final report of a rank session",
	}, s.handleRankStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cancel_rank",
		Description: "Cancel a running rank session; results gathered so far are kept",
	}, s.handleCancelRank)
}

// handleProductInfo handles the product_info tool invocation.
func (s *Server) handleProductInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProductInput,
) (*mcp.CallToolResult, ProductOutput, error) {
	if s.ports.Product == nil {
		return nil, ProductOutput{}, ErrProductUnavailable
	}

	info, err := s.ports.Product.Get(ctx, input.Product)
	if err != nil {
		return nil, ProductOutput{}, err
	}

	return nil, ProductOutput{
		ID:          info.Card.ID,
		Title:       info.Card.Title,
		Brand:       info.Card.Brand,
		Composition: info.Composition,
		Country:     info.Country,
		OldPrice:    info.Prices.Old,
		NewPrice:    info.Prices.New,
		Photos:      info.Photos,
		Keywords:    info.Keywords,
	}, nil
}

// handleStartRank handles the start_rank tool invocation.
// The job runs on the server context, not the tool call's.
func (s *Server) handleStartRank(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input StartRankInput,
) (*mcp.CallToolResult, StartRankOutput, error) {
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	req := driving.RankJobRequest{
		SessionKey: sessionID,
		ProductRef: input.Product,
		Keywords:   input.Keywords,
		Options:    s.rankOptions(input.Pages, input.Interval),
	}

	run := s.tracker.prepare(sessionID, input.Product)
	results, err := s.ports.Jobs.Start(s.jobContext(), req, run)
	if err != nil {
		return nil, StartRankOutput{}, fmt.Errorf("starting rank for session %s: %w", sessionID, err)
	}
	s.tracker.publish(run)

	go func() {
		for result := range results {
			run.finish(result)
		}
		logger.Debug("Rank session %s finished", sessionID)
	}()

	return nil, StartRankOutput{SessionID: sessionID, State: stateRunning}, nil
}

// handleRankStatus handles the rank_status tool invocation.
func (s *Server) handleRankStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SessionInput,
) (*mcp.CallToolResult, RunSnapshot, error) {
	snapshot, ok := s.tracker.get(input.SessionID)
	if !ok {
		return nil, RunSnapshot{}, fmt.Errorf("session %q: %w", input.SessionID, domain.ErrNotFound)
	}
	return nil, snapshot, nil
}

// handleCancelRank handles the cancel_rank tool invocation.
func (s *Server) handleCancelRank(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SessionInput,
) (*mcp.CallToolResult, CancelRankOutput, error) {
	cancelled := s.ports.Sessions.Cancel(input.SessionID)
	return nil, CancelRankOutput{SessionID: input.SessionID, Cancelled: cancelled}, nil
}

// rankOptions resolves pagination from the input, falling back to the
// current settings.
func (s *Server) rankOptions(pages, interval int) driving.RankOptions {
	opts := driving.RankOptions{PageBound: pages, UpdateInterval: interval}
	if s.ports.Settings == nil {
		return opts
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		logger.Warn("Failed to read settings, using service defaults: %v", err)
		return opts
	}
	if opts.PageBound <= 0 {
		opts.PageBound = settings.Search.PageBound
	}
	if opts.UpdateInterval <= 0 {
		opts.UpdateInterval = settings.Search.UpdateInterval
	}
	return opts
}
