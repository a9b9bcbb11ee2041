// Package mcp provides an MCP (Model Context Protocol) server adapter for wbrank.
// It lets AI assistants look up products and run rank searches with live status.
package mcp

import "errors"

// ErrMissingRankJobService is returned when the rank job service is not provided.
var ErrMissingRankJobService = errors.New("mcp: rank job service is required")

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("mcp: session service is required")

// ErrProductUnavailable is returned by product_info when no product service is wired.
var ErrProductUnavailable = errors.New("mcp: product service is not configured")
