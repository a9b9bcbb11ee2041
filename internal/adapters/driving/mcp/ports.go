package mcp

import (
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Jobs runs multi-keyword rank searches.
	Jobs driving.RankJobService

	// Sessions cancels running searches.
	Sessions driving.SessionService

	// Product resolves product metadata and keywords.
	Product driving.ProductService

	// Settings supplies pagination defaults at call time, so a reloaded
	// config applies to the next search.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Jobs == nil {
		return ErrMissingRankJobService
	}
	if p.Sessions == nil {
		return ErrMissingSessionService
	}
	// Product and Settings are optional
	return nil
}
