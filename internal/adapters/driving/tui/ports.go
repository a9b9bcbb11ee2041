// Package tui provides the interactive terminal progress view for wbrank.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Jobs runs the rank search.
	Jobs driving.RankJobService

	// Sessions cancels the running search.
	Sessions driving.SessionService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Jobs == nil {
		return ErrMissingRankJobService
	}
	if p.Sessions == nil {
		return ErrMissingSessionService
	}
	return nil
}
