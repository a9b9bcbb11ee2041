// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/wbrank/internal/core/domain"
)

// ProgressUpdated carries the latest progress text from the rank job.
type ProgressUpdated struct {
	Text        string
	Cancellable bool
}

// RankFinished carries the terminal result of the rank job.
type RankFinished struct {
	Report *domain.Report
	Err    error
}

// CancelRequested signals that a cancel was sent to the session.
// Delivered reports whether a live search received it.
type CancelRequested struct {
	Delivered bool
}
