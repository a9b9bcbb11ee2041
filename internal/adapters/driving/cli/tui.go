package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/wbrank/internal/adapters/driving/tui"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
	"github.com/custodia-labs/wbrank/internal/logger"
)

// runRankTUI runs the rank job behind the interactive progress view.
func runRankTUI(cmd *cobra.Command, req driving.RankJobRequest) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Jobs:     rankJobService,
		Sessions: sessionService,
	}

	app, err := tui.NewApp(ports, req)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())
	defer app.Close()

	// The view owns the terminal; keep warnings from tearing it.
	if !logger.IsVerbose() {
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(os.Stderr)
	}

	p := tea.NewProgram(app, tea.WithOutput(cmd.OutOrStdout()))
	if _, err := p.Run(); err != nil {
		// The view is gone; stop the search rather than leave it running.
		sessionService.Cancel(req.SessionKey)
		return fmt.Errorf("TUI error: %w", err)
	}

	if err := app.Err(); err != nil {
		return fmt.Errorf("rank failed: %w", err)
	}
	return nil
}
