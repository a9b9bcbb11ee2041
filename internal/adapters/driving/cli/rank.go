package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
)

// cliSessionKey scopes cancellation for a terminal invocation.
const cliSessionKey = "cli"

var (
	rankPages    int
	rankInterval int
	rankJSON     bool
	rankPlain    bool
)

// isTerminal reports whether stdout is interactive.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var rankCmd = &cobra.Command{
	Use:   "rank <url|id> [keyword...]",
	Short: "Find the product's position in search for each keyword",
	Long: `Searches the marketplace for each keyword and reports the product's
position, scanning results page by page with a pause between requests.

Keywords are extracted from the product card unless given explicitly.
Press Ctrl-C (or Esc in the interactive view) to stop; results gathered
so far are still reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRank,
}

func init() {
	rankCmd.Flags().IntVarP(&rankPages, "pages", "p", 0, "maximum pages per keyword (0 = configured)")
	rankCmd.Flags().IntVar(&rankInterval, "interval", 0, "pages between progress updates (0 = configured)")
	rankCmd.Flags().BoolVar(&rankJSON, "json", false, "output the final report as JSON")
	rankCmd.Flags().BoolVar(&rankPlain, "plain", false, "print progress as plain text instead of the interactive view")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	if rankJobService == nil || sessionService == nil {
		return errors.New("rank service not configured")
	}

	req := driving.RankJobRequest{
		SessionKey: cliSessionKey,
		ProductRef: args[0],
		Keywords:   args[1:],
		Options: driving.RankOptions{
			PageBound:      rankPages,
			UpdateInterval: rankInterval,
		},
	}

	if !rankJSON && !rankPlain && isTerminal() {
		return runRankTUI(cmd, req)
	}

	progressOut := cmd.OutOrStdout()
	if rankJSON {
		progressOut = cmd.ErrOrStderr()
	}

	stop := cancelOnInterrupt(cmd.ErrOrStderr(), req.SessionKey)
	defer stop()

	report, err := rankJobService.Run(cmd.Context(), req, textSink(progressOut))
	if err != nil {
		return fmt.Errorf("rank failed: %w", err)
	}

	if rankJSON {
		return outputReportJSON(cmd, report)
	}
	return nil
}

// textSink prints every progress update as a separate block.
func textSink(w io.Writer) driving.ProgressSink {
	return driving.ProgressFunc(func(_ context.Context, text string, _ bool) error {
		if _, err := fmt.Fprintf(w, "%s\n\n", text); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrChannel, err)
		}
		return nil
	})
}

// cancelOnInterrupt turns Ctrl-C into a cooperative cancel of the session.
// The returned function stops listening.
func cancelOnInterrupt(w io.Writer, key string) func() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-signals:
				if sessionService.Cancel(key) {
					fmt.Fprintln(w, "⏹ Cancelling search...")
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(signals)
		close(done)
	}
}

func outputReportJSON(cmd *cobra.Command, report *domain.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
