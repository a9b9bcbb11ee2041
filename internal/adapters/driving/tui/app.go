package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wbrank/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/wbrank/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wbrank/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wbrank/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wbrank/internal/core/domain"
	"github.com/custodia-labs/wbrank/internal/core/ports/driving"
)

// jobStarted carries the result channel of a started job.
type jobStarted struct {
	results <-chan driving.RankJobResult
}

// App is the rank progress view following the Elm architecture.
// It implements tea.Model for use with Bubbletea and acts as the
// job's progress sink.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// req is the job this view runs.
	req driving.RankJobRequest

	// ctx is the context for the job.
	ctx context.Context

	styles  *styles.Styles
	keymap  *keymap.KeyMap
	bar     *status.Bar
	spinner spinner.Model

	// updates hands progress from the job goroutine to the event loop.
	updates chan messages.ProgressUpdated

	// closed is closed once the job has finished or the view exits.
	closed    chan struct{}
	closeOnce sync.Once

	progress string
	report   *domain.Report
	err      error

	// quitting exits as soon as the job stops.
	quitting bool

	width int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a progress view for the given job.
func NewApp(ports *Ports, req driving.RankJobRequest) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Spinner

	return &App{
		ports:   ports,
		req:     req,
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		bar:     status.NewBar(s, km),
		spinner: sp,
		updates: make(chan messages.ProgressUpdated),
		closed:  make(chan struct{}),
	}, nil
}

// WithContext sets the context used to run the job.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init starts the job and the spinner.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.startJob)
}

// Update handles messages and returns the updated model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.bar.Update(msg)
		return a, nil

	case spinner.TickMsg:
		if a.bar.State().Done() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case jobStarted:
		a.bar.SetState(status.StateRunning)
		return a, tea.Batch(a.waitForProgress, waitForResult(msg.results))

	case messages.ProgressUpdated:
		a.progress = msg.Text
		return a, a.waitForProgress

	case messages.CancelRequested:
		if msg.Delivered && !a.bar.State().Done() {
			a.bar.SetState(status.StateCancelling)
		}
		return a, nil

	case messages.RankFinished:
		return a.finish(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// View renders the current progress or the final report.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render(fmt.Sprintf("wbrank · %s", a.req.ProductRef)))
	b.WriteString("\n\n")

	switch {
	case a.err != nil:
		b.WriteString(a.styles.Error.Render(a.err.Error()))
	case a.report != nil:
		b.WriteString(a.renderReport())
	default:
		text := a.progress
		if text == "" {
			text = "Waiting for the first results..."
		}
		b.WriteString(a.spinner.View())
		b.WriteString(" ")
		b.WriteString(a.styles.Panel.Render(text))
	}

	b.WriteString("\n\n")
	b.WriteString(a.bar.View())
	return b.String()
}

func (a *App) renderReport() string {
	text := domain.RenderReport(*a.report)
	if a.report.Status == domain.ReportCancelled {
		return a.styles.Panel.Render(a.styles.Warning.Render(text))
	}
	return a.styles.Panel.Render(a.styles.Normal.Render(text))
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.bar.State().Done() {
		if key.Matches(msg, a.keymap.Quit, a.keymap.Interrupt, a.keymap.Cancel) {
			return a, tea.Quit
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keymap.Interrupt):
		a.quitting = true
		return a, a.cancel
	case key.Matches(msg, a.keymap.Cancel):
		return a, a.cancel
	}
	return a, nil
}

func (a *App) finish(msg messages.RankFinished) (tea.Model, tea.Cmd) {
	a.report = msg.Report
	a.err = msg.Err
	a.stop()

	switch {
	case msg.Err != nil:
		a.bar.SetState(status.StateFailed)
		a.bar.SetMessage(msg.Err.Error())
	case msg.Report != nil && msg.Report.Status == domain.ReportCancelled:
		a.bar.SetState(status.StateCancelled)
	default:
		a.bar.SetState(status.StateCompleted)
	}

	if a.quitting {
		return a, tea.Quit
	}
	return a, nil
}

// startJob registers and launches the job.
func (a *App) startJob() tea.Msg {
	results, err := a.ports.Jobs.Start(a.ctx, a.req, a.Sink())
	if err != nil {
		return messages.RankFinished{Err: err}
	}
	return jobStarted{results: results}
}

func (a *App) cancel() tea.Msg {
	return messages.CancelRequested{Delivered: a.ports.Sessions.Cancel(a.req.SessionKey)}
}

func (a *App) waitForProgress() tea.Msg {
	select {
	case msg := <-a.updates:
		return msg
	case <-a.closed:
		return nil
	}
}

func waitForResult(results <-chan driving.RankJobResult) tea.Cmd {
	return func() tea.Msg {
		result, ok := <-results
		if !ok {
			return messages.RankFinished{Err: ErrJobAborted}
		}
		return messages.RankFinished{Report: result.Report, Err: result.Err}
	}
}

// Sink returns the progress sink feeding this view.
// Updates sent after the view has closed fail with ErrViewClosed.
func (a *App) Sink() driving.ProgressSink {
	return driving.ProgressFunc(func(ctx context.Context, text string, cancellable bool) error {
		select {
		case a.updates <- messages.ProgressUpdated{Text: text, Cancellable: cancellable}:
			return nil
		case <-a.closed:
			return ErrViewClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// Close releases a sink blocked on a view that is no longer read.
func (a *App) Close() {
	a.stop()
}

func (a *App) stop() {
	a.closeOnce.Do(func() { close(a.closed) })
}

// Progress returns the latest progress text.
func (a *App) Progress() string {
	return a.progress
}

// Report returns the final report, if the job finished.
func (a *App) Report() *domain.Report {
	return a.report
}

// Err returns the job error, if any.
func (a *App) Err() error {
	return a.err
}

// State returns the displayed job state.
func (a *App) State() status.State {
	return a.bar.State()
}
