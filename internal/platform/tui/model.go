package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gunsim/internal/core"
)

// LoopFunc runs a simulation loop drawing to r until ctx is done.
type LoopFunc func(ctx context.Context, r core.Renderer) error

// Model is the Bubble Tea model for a running simulation.
type Model struct {
	title    string
	renderer *Renderer
	cancel   context.CancelFunc
	keys     SimKeyMap
	help     help.Model

	lines  []core.Line
	status core.Status
	screen *core.Screen
	width  int
	height int

	loopErr  error
	quitting bool
}

// NewModel creates a model that displays frames from r. cancel stops the
// simulation loop when the user quits.
func NewModel(title string, r *Renderer, cancel context.CancelFunc, width, height int) Model {
	h := help.New()
	h.Width = width

	return Model{
		title:    title,
		renderer: r,
		cancel:   cancel,
		keys:     DefaultSimKeyMap(),
		help:     h,
		screen:   core.NewScreen(width, height),
		width:    width,
		height:   height,
	}
}

// Init starts listening for frames from the loop.
func (m Model) Init() tea.Cmd {
	return m.renderer.waitForMsg()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(msg.Width, msg.Height)
		m.renderer.SetHeight(msg.Height)
		return m, nil

	case frameMsg:
		m.lines = msg.lines
		m.status = msg.status
		return m, m.renderer.waitForMsg()

	case cursorMsg:
		if msg.visible {
			return m, tea.Batch(tea.ShowCursor, m.renderer.waitForMsg())
		}
		return m, tea.Batch(tea.HideCursor, m.renderer.waitForMsg())

	case loopDoneMsg:
		m.loopErr = msg.err
		m.quitting = true
		m.cancel()
		m.renderer.Close()
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		m.renderer.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		//nolint:errcheck // Best-effort save, simulation continues regardless
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// saveScreenshot writes the current frame as plain text to
// ~/.gunsim/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".gunsim", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	m.screen.DrawLines(m.lines)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", screenshotName(m.title), timestamp))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func screenshotName(title string) string {
	name := strings.ToLower(strings.Join(strings.Fields(title), "-"))
	if name == "" {
		return "gunsim"
	}
	return name
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderHeader(m.title, m.status, m.width))
	b.WriteString("\n\n")
	b.WriteString(RenderLines(m.lines))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Lines returns the most recent frame.
func (m Model) Lines() []core.Line {
	return m.lines
}

// Done returns true once the user quit or the loop ended.
func (m Model) Done() bool {
	return m.quitting
}

// Err returns the error the loop finished with, if any.
func (m Model) Err() error {
	return m.loopErr
}

// Start launches loop on its own goroutine and returns the model that
// displays it. The returned channel yields the loop's error once it ends.
func Start(ctx context.Context, title string, loop LoopFunc, width, height int) (Model, <-chan error) {
	ctx, cancel := context.WithCancel(ctx)
	r := NewRenderer(ctx, height)
	model := NewModel(title, r, cancel, width, height)

	loopErr := make(chan error, 1)
	go func() {
		err := loop(ctx, r)
		r.finish(err)
		loopErr <- err
	}()

	return model, loopErr
}

// Run starts the Bubble Tea program and the simulation loop, and blocks
// until both have finished. The loop is cancelled when the user quits.
func Run(ctx context.Context, title string, loop LoopFunc, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model, loopErr := Start(ctx, title, loop, 80, 24)

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(model, opts...)

	_, progErr := p.Run()
	cancel()
	model.renderer.Close()
	err := <-loopErr

	if progErr != nil && !errors.Is(progErr, tea.ErrProgramKilled) {
		return progErr
	}
	return err
}
