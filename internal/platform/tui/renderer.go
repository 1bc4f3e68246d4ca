// Package tui provides the Bubble Tea integration for the simulator.
// The simulation loop runs on its own goroutine and hands finished frames
// to the program by message passing; the program owns the terminal.
package tui

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gunsim/internal/core"
)

// ErrClosed is returned when drawing after the program has gone away.
var ErrClosed = errors.New("tui: renderer closed")

// chromeRows is the number of rows taken by the header and help bar.
const chromeRows = 4

// frameMsg carries one immutable frame from the loop to the program.
type frameMsg struct {
	lines  []core.Line
	status core.Status
}

// cursorMsg asks the program to show or hide the cursor.
type cursorMsg struct {
	visible bool
}

// loopDoneMsg reports that the simulation loop has returned.
type loopDoneMsg struct {
	err error
}

// Renderer implements core.Renderer by sending frames to a Bubble Tea
// program. It is safe to use from the loop goroutine while the program
// runs on another.
type Renderer struct {
	ctx  context.Context
	msgs chan tea.Msg
	done chan struct{}
	once sync.Once

	rows   atomic.Int64
	status core.Status // loop goroutine only
}

var (
	_ core.Renderer   = (*Renderer)(nil)
	_ core.StatusSink = (*Renderer)(nil)
)

// NewRenderer creates a renderer for a terminal of the given height.
// Sends give up once ctx is done or Close is called.
func NewRenderer(ctx context.Context, height int) *Renderer {
	r := &Renderer{
		ctx:  ctx,
		msgs: make(chan tea.Msg, 1),
		done: make(chan struct{}),
	}
	r.SetHeight(height)
	return r
}

// SetHeight updates the visible rows from the terminal height.
func (r *Renderer) SetHeight(height int) {
	r.rows.Store(int64(core.Max(height-chromeRows, 0)))
}

// Close stops further sends. Safe to call more than once.
func (r *Renderer) Close() {
	r.once.Do(func() { close(r.done) })
}

func (r *Renderer) send(msg tea.Msg) error {
	select {
	case r.msgs <- msg:
		return nil
	case <-r.done:
		return ErrClosed
	case <-r.ctx.Done():
		return ErrClosed
	}
}

// Clear is a no-op: every frame replaces the previous one in the view.
func (r *Renderer) Clear() error {
	return nil
}

// Rows returns the number of bullet rows that fit below the header.
func (r *Renderer) Rows() int {
	return int(r.rows.Load())
}

// SetStatus records the status sent with the next frame.
func (r *Renderer) SetStatus(s core.Status) {
	r.status = s
}

// WriteLines sends the frame to the program.
func (r *Renderer) WriteLines(lines []core.Line) error {
	frame := make([]core.Line, len(lines))
	copy(frame, lines)
	return r.send(frameMsg{lines: frame, status: r.status})
}

// HideCursor asks the program to hide the cursor.
func (r *Renderer) HideCursor() error {
	return r.send(cursorMsg{visible: false})
}

// ShowCursor asks the program to show the cursor. The program restores the
// cursor itself on exit, so a closed renderer is not an error here.
func (r *Renderer) ShowCursor() error {
	if err := r.send(cursorMsg{visible: true}); err != nil && !errors.Is(err, ErrClosed) {
		return err
	}
	return nil
}

// finish reports the loop result to the program.
func (r *Renderer) finish(err error) {
	//nolint:errcheck // Program may already be gone
	r.send(loopDoneMsg{err: err})
}

// waitForMsg returns a command that delivers the next loop message.
func (r *Renderer) waitForMsg() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-r.msgs:
			return msg
		case <-r.done:
			return nil
		case <-r.ctx.Done():
			return nil
		}
	}
}
