// Package tcellview renders the simulation into a tcell screen.
package tcellview

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/gunsim/internal/core"
)

// Renderer implements core.Renderer on a tcell.Screen.
type Renderer struct {
	screen tcell.Screen
	style  tcell.Style
}

var _ core.Renderer = (*Renderer)(nil)

// New opens and initializes the terminal screen.
func New() (*Renderer, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return NewWithScreen(s), nil
}

// NewWithScreen wraps an initialized screen. Tests pass a simulation screen.
func NewWithScreen(s tcell.Screen) *Renderer {
	return &Renderer{
		screen: s,
		style:  tcell.StyleDefault,
	}
}

// Screen returns the underlying screen.
func (r *Renderer) Screen() tcell.Screen {
	return r.screen
}

// Clear wipes the back buffer.
func (r *Renderer) Clear() error {
	r.screen.Clear()
	return nil
}

// Rows returns the screen height.
func (r *Renderer) Rows() int {
	_, h := r.screen.Size()
	return h
}

// WriteLines draws each line at its row and shows the frame.
// Text past the right edge is cut.
func (r *Renderer) WriteLines(lines []core.Line) error {
	w, h := r.screen.Size()
	for _, l := range lines {
		if l.Row < 0 || l.Row >= h {
			continue
		}
		x := 0
		for _, ch := range l.Text {
			if x >= w {
				break
			}
			r.screen.SetContent(x, l.Row, ch, nil, r.style)
			x++
		}
	}
	r.screen.Show()
	return nil
}

// HideCursor hides the terminal cursor.
func (r *Renderer) HideCursor() error {
	r.screen.HideCursor()
	return nil
}

// ShowCursor parks the cursor at the top left and shows it.
func (r *Renderer) ShowCursor() error {
	r.screen.ShowCursor(0, 0)
	return nil
}

// Close restores the terminal.
func (r *Renderer) Close() {
	r.screen.Fini()
}

// IsQuitKey reports whether a key press should stop the simulation.
func IsQuitKey(key tcell.Key, ch rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ch == 'q' || ch == 'Q'
	}
	return false
}

// Watch polls screen events until the screen is finalized, calling cancel
// on a quit key and resyncing the display on resize.
func (r *Renderer) Watch(ctx context.Context, cancel context.CancelFunc) {
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if IsQuitKey(ev.Key(), ev.Rune()) {
				cancel()
			}
		case *tcell.EventResize:
			r.screen.Sync()
		}
		if ctx.Err() != nil {
			return
		}
	}
}
