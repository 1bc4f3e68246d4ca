// Package plain renders the simulation with raw ANSI escape sequences.
// Each frame clears the screen, homes the cursor and rewrites every line,
// buffered so the terminal receives the whole frame in one write.
package plain

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/gunsim/internal/core"
)

// Escape sequences.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// DefaultRows is used when the output is not a terminal.
const DefaultRows = 24

// Renderer implements core.Renderer on an io.Writer.
type Renderer struct {
	w    *bufio.Writer
	rows func() int
}

var _ core.Renderer = (*Renderer)(nil)

// New creates a renderer on w. When w is a terminal its height is queried
// each frame; otherwise DefaultRows is used.
func New(w io.Writer) *Renderer {
	r := &Renderer{
		w:    bufio.NewWriter(w),
		rows: func() int { return DefaultRows },
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		r.rows = func() int {
			_, h, err := term.GetSize(fd)
			if err != nil {
				return DefaultRows
			}
			return h
		}
	}
	return r
}

// NewWithRows creates a renderer with a fixed height.
func NewWithRows(w io.Writer, rows int) *Renderer {
	return &Renderer{
		w:    bufio.NewWriter(w),
		rows: func() int { return rows },
	}
}

// Clear buffers a clear-and-home sequence. It reaches the terminal with the
// next WriteLines.
func (r *Renderer) Clear() error {
	_, err := r.w.WriteString(clearScreen + cursorHome)
	return err
}

// Rows returns the terminal height.
func (r *Renderer) Rows() int {
	return r.rows()
}

// WriteLines writes each line followed by a newline and flushes the frame.
// Lines are written in slice order; rows are assumed consecutive from 0.
func (r *Renderer) WriteLines(lines []core.Line) error {
	for _, l := range lines {
		if _, err := r.w.WriteString(l.Text); err != nil {
			return err
		}
		if err := r.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return r.w.Flush()
}

// HideCursor hides the terminal cursor.
func (r *Renderer) HideCursor() error {
	return r.emit(hideCursor)
}

// ShowCursor shows the terminal cursor.
func (r *Renderer) ShowCursor() error {
	return r.emit(showCursor)
}

func (r *Renderer) emit(seq string) error {
	if _, err := r.w.WriteString(seq); err != nil {
		return err
	}
	return r.w.Flush()
}
