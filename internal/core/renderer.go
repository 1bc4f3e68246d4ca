package core

//go:generate go tool mockgen -destination=./mocks/renderer_mock.go -package=mocks . Renderer

// Line is one pre-formatted line of output bound to a display row.
// Grounded marks a bullet resting on the ground; renderers may dim it.
type Line struct {
	Row      int
	Text     string
	Grounded bool
}

// Renderer is the display sink the simulation draws into.
// Implementations own all terminal control; callers never emit escape
// sequences themselves.
type Renderer interface {
	// Clear wipes the previous frame and homes the cursor so the next
	// frame overwrites in place instead of scrolling.
	Clear() error

	// Rows returns the number of text rows currently visible.
	Rows() int

	// WriteLines draws each line at its row.
	WriteLines(lines []Line) error

	// HideCursor and ShowCursor toggle the terminal cursor.
	HideCursor() error
	ShowCursor() error
}

// Status summarizes the simulation for renderers that show a header.
type Status struct {
	Ticks   uint64
	Bullets int
	Shots   int
	Evicted int
}

// StatusSink is implemented by renderers that display a Status alongside
// the lines. Draw passes it each frame before writing lines.
type StatusSink interface {
	SetStatus(s Status)
}
