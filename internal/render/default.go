package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/rain/internal/theme"
	"golang.org/x/term"
)

// DefaultRenderer double-buffers the frame: each paint compares the new
// cell contents against the previous frame and emits escape sequences only
// for cells that changed.
type DefaultRenderer struct {
	out          io.Writer
	fd           int
	theme        theme.Theme
	restoreState *term.State
	buffer       strings.Builder
	rows, cols   int
	prev         []cell
	full         bool
}

type cell struct {
	glyph rune
	shade int8
}

const blank = int8(-1)

// The renderer's current SGR attribute between cells within a frame.
const (
	sgrUnknown = -2
	sgrReset   = -1
)

func NewRenderer(out io.Writer, fd int, th theme.Theme) *DefaultRenderer {
	return &DefaultRenderer{out: out, fd: fd, theme: th}
}

// Init switches the terminal to raw mode and enters the alternate screen
// with the cursor hidden. Nothing is acquired if the output is not a
// terminal, so a failure here needs no cleanup.
func (r *DefaultRenderer) Init() error {
	if !term.IsTerminal(r.fd) {
		return fmt.Errorf("output is not a terminal")
	}
	state, err := term.MakeRaw(r.fd)
	if nil != err {
		return fmt.Errorf("unable to enter raw mode: %w", err)
	}
	r.restoreState = state

	_, err = io.WriteString(r.out, ""+
		"\x1b[?1049h"+ // Enable alternate buffer
		"\x1b[?25l"+ // Make the cursor invisible
		"\x1b[2J", // Clear the screen
	)
	if nil != err {
		_ = term.Restore(r.fd, r.restoreState)
		r.restoreState = nil
		return fmt.Errorf("unable to initialize terminal: %w", err)
	}
	return nil
}

// Deinit leaves the alternate screen and restores cooked mode. Safe to
// call on every exit path, including after a failed Init or mid-frame
// write error.
func (r *DefaultRenderer) Deinit() error {
	_, werr := io.WriteString(r.out, ""+
		"\x1b[?1049l"+ // Disable alternate buffer
		"\x1b[?25h", // Make the cursor visible
	)
	if r.restoreState != nil {
		if err := term.Restore(r.fd, r.restoreState); nil != err {
			return fmt.Errorf("unable to restore terminal mode: %w", err)
		}
		r.restoreState = nil
	}
	if nil != werr {
		return fmt.Errorf("unable to restore screen: %w", werr)
	}
	return nil
}

// Resize reallocates the frame buffer. The next paint clears the screen
// and repaints from scratch.
func (r *DefaultRenderer) Resize(rows, cols int) {
	r.rows, r.cols = rows, cols
	r.prev = make([]cell, rows*cols)
	for i := range r.prev {
		r.prev[i] = cell{glyph: ' ', shade: blank}
	}
	r.full = true
}

// Paint writes one frame of cursor-positioned output. The cursor is moved
// only when the target cell does not follow the one just written, the
// color escape is emitted only when the shade changes, and vacated cells
// are blanked with an uncolored space. No newline is ever written. The
// whole frame goes out in a single write; an empty diff writes nothing.
func (r *DefaultRenderer) Paint(src Source) error {
	r.buffer.Reset()
	if r.full {
		r.buffer.WriteString("\x1b[2J")
		r.full = false
	}

	shades := r.theme.Shades()
	penRow, penCol := -1, -1
	sgr := sgrUnknown
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			next := cell{glyph: ' ', shade: blank}
			if c, ok := src.CellAt(row, col); ok {
				next = cell{glyph: c.Glyph, shade: shadeOf(c.Intensity, shades)}
			}
			idx := row*r.cols + col
			if next == r.prev[idx] {
				continue
			}
			r.prev[idx] = next

			if row != penRow || col != penCol {
				r.buffer.WriteString("\x1b[")
				r.buffer.WriteString(strconv.Itoa(row + 1))
				r.buffer.WriteString(";")
				r.buffer.WriteString(strconv.Itoa(col + 1))
				r.buffer.WriteString("H")
			}
			if next.shade == blank {
				if sgr != sgrReset {
					r.buffer.WriteString(r.theme.Reset())
					sgr = sgrReset
				}
			} else if sgr != int(next.shade) {
				r.buffer.WriteString(r.theme.Escape(int(next.shade)))
				sgr = int(next.shade)
			}
			r.buffer.WriteRune(next.glyph)
			penRow, penCol = row, col+1
		}
	}
	if r.buffer.Len() == 0 {
		return nil
	}
	r.buffer.WriteString(r.theme.Reset())

	if _, err := io.WriteString(r.out, r.buffer.String()); nil != err {
		return fmt.Errorf("unable to write frame: %w", err)
	}
	return nil
}

// RenderLoop invokes frame once per period, sleeping whatever remains of
// the period after the frame was built so the tick rate stays roughly
// constant. frame returns false to stop the loop.
func (r *DefaultRenderer) RenderLoop(period time.Duration, frame func(now time.Time) bool) {
	for {
		now := time.Now()
		deadline := now.Add(period)
		if !frame(now) {
			return
		}
		time.Sleep(time.Until(deadline))
	}
}

// shadeOf quantizes a fade intensity in (0, 1] to a shade index, 0 being
// the brightest. Monotonic: a brighter cell never gets a darker shade.
func shadeOf(intensity float64, shades int) int8 {
	s := int(math.Round((1 - intensity) * float64(shades-1)))
	if s < 0 {
		s = 0
	}
	if s > shades-1 {
		s = shades - 1
	}
	return int8(s)
}
