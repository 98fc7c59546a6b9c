package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"git.lost.host/meutraa/rain/internal/rain"
	"git.lost.host/meutraa/rain/internal/theme"
)

type stubSource map[[2]int]rain.Cell

func (s stubSource) CellAt(row, col int) (rain.Cell, bool) {
	c, ok := s[[2]int{row, col}]
	return c, ok
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func greenTheme(t *testing.T) theme.Theme {
	t.Helper()
	th, err := theme.NewDefault("green")
	if err != nil {
		t.Fatal(err)
	}
	return th
}

func TestPaintNeverWritesNewline(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, -1, greenTheme(t))
	r.Resize(3, 4)
	src := stubSource{
		{0, 0}: {Glyph: 'ﾊ', Intensity: 1.0},
		{2, 3}: {Glyph: 'ﾐ', Intensity: 0.3},
	}
	if err := r.Paint(src); err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(buf.String(), "\n\r") {
		t.Errorf("frame contains a newline: %q", buf.String())
	}
}

func TestPaintUnchangedFrameWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, -1, greenTheme(t))
	r.Resize(2, 2)
	src := stubSource{{1, 1}: {Glyph: 'ﾂ', Intensity: 0.5}}
	if err := r.Paint(src); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := r.Paint(src); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("unchanged frame wrote %q", buf.String())
	}
}

func TestPaintBlanksVacatedCells(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, -1, greenTheme(t))
	r.Resize(3, 3)
	if err := r.Paint(stubSource{{1, 1}: {Glyph: 'ﾗ', Intensity: 1.0}}); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := r.Paint(stubSource{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[2;2H") {
		t.Errorf("vacated cell not addressed: %q", out)
	}
	if !strings.Contains(out, " ") {
		t.Errorf("vacated cell not blanked with a space: %q", out)
	}
}

func TestPaintPositionsCursorOncePerRun(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, -1, greenTheme(t))
	r.Resize(1, 3)
	src := stubSource{
		{0, 0}: {Glyph: 'ｱ', Intensity: 1.0},
		{0, 1}: {Glyph: 'ｲ', Intensity: 1.0},
		{0, 2}: {Glyph: 'ｳ', Intensity: 1.0},
	}
	if err := r.Paint(src); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if n := strings.Count(out, "\x1b[1;1H"); n != 1 {
		t.Errorf("%v position escapes for the run start, want 1: %q", n, out)
	}
	for _, pos := range []string{"\x1b[1;2H", "\x1b[1;3H"} {
		if strings.Contains(out, pos) {
			t.Errorf("repositioned inside a contiguous run: %q", out)
		}
	}
	if n := strings.Count(out, "38;2;"); n != 1 {
		t.Errorf("%v color escapes for a single shade, want 1: %q", n, out)
	}
}

func TestPaintFullRepaintAfterResize(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, -1, greenTheme(t))
	r.Resize(2, 2)
	src := stubSource{{0, 0}: {Glyph: 'ﾈ', Intensity: 1.0}}
	if err := r.Paint(src); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	r.Resize(2, 2)
	if err := r.Paint(src); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[2J") {
		t.Errorf("no clear after resize: %q", out)
	}
	if !strings.Contains(out, "ﾈ") {
		t.Errorf("cell not repainted after resize: %q", out)
	}
}

func TestPaintMonoOmitsColorCodes(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, -1, theme.MonoTheme{})
	r.Resize(2, 2)
	src := stubSource{{0, 1}: {Glyph: 'ﾎ', Intensity: 0.7}}
	if err := r.Paint(src); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "38;2;") || strings.Contains(out, "\x1b[0m") {
		t.Errorf("mono paint emitted color codes: %q", out)
	}
}

func TestPaintWriteFailurePropagatesAndDeinitStillRestores(t *testing.T) {
	r := NewRenderer(failWriter{}, -1, greenTheme(t))
	r.Resize(2, 2)
	err := r.Paint(stubSource{{0, 0}: {Glyph: 'ｿ', Intensity: 1.0}})
	if err == nil {
		t.Fatal("write failure did not propagate")
	}

	var buf bytes.Buffer
	r.out = &buf
	if err := r.Deinit(); err != nil {
		t.Fatalf("deinit after write failure: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[?1049l") || !strings.Contains(out, "\x1b[?25h") {
		t.Errorf("deinit did not restore screen and cursor: %q", out)
	}
}

func TestShadeOfQuantization(t *testing.T) {
	if s := shadeOf(1.0, 8); s != 0 {
		t.Errorf("full intensity got shade %v", s)
	}
	last := int8(0)
	for i := 10; i >= 1; i-- {
		s := shadeOf(float64(i)/10, 8)
		if s < last {
			t.Fatalf("intensity %v got brighter shade %v after %v", float64(i)/10, s, last)
		}
		if s < 0 || s > 7 {
			t.Fatalf("shade %v out of range", s)
		}
		last = s
	}
}

func TestRenderLoopStopsWhenFrameReturnsFalse(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, -1, theme.MonoTheme{})
	frames := 0
	r.RenderLoop(time.Millisecond, func(time.Time) bool {
		frames++
		return frames < 3
	})
	if frames != 3 {
		t.Errorf("loop ran %v frames, want 3", frames)
	}
}
