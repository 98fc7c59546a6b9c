package rain

// Cell is one lit trail position as seen by a renderer.
type Cell struct {
	Glyph     rune
	Intensity float64
}

// Column is one falling stream. The head row grows downward and may be
// negative while the stream is still entering from above the screen.
type Column struct {
	head   int
	length int
	speed  int
	glyphs []rune
	active bool
}

const (
	minSpeed  = 1
	maxSpeed  = 3
	minLength = 4

	// Spawn staggers entry by starting the head up to this many screen
	// heights above row 0.
	entryDelayScreens = 3
)

// Spawn returns a fresh column with randomized speed, trail length and
// entry delay, and a fully populated glyph buffer.
func Spawn(rows int, src *GlyphSource) Column {
	maxLength := rows
	if maxLength < minLength+1 {
		maxLength = minLength + 1
	}
	length := minLength + src.rng.Intn(maxLength-minLength+1)
	glyphs := make([]rune, length)
	for i := range glyphs {
		glyphs[i] = src.Next()
	}
	return Column{
		head:   -src.rng.Intn(entryDelayScreens*rows + 1),
		length: length,
		speed:  minSpeed + src.rng.Intn(maxSpeed-minSpeed+1),
		glyphs: glyphs,
		active: true,
	}
}

// Advance moves the head down by the column's speed and re-rolls the glyph
// at the new head cell. Exactly one glyph is drawn per call, keeping the
// shared random stream aligned with column order. Returns false once the
// entire trail has fallen below row rows.
func (c *Column) Advance(rows int, src *GlyphSource) bool {
	c.head += c.speed
	c.glyphs[mod(c.head, c.length)] = src.Next()
	if c.head-c.length > rows {
		c.active = false
	}
	return c.active
}

// CellAt reports the glyph and fade intensity covering row. A row is lit
// when it lies in the half-open interval (head-length, head]; rows above
// the screen are never lit. Intensity is 1.0 at the head and decays
// linearly toward the tail, staying within (0, 1].
func (c *Column) CellAt(row int) (Cell, bool) {
	if row < 0 {
		return Cell{}, false
	}
	dist := c.head - row
	if dist < 0 || dist >= c.length {
		return Cell{}, false
	}
	return Cell{
		Glyph:     c.glyphs[mod(row, c.length)],
		Intensity: 1 - float64(dist)/float64(c.length),
	}, true
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
