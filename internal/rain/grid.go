package rain

// Grid owns one Column per terminal column and advances them in lockstep.
type Grid struct {
	rows, cols int
	density    float64
	columns    []Column
	raining    []bool
	src        *GlyphSource
}

// NewGrid provisions a grid sized to the terminal. A column index rains
// with probability density; idle indices still occupy their slot so the
// column count always matches the terminal width.
func NewGrid(rows, cols int, density float64, src *GlyphSource) *Grid {
	g := &Grid{density: density, src: src}
	g.Resize(rows, cols)
	return g
}

// Resize rebuilds every column from scratch. Prior trail state is
// discarded; resizes are rare and a one-frame glitch is tolerable.
func (g *Grid) Resize(rows, cols int) {
	g.rows, g.cols = rows, cols
	g.columns = make([]Column, cols)
	g.raining = make([]bool, cols)
	for i := range g.columns {
		g.raining[i] = g.src.rng.Float64() < g.density
		if g.raining[i] {
			g.columns[i] = Spawn(rows, g.src)
		}
	}
}

// Tick advances every raining column in index order. A column whose trail
// has fallen below the screen is respawned in place, so the number of
// raining columns never decays.
func (g *Grid) Tick() {
	for i := range g.columns {
		if !g.raining[i] {
			continue
		}
		if !g.columns[i].Advance(g.rows, g.src) {
			g.columns[i] = Spawn(g.rows, g.src)
		}
	}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// CellAt is the read-only view a renderer paints from.
func (g *Grid) CellAt(row, col int) (Cell, bool) {
	if col < 0 || col >= len(g.columns) || !g.raining[col] {
		return Cell{}, false
	}
	return g.columns[col].CellAt(row)
}
