package render

import (
	"time"

	"git.lost.host/meutraa/rain/internal/rain"
)

// Source is the read-only view of the simulation a frame is painted from.
type Source interface {
	CellAt(row, col int) (rain.Cell, bool)
}

type Renderer interface {
	Init() error
	Deinit() error
	Resize(rows, cols int)
	Paint(src Source) error
	RenderLoop(period time.Duration, frame func(now time.Time) bool)
}
