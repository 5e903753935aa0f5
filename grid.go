package tilekit

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// PlaceablePtr constrains a grid's entity type E: *E must be a Placeable.
// Grids store E by value and call methods through *E.
type PlaceablePtr[E any] interface {
	*E
	Placeable
}

// neighbourOffsets lists the Moore neighbourhood in lookup order.
var neighbourOffsets = [8]ScreenPosition{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid is a columns×rows matrix of entities laid out relative to an anchor
// point. Each cell holds its own copy of the prototype the grid was built
// from. Layout assumes every cell has the size and margin of cell (0,0);
// SetPositionsOnScreen logs a warning when that does not hold.
type Grid[E any, P PlaceablePtr[E]] struct {
	cells     [][]E
	anchor    AnchorPoint
	reference ScreenPosition

	// ShouldRender filters cells in DisplayGrid. nil renders every cell.
	ShouldRender func(coords ScreenPosition) bool

	// OnMouseInput, when set, replaces the default ProcessMouseInput
	// behavior entirely.
	OnMouseInput func(in *PointerInput)

	// OnCellPress and OnCellClick receive cell events from the default
	// ProcessMouseInput.
	OnCellPress func(cell P, ev CellEvent)
	OnCellClick func(cell P, ev CellEvent)

	// Events, when set, receives every cell event the default
	// ProcessMouseInput dispatches.
	Events CellEventSink
}

// NewGrid stamps prototype into every cell of a columns×rows grid, assigns
// each cell its (column, row) coordinates and lays the grid out so that
// anchor lands on reference.
func NewGrid[E any, P PlaceablePtr[E]](columns, rows int, prototype P, anchor AnchorPoint, reference ScreenPosition) (*Grid[E, P], error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, columns, rows)
	}
	if prototype == nil {
		return nil, errors.New("tilekit: nil grid prototype")
	}

	cells := make([][]E, rows)
	for y := range cells {
		row := make([]E, columns)
		for x := range row {
			row[x] = *prototype
			P(&row[x]).SetGridCoords(ScreenPosition{x, y})
		}
		cells[y] = row
	}

	g := &Grid[E, P]{cells: cells, anchor: anchor}
	if err := g.SetPositionsOnScreen(reference); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid[E, P]) at(col, row int) P {
	return P(&g.cells[row][col])
}

// Columns returns the number of columns.
func (g *Grid[E, P]) Columns() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// Rows returns the number of rows.
func (g *Grid[E, P]) Rows() int {
	return len(g.cells)
}

// Anchor returns the grid's anchor point.
func (g *Grid[E, P]) Anchor() AnchorPoint {
	return g.anchor
}

// Reference returns the reference position of the last layout.
func (g *Grid[E, P]) Reference() ScreenPosition {
	return g.reference
}

// Cell returns the entity at (col, row). The pointer refers into the grid.
func (g *Grid[E, P]) Cell(col, row int) (P, bool) {
	if !g.inBounds(col, row) {
		return nil, false
	}
	return g.at(col, row), true
}

func (g *Grid[E, P]) inBounds(col, row int) bool {
	return row >= 0 && row < len(g.cells) && col >= 0 && col < len(g.cells[row])
}

// Each calls fn for every cell in row-major order.
func (g *Grid[E, P]) Each(fn func(cell P)) {
	for y := range g.cells {
		for x := range g.cells[y] {
			fn(g.at(x, y))
		}
	}
}

// PixelExtent returns the size of the whole grid in pixels, computed from
// cell (0,0): columns×width + (columns−1)×marginWidth, and likewise for
// height.
func (g *Grid[E, P]) PixelExtent() (ScreenPosition, error) {
	cols, rows := g.Columns(), g.Rows()
	if cols == 0 || rows == 0 {
		return ScreenPosition{}, ErrEmptyGrid
	}
	first := g.at(0, 0)
	return ScreenPosition{
		X: cols*first.Width() + (cols-1)*first.MarginWidth(),
		Y: rows*first.Height() + (rows-1)*first.MarginHeight(),
	}, nil
}

// Uniform reports whether every cell has the size and margin of cell (0,0).
func (g *Grid[E, P]) Uniform() bool {
	if g.Rows() == 0 || g.Columns() == 0 {
		return true
	}
	first := g.at(0, 0)
	w, h := first.Width(), first.Height()
	mw, mh := first.MarginWidth(), first.MarginHeight()
	for y := range g.cells {
		for x := range g.cells[y] {
			c := g.at(x, y)
			if c.Width() != w || c.Height() != h || c.MarginWidth() != mw || c.MarginHeight() != mh {
				return false
			}
		}
	}
	return true
}

// SetAnchorPoint changes the grid's anchor and lays the grid out again
// around the current reference position.
func (g *Grid[E, P]) SetAnchorPoint(anchor AnchorPoint) error {
	g.anchor = anchor
	return g.SetPositionsOnScreen(g.reference)
}

// SetAnchorAt changes the anchor and the reference position together.
func (g *Grid[E, P]) SetAnchorAt(anchor AnchorPoint, reference ScreenPosition) error {
	g.anchor = anchor
	return g.SetPositionsOnScreen(reference)
}

// SetPositionsOnScreen recomputes every cell's screen position so that the
// grid's anchor lands on reference. Cell (col, row) is placed at
//
//	x = col*(marginWidth+width) + reference.X - offset.X
//	y = row*(marginHeight+height) + reference.Y - offset.Y
//
// using that cell's own size and margin.
func (g *Grid[E, P]) SetPositionsOnScreen(reference ScreenPosition) error {
	extent, err := g.PixelExtent()
	if err != nil {
		return err
	}
	g.reference = reference
	off := AnchorOffset(g.anchor, extent)

	if !g.Uniform() {
		logger.Warn("grid cells differ in size or margin; layout uses each cell's own size",
			"columns", g.Columns(), "rows", g.Rows())
	}

	for y := range g.cells {
		for x := range g.cells[y] {
			c := g.at(x, y)
			c.SetScreenPosition(
				x*(c.MarginWidth()+c.Width())+reference.X-off.X,
				y*(c.MarginHeight()+c.Height())+reference.Y-off.Y,
			)
		}
	}
	if globalDebug {
		logger.Debug("grid laid out", "anchor", g.anchor, "reference", reference, "extent", extent)
	}
	return nil
}

// DisplayGrid renders every cell accepted by ShouldRender, row by row from
// the top, left to right. Later cells draw over earlier ones.
func (g *Grid[E, P]) DisplayGrid(dst *ebiten.Image) {
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.ShouldRender != nil && !g.ShouldRender(ScreenPosition{x, y}) {
				continue
			}
			g.at(x, y).Render(dst)
		}
	}
}

// Render is DisplayGrid; it lets a grid be used as an App layer.
func (g *Grid[E, P]) Render(dst *ebiten.Image) {
	g.DisplayGrid(dst)
}

// Neighbours returns copies of the up to eight cells around entity's grid
// coordinates. Offsets outside the grid are skipped; there is no wraparound.
func (g *Grid[E, P]) Neighbours(entity P) []E {
	return g.NeighboursAt(entity.GridCoords())
}

// NeighboursAt returns copies of the cells around coords in the order
// (−1,−1), (−1,0), (−1,1), (0,−1), (0,1), (1,−1), (1,0), (1,1).
func (g *Grid[E, P]) NeighboursAt(coords ScreenPosition) []E {
	out := make([]E, 0, len(neighbourOffsets))
	for _, d := range neighbourOffsets {
		nx, ny := coords.X+d.X, coords.Y+d.Y
		if g.inBounds(nx, ny) {
			out = append(out, g.cells[ny][nx])
		}
	}
	return out
}

// CellAt returns the cell whose on-screen rectangle contains pt.
func (g *Grid[E, P]) CellAt(pt ScreenPosition) (P, bool) {
	for y := range g.cells {
		for x := range g.cells[y] {
			c := g.at(x, y)
			if Bounds(c).Contains(pt) {
				return c, true
			}
		}
	}
	return nil, false
}

// ProcessMouseInput translates pointer transitions into cell events. With
// OnMouseInput set, that function handles the input instead. Otherwise a
// press over a cell fires OnCellPress, and a release over the cell the
// press started on fires OnCellClick; both are also sent to Events.
func (g *Grid[E, P]) ProcessMouseInput(in *PointerInput) {
	if g.OnMouseInput != nil {
		g.OnMouseInput(in)
		return
	}
	for _, ev := range in.Events() {
		cell, ok := g.CellAt(ev.Position)
		if !ok {
			continue
		}
		switch ev.Type {
		case PointerDown:
			g.dispatch(EventCellPress, cell, ev, g.OnCellPress)
		case PointerUp:
			start, ok := g.CellAt(ev.Start)
			if !ok || !start.GridCoords().Equal(cell.GridCoords()) {
				continue
			}
			g.dispatch(EventCellClick, cell, ev, g.OnCellClick)
		}
	}
}

func (g *Grid[E, P]) dispatch(typ EventType, cell P, ev PointerEvent, fn func(P, CellEvent)) {
	ce := CellEvent{
		Type:     typ,
		Coords:   cell.GridCoords(),
		Position: ev.Position,
		Button:   ev.Button,
	}
	if fn != nil {
		fn(cell, ce)
	}
	if g.Events != nil {
		g.Events.EmitCellEvent(ce)
	}
}
