package tilekit

import "github.com/hajimehoshi/ebiten/v2"

// Placeable is anything that can occupy one grid cell: it has a size, a
// margin, a screen position and grid coordinates, and knows how to draw
// itself. Grid coordinates are set by the containing grid and are used for
// adjacency, not for drawing.
type Placeable interface {
	Width() int
	SetWidth(width int)
	Height() int
	SetHeight(height int)

	MarginWidth() int
	SetMarginWidth(marginWidth int)
	MarginHeight() int
	SetMarginHeight(marginHeight int)

	ScreenPosition() ScreenPosition
	SetScreenPosition(x, y int)

	GridCoords() ScreenPosition
	SetGridCoords(coords ScreenPosition)

	Render(dst *ebiten.Image)
}

// Box holds the stored attributes of a Placeable. Embed it and add a Render
// method to get a Placeable. Negative sizes and margins are not rejected but
// produce meaningless layouts.
type Box struct {
	size     ScreenPosition
	margin   ScreenPosition
	position ScreenPosition
	coords   ScreenPosition
}

// NewBox returns a Box with the given size and margin.
func NewBox(size, margin ScreenPosition) Box {
	return Box{size: size, margin: margin}
}

func (b *Box) Width() int { return b.size.X }

func (b *Box) SetWidth(width int) { b.size.X = width }

func (b *Box) Height() int { return b.size.Y }

func (b *Box) SetHeight(height int) { b.size.Y = height }

func (b *Box) MarginWidth() int { return b.margin.X }

func (b *Box) SetMarginWidth(marginWidth int) { b.margin.X = marginWidth }

func (b *Box) MarginHeight() int { return b.margin.Y }

func (b *Box) SetMarginHeight(marginHeight int) { b.margin.Y = marginHeight }

// Size returns the stored size as (width, height).
func (b *Box) Size() ScreenPosition { return b.size }

// Margin returns the margin as (width, height).
func (b *Box) Margin() ScreenPosition { return b.margin }

// ScreenPosition returns the top-left corner last stored by SetScreenPosition.
func (b *Box) ScreenPosition() ScreenPosition { return b.position }

// SetScreenPosition stores the top-left corner.
func (b *Box) SetScreenPosition(x, y int) { b.position = ScreenPosition{x, y} }

// GridCoords returns the (column, row) the box was placed at.
func (b *Box) GridCoords() ScreenPosition { return b.coords }

// SetGridCoords stores the (column, row) the box is placed at.
func (b *Box) SetGridCoords(coords ScreenPosition) { b.coords = coords }

// Bounds returns the rectangle p covers on screen.
func Bounds(p Placeable) Rect {
	pos := p.ScreenPosition()
	return Rect{X: pos.X, Y: pos.Y, Width: p.Width(), Height: p.Height()}
}

// Rect is an axis-aligned integer rectangle. The origin is the top-left, with
// Y increasing downward.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether pt lies inside the rectangle. The right and bottom
// edges are exclusive so adjacent cells never both contain a point.
func (r Rect) Contains(pt ScreenPosition) bool {
	return pt.X >= r.X && pt.X < r.X+r.Width &&
		pt.Y >= r.Y && pt.Y < r.Y+r.Height
}
