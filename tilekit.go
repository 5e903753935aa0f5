package tilekit

import (
	"fmt"
	"image/color"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts the color to a color.RGBA (premultiplied, 0-255).
func (c Color) toRGBA() color.RGBA {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	a := clamp(c.A)
	return color.RGBA{
		R: uint8(clamp(c.R)*a*255 + 0.5),
		G: uint8(clamp(c.G)*a*255 + 0.5),
		B: uint8(clamp(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// ScreenPosition is a 2D integer vector. It is used interchangeably as a
// point, a size (width, height) or an offset.
type ScreenPosition struct {
	X, Y int
}

// Pos is shorthand for ScreenPosition{X: x, Y: y}.
func Pos(x, y int) ScreenPosition {
	return ScreenPosition{X: x, Y: y}
}

// Equal reports whether both components match.
func (p ScreenPosition) Equal(other ScreenPosition) bool {
	return p.X == other.X && p.Y == other.Y
}

// Add returns p + other.
func (p ScreenPosition) Add(other ScreenPosition) ScreenPosition {
	return ScreenPosition{p.X + other.X, p.Y + other.Y}
}

// Sub returns p - other.
func (p ScreenPosition) Sub(other ScreenPosition) ScreenPosition {
	return ScreenPosition{p.X - other.X, p.Y - other.Y}
}

// Div divides both components by n, truncating toward zero.
func (p ScreenPosition) Div(n int) ScreenPosition {
	return ScreenPosition{p.X / n, p.Y / n}
}

func (p ScreenPosition) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// AnchorPoint names one of nine reference points of a bounding box.
type AnchorPoint uint8

const (
	AnchorTopLeft      AnchorPoint = iota // top-left corner (default)
	AnchorTopMiddle                       // midpoint of the top edge
	AnchorTopRight                        // top-right corner
	AnchorMiddleLeft                      // midpoint of the left edge
	AnchorMiddle                          // center
	AnchorMiddleRight                     // midpoint of the right edge
	AnchorBottomLeft                      // bottom-left corner
	AnchorBottomMiddle                    // midpoint of the bottom edge
	AnchorBottomRight                     // bottom-right corner
)

var anchorNames = [...]string{
	"top-left", "top-middle", "top-right",
	"middle-left", "middle", "middle-right",
	"bottom-left", "bottom-middle", "bottom-right",
}

func (a AnchorPoint) String() string {
	if int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return fmt.Sprintf("AnchorPoint(%d)", uint8(a))
}

// ParseAnchorPoint maps a name produced by AnchorPoint.String back to its value.
func ParseAnchorPoint(name string) (AnchorPoint, error) {
	for i, n := range anchorNames {
		if n == name {
			return AnchorPoint(i), nil
		}
	}
	return AnchorTopLeft, fmt.Errorf("tilekit: unknown anchor point %q", name)
}

// AnchorOffset returns how far a box of the given extent must be shifted up
// and left so that the anchor lands on the reference point. Centered axes use
// extent/2 (truncated), right and bottom axes use the full extent. Unknown
// anchors behave like AnchorTopLeft.
func AnchorOffset(anchor AnchorPoint, extent ScreenPosition) ScreenPosition {
	var off ScreenPosition
	switch anchor {
	case AnchorTopMiddle:
		off.X = extent.X / 2
	case AnchorTopRight:
		off.X = extent.X
	case AnchorMiddleLeft:
		off.Y = extent.Y / 2
	case AnchorMiddle:
		off.X = extent.X / 2
		off.Y = extent.Y / 2
	case AnchorMiddleRight:
		off.X = extent.X
		off.Y = extent.Y / 2
	case AnchorBottomLeft:
		off.Y = extent.Y
	case AnchorBottomMiddle:
		off.X = extent.X / 2
		off.Y = extent.Y
	case AnchorBottomRight:
		off.X = extent.X
		off.Y = extent.Y
	}
	return off
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)

	mouseButtonCount
)

// EventType identifies a kind of cell interaction event.
type EventType uint8

const (
	EventCellPress EventType = iota // a pointer button went down over a cell
	EventCellClick                  // press then release over the same cell
)
