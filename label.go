package tilekit

import "github.com/hajimehoshi/ebiten/v2"

// labelSpacing is the glyph spacing used when drawing a label. Measurement
// uses zero spacing.
const labelSpacing = 1

// Label is a Placeable text run. Its size is not stored: Width and Height
// re-measure the current text with the borrowed font on every call.
//
// The label's anchor decides how SetScreenPosition is read: the given point
// is where the anchor lands, and the stored top-left corner is shifted
// accordingly. SetAnchorPoint re-applies the new anchor's offset to the
// current stored position, so consecutive anchor changes compound unless the
// reference point is supplied again (see SetAnchorAt).
type Label struct {
	Box
	text     string
	fontSize float64
	font     Font
	color    Color
	anchor   AnchorPoint
}

// NewLabel creates a top-left anchored label. A nil font is rejected.
func NewLabel(text string, fontSize float64, color Color, font Font) (*Label, error) {
	if font == nil {
		return nil, ErrNilFont
	}
	return &Label{
		text:     text,
		fontSize: fontSize,
		font:     font,
		color:    color,
	}, nil
}

// Text returns the label's text.
func (l *Label) Text() string { return l.text }

// SetText replaces the text. The size changes with it.
func (l *Label) SetText(text string) { l.text = text }

func (l *Label) FontSize() float64 { return l.fontSize }

func (l *Label) SetFontSize(size float64) { l.fontSize = size }

func (l *Label) Color() Color { return l.color }

func (l *Label) SetColor(color Color) { l.color = color }

// Font returns the borrowed font.
func (l *Label) Font() Font {
	return l.font
}

// SetFont swaps the borrowed font. A nil font is rejected.
func (l *Label) SetFont(font Font) error {
	if font == nil {
		return ErrNilFont
	}
	l.font = font
	return nil
}

func (l *Label) measure() ScreenPosition {
	w, h := l.font.Measure(l.text, l.fontSize, 0)
	return ScreenPosition{int(w), int(h)}
}

// Width returns the measured text width.
func (l *Label) Width() int {
	return l.measure().X
}

// Height returns the measured text height.
func (l *Label) Height() int {
	return l.measure().Y
}

// Size returns the measured text size.
func (l *Label) Size() ScreenPosition {
	return l.measure()
}

// Anchor returns the label's anchor point.
func (l *Label) Anchor() AnchorPoint {
	return l.anchor
}

// SetAnchorPoint changes the anchor and re-applies its offset to the current
// stored position.
func (l *Label) SetAnchorPoint(anchor AnchorPoint) {
	l.anchor = anchor
	pos := l.ScreenPosition()
	l.SetScreenPosition(pos.X, pos.Y)
}

// SetAnchorAt changes the anchor and positions the label so that the anchor
// lands on ref. Unlike SetAnchorPoint it does not compound.
func (l *Label) SetAnchorAt(anchor AnchorPoint, ref ScreenPosition) {
	l.anchor = anchor
	l.SetScreenPosition(ref.X, ref.Y)
}

// SetScreenPosition places the label's anchor at (x, y).
func (l *Label) SetScreenPosition(x, y int) {
	off := AnchorOffset(l.anchor, l.measure())
	l.Box.SetScreenPosition(x-off.X, y-off.Y)
}

// Render draws the text at the stored position.
func (l *Label) Render(dst *ebiten.Image) {
	l.font.Draw(dst, l.text, l.ScreenPosition(), l.fontSize, labelSpacing, l.color)
}
