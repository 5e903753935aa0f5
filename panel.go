package tilekit

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// TexturePanel is a Placeable that draws a borrowed image scaled to fit its
// size. The image is owned by a cache and must outlive the panel.
type TexturePanel struct {
	Box
	texture *ebiten.Image

	// Tint multiplies the image colors. Defaults to ColorWhite.
	Tint Color
}

// NewTexturePanel creates a panel of the given size and margin showing
// texture. A nil texture is rejected.
func NewTexturePanel(texture *ebiten.Image, size, margin ScreenPosition) (*TexturePanel, error) {
	if texture == nil {
		return nil, ErrNilTexture
	}
	return &TexturePanel{
		Box:     NewBox(size, margin),
		texture: texture,
		Tint:    ColorWhite,
	}, nil
}

// Texture returns the borrowed image.
func (p *TexturePanel) Texture() *ebiten.Image {
	return p.texture
}

// SetTexture swaps the borrowed image. A nil texture is rejected.
func (p *TexturePanel) SetTexture(texture *ebiten.Image) error {
	if texture == nil {
		return ErrNilTexture
	}
	p.texture = texture
	return nil
}

// Scale returns the uniform factor the texture is drawn at.
func (p *TexturePanel) Scale() float64 {
	b := p.texture.Bounds()
	return fitScale(p.Width(), p.Height(), b.Dx(), b.Dy())
}

// Render draws the texture at the panel's screen position, scaled uniformly
// so it fits inside the panel without distortion. One axis may be
// under-filled.
func (p *TexturePanel) Render(dst *ebiten.Image) {
	pos := p.ScreenPosition()
	scale := p.Scale()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(pos.X), float64(pos.Y))
	if p.Tint != ColorWhite {
		op.ColorScale.ScaleWithColor(p.Tint.toRGBA())
	}
	dst.DrawImage(p.texture, op)
}

// fitScale returns min(w/iw, h/ih). A zero-sized image scales by 0.
func fitScale(w, h, iw, ih int) float64 {
	if iw <= 0 || ih <= 0 {
		return 0
	}
	return math.Min(float64(w)/float64(iw), float64(h)/float64(ih))
}
