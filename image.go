package tilekit

import (
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ImageCache stores decoded images as GPU-backed ebiten images.
type ImageCache = ResourceCache[*ebiten.Image]

// ImageLoader decodes PNG, JPEG, GIF, BMP and WebP files into ebiten images
// and deallocates them on release.
func ImageLoader() Loader[*ebiten.Image] {
	return Loader[*ebiten.Image]{
		Load:   loadImage,
		Unload: unloadImage,
	}
}

// NewImageCache creates an empty image cache over fsys.
func NewImageCache(fsys fs.FS) *ImageCache {
	return NewResourceCache("image", fsys, ImageLoader())
}

func loadImage(fsys fs.FS, path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFileSystem(fsys, path)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func unloadImage(img *ebiten.Image) {
	if img != nil {
		img.Deallocate()
	}
}
