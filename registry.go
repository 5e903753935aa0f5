package tilekit

import (
	"errors"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Registry owns one cache per resource kind. Every handle it hands out is
// valid only until the registry (or the handle's key) is unloaded.
type Registry struct {
	images *ImageCache
	fonts  *FontCache
	sounds *SoundCache
}

// NewRegistry creates a registry with three empty caches reading from fsys.
// audioCtx may be nil when the application plays no sound.
func NewRegistry(fsys fs.FS, audioCtx *audio.Context) *Registry {
	return NewRegistryWithFontSize(fsys, audioCtx, DefaultFontBaseSize)
}

// NewRegistryWithFontSize is like NewRegistry but loads fonts at baseSize.
func NewRegistryWithFontSize(fsys fs.FS, audioCtx *audio.Context, baseSize float64) *Registry {
	return &Registry{
		images: NewImageCache(fsys),
		fonts:  NewFontCache(fsys, baseSize),
		sounds: NewSoundCache(fsys, audioCtx),
	}
}

// Images returns the image cache.
func (r *Registry) Images() *ImageCache { return r.images }

// Fonts returns the font cache.
func (r *Registry) Fonts() *FontCache { return r.fonts }

// Sounds returns the sound cache.
func (r *Registry) Sounds() *SoundCache { return r.sounds }

// LoadAll bulk-loads every directory set in cfg. Empty directory names are
// skipped. Failures from all three caches are joined.
func (r *Registry) LoadAll(cfg AssetConfig) error {
	var errs []error
	if cfg.ImageDir != "" {
		errs = append(errs, r.images.LoadAll(cfg.ImageDir))
	}
	if cfg.FontDir != "" {
		errs = append(errs, r.fonts.LoadAll(cfg.FontDir))
	}
	if cfg.SoundDir != "" {
		errs = append(errs, r.sounds.LoadAll(cfg.SoundDir))
	}
	return errors.Join(errs...)
}

// Close tears down all three caches.
func (r *Registry) Close() {
	r.images.Close()
	r.fonts.Close()
	r.sounds.Close()
}
