package tilekit

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by ResourceCache.Get for a key that was never
	// loaded or has been unloaded.
	ErrNotFound = errors.New("tilekit: resource not found")

	// ErrCacheClosed is returned by mutating calls on a closed ResourceCache.
	ErrCacheClosed = errors.New("tilekit: resource cache closed")

	// ErrUnsupportedFormat is returned when a loader does not recognize a
	// file extension.
	ErrUnsupportedFormat = errors.New("tilekit: unsupported resource format")

	// ErrNoAudioContext is returned by the sound loader when the registry was
	// built without an audio context.
	ErrNoAudioContext = errors.New("tilekit: no audio context")

	// ErrInvalidDimensions is returned by NewGrid for a non-positive column
	// or row count.
	ErrInvalidDimensions = errors.New("tilekit: grid dimensions must be positive")

	// ErrEmptyGrid is returned by pixel-extent queries on a grid without cells.
	ErrEmptyGrid = errors.New("tilekit: empty grid")

	// ErrNilTexture is returned when a TexturePanel is given a nil image.
	ErrNilTexture = errors.New("tilekit: nil texture")

	// ErrNilFont is returned when a Label is given a nil font.
	ErrNilFont = errors.New("tilekit: nil font")
)

// NotFoundError describes a failed cache lookup. It unwraps to ErrNotFound.
type NotFoundError struct {
	Kind string // cache kind, e.g. "image"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tilekit: %s %q not found", e.Kind, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
