package tilekit

import (
	"encoding/json"
	"fmt"
	"image"
	"io/fs"
	"path"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteFrame is one named sub-rectangle of a sprite sheet page.
type SpriteFrame struct {
	Name string
	Rect image.Rectangle
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonSheet struct {
	Frames map[string]jsonFrame `json:"frames"`
	Meta   struct {
		Image string `json:"image"`
	} `json:"meta"`
}

// ParseSpriteSheet parses TexturePacker JSON in the hash format and returns
// the page image path (relative to the JSON file) and the frames sorted by
// name. Rotated frames are rejected.
func ParseSpriteSheet(jsonData []byte) (string, []SpriteFrame, error) {
	var sheet jsonSheet
	if err := json.Unmarshal(jsonData, &sheet); err != nil {
		return "", nil, fmt.Errorf("tilekit: parse sprite sheet: %w", err)
	}
	if sheet.Frames == nil {
		return "", nil, fmt.Errorf("tilekit: sprite sheet has no \"frames\" key")
	}
	if sheet.Meta.Image == "" {
		return "", nil, fmt.Errorf("tilekit: sprite sheet has no meta.image")
	}

	frames := make([]SpriteFrame, 0, len(sheet.Frames))
	for name, f := range sheet.Frames {
		if f.Rotated {
			return "", nil, fmt.Errorf("tilekit: sprite sheet frame %q: %w: rotated frame", name, ErrUnsupportedFormat)
		}
		if f.Frame.W <= 0 || f.Frame.H <= 0 {
			return "", nil, fmt.Errorf("tilekit: sprite sheet frame %q: empty rect", name)
		}
		frames = append(frames, SpriteFrame{
			Name: name,
			Rect: image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H),
		})
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].Name < frames[j].Name })
	return sheet.Meta.Image, frames, nil
}

// LoadSpriteSheet reads a TexturePacker JSON file from the cache's file
// system, loads its page image under the JSON file's key and stores every
// frame as a sub-image under the frame name without extension. Frames share
// the page's pixels: unloading the page key releases them all.
func LoadSpriteSheet(images *ImageCache, fsys fs.FS, p string) ([]string, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("tilekit: read sprite sheet %s: %w", p, err)
	}
	pagePath, frames, err := ParseSpriteSheet(data)
	if err != nil {
		return nil, err
	}

	page, err := images.Add(KeyFromPath(p), path.Join(path.Dir(p), pagePath))
	if err != nil {
		return nil, err
	}
	bounds := page.Bounds()

	keys := make([]string, 0, len(frames))
	for _, f := range frames {
		if !f.Rect.In(bounds) {
			return keys, fmt.Errorf("tilekit: sprite sheet frame %q %v outside page %v", f.Name, f.Rect, bounds)
		}
		key := KeyFromPath(f.Name)
		if err := images.Set(key, page.SubImage(f.Rect).(*ebiten.Image)); err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
