package tilekit

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"io/fs"
	"math"
	"path"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// DefaultFontBaseSize is the size fonts are loaded at by the font cache.
const DefaultFontBaseSize = 50

// Font measures and draws text runs at an arbitrary size. spacing is extra
// horizontal space inserted between consecutive glyphs.
type Font interface {
	Measure(s string, size, spacing float64) (width, height float64)
	Draw(dst *ebiten.Image, s string, pos ScreenPosition, size, spacing float64, clr Color)
}

// FontCache stores loaded fonts keyed by file name.
type FontCache = ResourceCache[Font]

// FontLoader loads .ttf/.otf files as TTFFont at baseSize and BMFont .fnt
// text files as BitmapFont (their page image is read from the same
// directory). Released fonts drop their faces and page images.
func FontLoader(baseSize float64) Loader[Font] {
	if baseSize <= 0 {
		baseSize = DefaultFontBaseSize
	}
	return Loader[Font]{
		Load: func(fsys fs.FS, p string) (Font, error) {
			switch strings.ToLower(path.Ext(p)) {
			case ".ttf", ".otf":
				data, err := fs.ReadFile(fsys, p)
				if err != nil {
					return nil, err
				}
				return LoadTTFFont(data, baseSize)
			case ".fnt":
				return loadBitmapFontFS(fsys, p)
			default:
				return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path.Ext(p))
			}
		},
		Unload: func(f Font) {
			if c, ok := f.(interface{ Close() }); ok {
				c.Close()
			}
		},
	}
}

// NewFontCache creates an empty font cache over fsys.
func NewFontCache(fsys fs.FS, baseSize float64) *FontCache {
	return NewResourceCache("font", fsys, FontLoader(baseSize))
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType and OpenType fonts. Faces
// are created per requested size and kept until Close.
type TTFFont struct {
	source   *text.GoTextFaceSource
	baseSize float64
	faces    map[float64]*text.GoTextFace
}

// LoadTTFFont parses TTF/OTF data. baseSize is used when a caller asks for a
// non-positive size.
func LoadTTFFont(ttfData []byte, baseSize float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("tilekit: failed to parse TTF data: %w", err)
	}
	return &TTFFont{
		source:   source,
		baseSize: baseSize,
		faces:    make(map[float64]*text.GoTextFace),
	}, nil
}

// BaseSize returns the size the font was loaded at.
func (f *TTFFont) BaseSize() float64 {
	return f.baseSize
}

// Face returns the GoTextFace for size, creating it on first use.
func (f *TTFFont) Face(size float64) *text.GoTextFace {
	if size <= 0 {
		size = f.baseSize
	}
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: size}
	if f.faces == nil {
		f.faces = make(map[float64]*text.GoTextFace)
	}
	f.faces[size] = face
	return face
}

func ttfLineHeight(face *text.GoTextFace) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// ttfLineWidth mirrors the advance used by Draw: whole-line advance when
// there is no extra spacing, per-rune advances plus spacing otherwise.
func ttfLineWidth(line string, face *text.GoTextFace, spacing float64) float64 {
	if spacing == 0 {
		return text.Advance(line, face)
	}
	var w float64
	n := 0
	for _, r := range line {
		w += text.Advance(string(r), face)
		n++
	}
	if n > 1 {
		w += spacing * float64(n-1)
	}
	return w
}

// Measure returns the size of s rendered at size with the given spacing.
func (f *TTFFont) Measure(s string, size, spacing float64) (width, height float64) {
	face := f.Face(size)
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		width = math.Max(width, ttfLineWidth(line, face, spacing))
	}
	return width, float64(len(lines)) * ttfLineHeight(face)
}

// Draw renders s with its top-left corner at pos.
func (f *TTFFont) Draw(dst *ebiten.Image, s string, pos ScreenPosition, size, spacing float64, clr Color) {
	face := f.Face(size)
	lh := ttfLineHeight(face)
	for li, line := range strings.Split(s, "\n") {
		x := float64(pos.X)
		y := float64(pos.Y) + float64(li)*lh
		if spacing == 0 {
			drawTTFRun(dst, line, face, x, y, clr)
			continue
		}
		for _, r := range line {
			run := string(r)
			drawTTFRun(dst, run, face, x, y, clr)
			x += text.Advance(run, face) + spacing
		}
	}
}

func drawTTFRun(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr.toRGBA())
	text.Draw(dst, s, face, op)
}

// Close drops the cached faces.
func (f *TTFFont) Close() {
	f.faces = nil
}

// --- BitmapFont ---

type glyph struct {
	id       rune
	x, y     uint16
	width    uint16
	height   uint16
	xOffset  int16
	yOffset  int16
	xAdvance int16
}

const asciiGlyphCount = 128

// BitmapFont renders text from a pre-rasterized BMFont glyph page. Glyphs are
// scaled by the requested size over the size the font was authored at.
type BitmapFont struct {
	size       float64 // authored size from the info line
	lineHeight float64
	base       float64
	pageFile   string
	page       *ebiten.Image

	asciiGlyphs [asciiGlyphCount]glyph // fixed array for ASCII, zero-alloc lookup
	asciiSet    [asciiGlyphCount]bool  // which ASCII entries are populated
	extGlyphs   map[rune]*glyph        // extended Unicode

	kernings map[[2]rune]int16
}

// LoadBitmapFont parses BMFont .fnt text-format data. The page image is not
// loaded; attach one with SetPage before drawing.
func LoadBitmapFont(fntData []byte) (*BitmapFont, error) {
	f := &BitmapFont{}

	scanner := bufio.NewScanner(bytes.NewReader(fntData))
	var charCount int

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tag, rest := splitTag(line)
		fields := parseFields(rest)

		switch tag {
		case "info":
			if v, ok := fields["size"]; ok {
				size, _ := strconv.ParseFloat(v, 64)
				f.size = math.Abs(size)
			}

		case "common":
			if v, ok := fields["lineHeight"]; ok {
				f.lineHeight, _ = strconv.ParseFloat(v, 64)
			}
			if v, ok := fields["base"]; ok {
				f.base, _ = strconv.ParseFloat(v, 64)
			}

		case "page":
			if fields["id"] == "0" {
				f.pageFile = fields["file"]
			}

		case "char":
			charCount++
			g := glyph{
				id:       rune(fieldInt(fields, "id")),
				x:        uint16(fieldInt(fields, "x")),
				y:        uint16(fieldInt(fields, "y")),
				width:    uint16(fieldInt(fields, "width")),
				height:   uint16(fieldInt(fields, "height")),
				xOffset:  int16(fieldInt(fields, "xoffset")),
				yOffset:  int16(fieldInt(fields, "yoffset")),
				xAdvance: int16(fieldInt(fields, "xadvance")),
			}
			if g.id >= 0 && g.id < asciiGlyphCount {
				f.asciiGlyphs[g.id] = g
				f.asciiSet[g.id] = true
			} else {
				if f.extGlyphs == nil {
					f.extGlyphs = make(map[rune]*glyph)
				}
				g := g
				f.extGlyphs[g.id] = &g
			}

		case "kerning":
			if f.kernings == nil {
				f.kernings = make(map[[2]rune]int16)
			}
			pair := [2]rune{rune(fieldInt(fields, "first")), rune(fieldInt(fields, "second"))}
			f.kernings[pair] = int16(fieldInt(fields, "amount"))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tilekit: error reading .fnt data: %w", err)
	}
	if f.lineHeight == 0 {
		return nil, fmt.Errorf("tilekit: .fnt data missing common lineHeight")
	}
	if charCount == 0 {
		return nil, fmt.Errorf("tilekit: .fnt data has no char definitions")
	}
	if f.size == 0 {
		f.size = f.lineHeight
	}
	return f, nil
}

func loadBitmapFontFS(fsys fs.FS, p string) (*BitmapFont, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, err
	}
	f, err := LoadBitmapFont(data)
	if err != nil {
		return nil, err
	}
	if f.pageFile != "" {
		page, err := loadImage(fsys, path.Join(path.Dir(p), f.pageFile))
		if err != nil {
			return nil, fmt.Errorf("tilekit: bitmap font page: %w", err)
		}
		f.page = page
	}
	return f, nil
}

// Size returns the size the font was authored at.
func (f *BitmapFont) Size() float64 {
	return f.size
}

// PageFile returns the page image file named by the .fnt data.
func (f *BitmapFont) PageFile() string {
	return f.pageFile
}

// SetPage attaches the glyph page image.
func (f *BitmapFont) SetPage(img *ebiten.Image) {
	f.page = img
}

func (f *BitmapFont) scale(size float64) float64 {
	if size <= 0 || f.size <= 0 {
		return 1
	}
	return size / f.size
}

// Measure returns the size of s rendered at size with the given spacing.
func (f *BitmapFont) Measure(s string, size, spacing float64) (width, height float64) {
	sc := f.scale(size)
	var maxW, cursorX float64
	var prevRune rune
	var hasPrev bool
	lines := 1

	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		i += n

		if r == '\n' {
			maxW = math.Max(maxW, cursorX)
			cursorX = 0
			lines++
			hasPrev = false
			continue
		}

		g := f.glyph(r)
		if g == nil {
			continue
		}
		if hasPrev {
			cursorX += float64(f.kern(prevRune, r))*sc + spacing
		}
		cursorX += float64(g.xAdvance) * sc
		prevRune = r
		hasPrev = true
	}

	return math.Max(maxW, cursorX), float64(lines) * f.lineHeight * sc
}

// Draw renders s with its top-left corner at pos. Nothing is drawn until a
// page image is attached.
func (f *BitmapFont) Draw(dst *ebiten.Image, s string, pos ScreenPosition, size, spacing float64, clr Color) {
	if f.page == nil {
		return
	}
	sc := f.scale(size)
	cursorX := float64(pos.X)
	lineY := float64(pos.Y)
	var prevRune rune
	var hasPrev bool

	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		i += n

		if r == '\n' {
			cursorX = float64(pos.X)
			lineY += f.lineHeight * sc
			hasPrev = false
			continue
		}

		g := f.glyph(r)
		if g == nil {
			continue
		}
		if hasPrev {
			cursorX += float64(f.kern(prevRune, r))*sc + spacing
		}
		if g.width > 0 && g.height > 0 {
			rect := image.Rect(int(g.x), int(g.y), int(g.x)+int(g.width), int(g.y)+int(g.height))
			sub := f.page.SubImage(rect).(*ebiten.Image)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(sc, sc)
			op.GeoM.Translate(cursorX+float64(g.xOffset)*sc, lineY+float64(g.yOffset)*sc)
			op.ColorScale.ScaleWithColor(clr.toRGBA())
			dst.DrawImage(sub, op)
		}
		cursorX += float64(g.xAdvance) * sc
		prevRune = r
		hasPrev = true
	}
}

// Close deallocates the page image.
func (f *BitmapFont) Close() {
	if f.page != nil {
		f.page.Deallocate()
		f.page = nil
	}
}

// glyph returns the glyph for the given rune, or nil if not found.
func (f *BitmapFont) glyph(r rune) *glyph {
	if r >= 0 && r < asciiGlyphCount {
		if f.asciiSet[r] {
			return &f.asciiGlyphs[r]
		}
		return nil
	}
	return f.extGlyphs[r]
}

// kern returns the kerning amount for the given rune pair.
func (f *BitmapFont) kern(first, second rune) int16 {
	if f.kernings == nil {
		return 0
	}
	return f.kernings[[2]rune{first, second}]
}

// splitTag splits a BMFont line into its tag and the rest of the line.
func splitTag(line string) (string, string) {
	idx := strings.IndexByte(line, ' ')
	if idx == -1 {
		return line, ""
	}
	return line[:idx], line[idx+1:]
}

// parseFields parses "key=value key=value ..." into a map.
func parseFields(s string) map[string]string {
	fields := make(map[string]string)
	for _, part := range strings.Fields(s) {
		eq := strings.IndexByte(part, '=')
		if eq == -1 {
			continue
		}
		key := part[:eq]
		val := part[eq+1:]
		// face="Arial"
		if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
			val = val[1 : len(val)-1]
		}
		fields[key] = val
	}
	return fields
}

func fieldInt(fields map[string]string, key string) int {
	v, _ := strconv.Atoi(fields[key])
	return v
}
