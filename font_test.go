package tilekit

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"math"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// --- BMFont test fixture ---

// Minimal BMFont .fnt text data with ASCII glyphs for "ABCDEFGHIJ" + space.
const testFntData = `info face="TestFont" size=32 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=1 aa=1 padding=0,0,0,0 spacing=0,0
common lineHeight=40 base=30 scaleW=256 scaleH=256 pages=1 packed=0
page id=0 file="test.png"
chars count=11
char id=32  x=0   y=0   width=0   height=0   xoffset=0   yoffset=0   xadvance=10  page=0
char id=65  x=0   y=0   width=20  height=30  xoffset=1   yoffset=2   xadvance=22  page=0
char id=66  x=20  y=0   width=18  height=30  xoffset=1   yoffset=2   xadvance=20  page=0
char id=67  x=38  y=0   width=19  height=30  xoffset=1   yoffset=2   xadvance=21  page=0
char id=68  x=57  y=0   width=20  height=30  xoffset=1   yoffset=2   xadvance=22  page=0
char id=69  x=77  y=0   width=16  height=30  xoffset=1   yoffset=2   xadvance=18  page=0
char id=70  x=93  y=0   width=15  height=30  xoffset=1   yoffset=2   xadvance=17  page=0
char id=71  x=108 y=0   width=20  height=30  xoffset=1   yoffset=2   xadvance=22  page=0
char id=72  x=128 y=0   width=20  height=30  xoffset=1   yoffset=2   xadvance=22  page=0
char id=73  x=148 y=0   width=8   height=30  xoffset=1   yoffset=2   xadvance=10  page=0
char id=74  x=156 y=0   width=12  height=30  xoffset=0   yoffset=2   xadvance=14  page=0
kernings count=2
kerning first=65 second=66 amount=-2
kerning first=65 second=67 amount=-1
`

const testFntDataNoLineHeight = `info face="Bad" size=32
page id=0 file="test.png"
chars count=1
char id=65 x=0 y=0 width=10 height=10 xoffset=0 yoffset=0 xadvance=12 page=0
`

const testFntDataNoChars = `info face="Bad" size=32
common lineHeight=40 base=30 scaleW=256 scaleH=256 pages=1 packed=0
page id=0 file="test.png"
`

func loadTestFont(t *testing.T) *BitmapFont {
	t.Helper()
	f, err := LoadBitmapFont([]byte(testFntData))
	if err != nil {
		t.Fatalf("LoadBitmapFont: %v", err)
	}
	return f
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// --- LoadBitmapFont ---

func TestLoadBitmapFont_GlyphCount(t *testing.T) {
	f := loadTestFont(t)
	count := 0
	for i := range f.asciiSet {
		if f.asciiSet[i] {
			count++
		}
	}
	if count != 11 {
		t.Errorf("glyph count = %d, want 11", count)
	}
}

func TestLoadBitmapFont_Header(t *testing.T) {
	f := loadTestFont(t)
	if f.lineHeight != 40 {
		t.Errorf("lineHeight = %v, want 40", f.lineHeight)
	}
	if f.Size() != 32 {
		t.Errorf("Size = %v, want 32", f.Size())
	}
	if f.PageFile() != "test.png" {
		t.Errorf("PageFile = %q, want test.png", f.PageFile())
	}
}

func TestLoadBitmapFont_InvalidData(t *testing.T) {
	if _, err := LoadBitmapFont([]byte("not valid fnt data at all")); err == nil {
		t.Error("expected error for invalid data")
	}
}

func TestLoadBitmapFont_MissingLineHeight(t *testing.T) {
	if _, err := LoadBitmapFont([]byte(testFntDataNoLineHeight)); err == nil {
		t.Error("expected error for missing lineHeight")
	}
}

func TestLoadBitmapFont_NoChars(t *testing.T) {
	if _, err := LoadBitmapFont([]byte(testFntDataNoChars)); err == nil {
		t.Error("expected error for no chars")
	}
}

func TestLoadBitmapFont_SizeDefaultsToLineHeight(t *testing.T) {
	data := "common lineHeight=24 base=20\nchar id=65 x=0 y=0 width=10 height=10 xoffset=0 yoffset=0 xadvance=12\n"
	f, err := LoadBitmapFont([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if f.Size() != 24 {
		t.Errorf("Size = %v, want 24", f.Size())
	}
}

// --- BitmapFont.Measure ---

func TestBitmapFont_MeasureKerning(t *testing.T) {
	f := loadTestFont(t)
	// A(22) + kern(-2) + B(20)
	w, h := f.Measure("AB", 32, 0)
	if w != 40 || h != 40 {
		t.Errorf("Measure(AB) = %v x %v, want 40 x 40", w, h)
	}
	// no kerning pair for B,A
	w, _ = f.Measure("BA", 32, 0)
	if w != 42 {
		t.Errorf("Measure(BA) = %v, want 42", w)
	}
}

func TestBitmapFont_MeasureSpacing(t *testing.T) {
	f := loadTestFont(t)
	w0, _ := f.Measure("ABC", 32, 0)
	w1, _ := f.Measure("ABC", 32, 1.5)
	if math.Abs((w1-w0)-3) > 1e-9 {
		t.Errorf("spacing added %v, want 3", w1-w0)
	}
}

func TestBitmapFont_MeasureScales(t *testing.T) {
	f := loadTestFont(t)
	w, h := f.Measure("AB", 64, 0)
	if w != 80 || h != 80 {
		t.Errorf("Measure(AB, 64) = %v x %v, want 80 x 80", w, h)
	}
	w, h = f.Measure("AB", 0, 0)
	if w != 40 || h != 40 {
		t.Errorf("Measure(AB, 0) = %v x %v, want authored size", w, h)
	}
}

func TestBitmapFont_MeasureMultiLine(t *testing.T) {
	f := loadTestFont(t)
	w, h := f.Measure("AB\nC", 32, 0)
	if w != 40 || h != 80 {
		t.Errorf("Measure = %v x %v, want 40 x 80", w, h)
	}
}

func TestBitmapFont_MeasureEmptyAndUnknown(t *testing.T) {
	f := loadTestFont(t)
	w, h := f.Measure("", 32, 0)
	if w != 0 || h != 40 {
		t.Errorf("Measure(\"\") = %v x %v, want 0 x 40", w, h)
	}
	w, _ = f.Measure("A?B", 32, 0)
	if w != 40 {
		t.Errorf("unknown rune should be skipped, got width %v", w)
	}
}

func TestBitmapFont_DrawWithoutPage(t *testing.T) {
	f := loadTestFont(t)
	f.Draw(ebiten.NewImage(10, 10), "AB", Pos(0, 0), 32, 1, ColorWhite)
	f.Close()
}

// --- FontLoader ---

func TestFontLoader_BitmapFont(t *testing.T) {
	fsys := fstest.MapFS{
		"fonts/test.fnt": {Data: []byte(testFntData)},
		"fonts/test.png": {Data: testPNG(t, 256, 256)},
	}
	f, err := FontLoader(DefaultFontBaseSize).Load(fsys, "fonts/test.fnt")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	bf, ok := f.(*BitmapFont)
	if !ok {
		t.Fatalf("font type = %T, want *BitmapFont", f)
	}
	if bf.page == nil {
		t.Error("page image was not loaded")
	}
	bf.Draw(ebiten.NewImage(64, 64), "AB", Pos(2, 2), 16, 1, ColorWhite)
	FontLoader(0).Unload(f)
	if bf.page != nil {
		t.Error("Unload should release the page image")
	}
}

func TestFontLoader_BitmapFontMissingPage(t *testing.T) {
	fsys := fstest.MapFS{"fonts/test.fnt": {Data: []byte(testFntData)}}
	if _, err := FontLoader(0).Load(fsys, "fonts/test.fnt"); err == nil {
		t.Error("expected error for a missing page image")
	}
}

func TestFontLoader_UnsupportedFormat(t *testing.T) {
	fsys := fstest.MapFS{"fonts/readme.txt": {Data: []byte("hi")}}
	_, err := FontLoader(0).Load(fsys, "fonts/readme.txt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFontCache_LoadAllTTF(t *testing.T) {
	SetLogger(nil)
	fsys := fstest.MapFS{"fonts/regular.ttf": {Data: goregular.TTF}}
	c := NewFontCache(fsys, 24)
	defer c.Close()
	if err := c.LoadAll("fonts"); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	f, err := c.Get("regular")
	if err != nil {
		t.Fatal(err)
	}
	tf, ok := f.(*TTFFont)
	if !ok {
		t.Fatalf("font type = %T, want *TTFFont", f)
	}
	if tf.BaseSize() != 24 {
		t.Errorf("BaseSize = %v, want 24", tf.BaseSize())
	}
}

// --- TTFFont ---

func TestLoadTTFFont_InvalidData(t *testing.T) {
	if _, err := LoadTTFFont([]byte("not a TTF file"), 16); err == nil {
		t.Error("expected error for invalid TTF data, got nil")
	}
}

func loadTestTTF(t *testing.T) *TTFFont {
	t.Helper()
	f, err := LoadTTFFont(goregular.TTF, 20)
	if err != nil {
		t.Fatalf("LoadTTFFont: %v", err)
	}
	return f
}

func TestTTFFont_Measure(t *testing.T) {
	f := loadTestTTF(t)
	w, h := f.Measure("Hello", 20, 0)
	if w <= 0 || h <= 0 {
		t.Fatalf("Measure = %v x %v, want positive", w, h)
	}
	w2, _ := f.Measure("Hello", 40, 0)
	if w2 <= w {
		t.Errorf("doubling size should widen the run: %v <= %v", w2, w)
	}
	_, h2 := f.Measure("a\nb", 20, 0)
	if math.Abs(h2-2*h) > 1e-6 {
		t.Errorf("two lines height = %v, want %v", h2, 2*h)
	}
	empty, _ := f.Measure("", 20, 0)
	if empty != 0 {
		t.Errorf("empty width = %v, want 0", empty)
	}
}

func TestTTFFont_MeasureSpacing(t *testing.T) {
	f := loadTestTTF(t)
	w1, _ := f.Measure("abcd", 20, 1)
	w3, _ := f.Measure("abcd", 20, 3)
	if math.Abs((w3-w1)-6) > 1e-6 {
		t.Errorf("spacing difference = %v, want 6", w3-w1)
	}
}

func TestTTFFont_FaceCache(t *testing.T) {
	f := loadTestTTF(t)
	if f.Face(12) != f.Face(12) {
		t.Error("Face should be cached per size")
	}
	if f.Face(0).Size != 20 {
		t.Errorf("Face(0).Size = %v, want base size 20", f.Face(0).Size)
	}
	f.Close()
	if f.Face(12) == nil {
		t.Error("Face after Close should still work")
	}
}

func TestTTFFont_Draw(t *testing.T) {
	f := loadTestTTF(t)
	dst := ebiten.NewImage(100, 40)
	f.Draw(dst, "ab\ncd", Pos(1, 1), 14, 0, ColorWhite)
	f.Draw(dst, "ab", Pos(1, 1), 14, 2, Color{1, 0, 0, 1})
}
