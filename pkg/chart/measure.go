package chart

import (
	"fmt"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// LineHeight is the label box height as a multiple of the font size.
const LineHeight = 1.2

// TextMeasurer reports the rendered width of text in pixels.
type TextMeasurer interface {
	TextWidth(text string, fontSize float64) float64
}

// MeasureFunc adapts a plain function to TextMeasurer.
type MeasureFunc func(text string, fontSize float64) float64

func (f MeasureFunc) TextWidth(text string, fontSize float64) float64 {
	return f(text, fontSize)
}

// Glyph advance approximations as a multiple of font size.
const (
	halfWidthAdvance = 0.6
	fullWidthAdvance = 1.0
)

// ApproxMeasurer approximates widths without font metrics: half-width
// grapheme clusters advance 0.6× the font size, full-width (East Asian
// wide) clusters 1.0×.
type ApproxMeasurer struct{}

var approxCondition = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false // ambiguous glyphs count as narrow
	return c
}()

func (ApproxMeasurer) TextWidth(text string, fontSize float64) float64 {
	width := 0.0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		switch approxCondition.StringWidth(g.Str()) {
		case 0:
			// control or zero-width cluster
		case 1:
			width += fontSize * halfWidthAdvance
		default:
			width += fontSize * fullWidthAdvance
		}
	}
	return width
}

// FontMeasurer measures text with real glyph advances. Faces are created
// once per font size and reused.
type FontMeasurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFontMeasurer parses a TrueType/OpenType font. A nil ttf selects Go Regular.
func NewFontMeasurer(ttf []byte) (*FontMeasurer, error) {
	if ttf == nil {
		ttf = goregular.TTF
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &FontMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

// Face returns the cached face for size, creating it on first use.
func (m *FontMeasurer) Face(size float64) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.faceLocked(size)
}

func (m *FontMeasurer) faceLocked(size float64) (font.Face, error) {
	if face, ok := m.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %.1fpt: %w", size, err)
	}
	m.faces[size] = face
	return face, nil
}

func (m *FontMeasurer) TextWidth(text string, fontSize float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	face, err := m.faceLocked(fontSize)
	if err != nil {
		return ApproxMeasurer{}.TextWidth(text, fontSize)
	}
	return float64(font.MeasureString(face, text)) / 64
}
