package textstrip

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DefaultFallbackRune is substituted for characters absent from a font
// built with NewFontFromFace, unless overridden with WithFallback.
const DefaultFallbackRune = '?'

type atlasConfig struct {
	charset  []rune
	fallback rune
	padding  int
	width    int
}

// AtlasOption configures atlas construction in NewFontFromFace.
type AtlasOption func(*atlasConfig)

// WithCharset sets the runes rasterized into the atlas.
// Default is printable ASCII (32-126).
func WithCharset(s string) AtlasOption {
	return func(c *atlasConfig) { c.charset = []rune(s) }
}

// WithFallback sets the rune substituted for missing characters
// (default DefaultFallbackRune). It must be part of the charset.
func WithFallback(r rune) AtlasOption {
	return func(c *atlasConfig) { c.fallback = r }
}

// WithAtlasPadding sets the gap in pixels between packed glyph cells
// (default 1), preventing sampling bleed between neighbors.
func WithAtlasPadding(px int) AtlasOption {
	return func(c *atlasConfig) { c.padding = px }
}

// WithAtlasWidth sets the fixed atlas width in pixels (default 512).
// Height grows as needed to fit the charset.
func WithAtlasWidth(px int) AtlasOption {
	return func(c *atlasConfig) { c.width = px }
}

func defaultCharset() []rune {
	cs := make([]rune, 0, 95)
	for r := rune(' '); r <= '~'; r++ {
		cs = append(cs, r)
	}
	return cs
}

// shelfPacker packs rectangles left to right into rows of the current
// tallest cell, wrapping to a new row when the fixed width is exhausted.
type shelfPacker struct {
	width      int
	x, y, rowH int
}

func (p *shelfPacker) pack(w, h int) (int, int, bool) {
	if w > p.width {
		return 0, 0, false
	}
	if p.x+w > p.width {
		p.x = 0
		p.y += p.rowH
		p.rowH = 0
	}
	if h > p.rowH {
		p.rowH = h
	}
	x, y := p.x, p.y
	p.x += w
	return x, y, true
}

func (p *shelfPacker) height() int {
	return p.y + p.rowH
}

// NewFontFromFace rasterizes a charset from face into a fresh alpha atlas
// and returns the resulting Font together with the atlas image.
// Each glyph cell is the rune's advance wide and one line tall, so layout
// can advance the cursor by the glyph width alone. The atlas is meant to be
// uploaded once as the texture for slot (see opengl.Renderer.LoadFontTexture).
//
// Runes the face has no glyph for are silently dropped from the charset; the
// fallback rune must survive that filter.
func NewFontFromFace(face font.Face, slot int, opts ...AtlasOption) (*Font, *image.Alpha, error) {
	cfg := atlasConfig{
		charset:  defaultCharset(),
		fallback: DefaultFallbackRune,
		padding:  1,
		width:    512,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	cellH := (metrics.Ascent + metrics.Descent).Ceil()
	if cellH <= 0 {
		return nil, nil, fmt.Errorf("face reports non-positive line height %d", cellH)
	}

	type cell struct {
		r    rune
		x, y int
		w    int
	}

	// First pass: measure and pack every rune the face knows.
	packer := shelfPacker{width: cfg.width}
	seen := make(map[rune]bool, len(cfg.charset))
	cells := make([]cell, 0, len(cfg.charset))
	for _, r := range cfg.charset {
		if seen[r] {
			continue
		}
		seen[r] = true

		advance, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		w := advance.Ceil()
		if w <= 0 {
			continue
		}
		x, y, ok := packer.pack(w+cfg.padding, cellH+cfg.padding)
		if !ok {
			return nil, nil, fmt.Errorf("glyph %q (%dpx) does not fit atlas width %d", r, w, cfg.width)
		}
		cells = append(cells, cell{r: r, x: x, y: y, w: w})
	}
	if len(cells) == 0 {
		return nil, nil, fmt.Errorf("face has no glyphs for the requested charset")
	}

	// Second pass: rasterize each cell into the atlas and record its
	// metrics plus normalized region.
	atlasW := cfg.width
	atlasH := packer.height()
	atlas := image.NewAlpha(image.Rect(0, 0, atlasW, atlasH))
	drawer := &font.Drawer{
		Dst:  atlas,
		Src:  image.White,
		Face: face,
	}

	glyphs := make(map[rune]Glyph, len(cells))
	for _, c := range cells {
		drawer.Dot = fixed.P(c.x, c.y+ascent)
		drawer.DrawString(string(c.r))

		glyphs[c.r] = Glyph{
			Size: Vec2{X: float32(c.w), Y: float32(cellH)},
			Region: TexRegion{
				Pos:  Vec2{X: float32(c.x) / float32(atlasW), Y: float32(c.y) / float32(atlasH)},
				Size: Vec2{X: float32(c.w) / float32(atlasW), Y: float32(cellH) / float32(atlasH)},
			},
		}
	}

	f, err := NewFont(glyphs, slot, cfg.fallback, float32(cellH))
	if err != nil {
		return nil, nil, fmt.Errorf("build atlas font: %w", err)
	}
	return f, atlas, nil
}
