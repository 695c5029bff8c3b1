package textstrip

import (
	"errors"
	"fmt"
)

// ErrUnknownFont is returned by Registry.Font for an id that was never
// registered. Layout cannot proceed without glyph metrics, so callers should
// treat it as fatal.
var ErrUnknownFont = errors.New("unknown font id")

// Glyph holds one character's metrics and the atlas region used to place its
// textured quad. Immutable once registered.
type Glyph struct {
	Size   Vec2      // Pixel dimensions at scale 1
	Region TexRegion // Normalized atlas coordinates
}

// GlyphLookup is the result of resolving a rune against a Font.
// The lookup is total: when the rune has no glyph, the font's fallback glyph
// is returned with Fallback set, so callers can observe the substitution
// instead of relying on logging alone.
type GlyphLookup struct {
	Glyph    Glyph
	Rune     rune // The rune originally requested
	Fallback bool // True when Glyph is the fallback, not Rune's own glyph
}

// Font maps runes to glyphs within one texture atlas.
// Fonts are created with NewFont or NewFontFromFace and are immutable.
type Font struct {
	glyphs     map[rune]Glyph
	slot       int
	fallback   rune
	lineHeight float32
}

// NewFont creates a font from a prepared glyph map.
// slot is the texture unit the atlas will be bound to. fallback is the rune
// substituted for missing characters and must itself have a glyph.
// lineHeight is the unscaled height used to advance between lines.
func NewFont(glyphs map[rune]Glyph, slot int, fallback rune, lineHeight float32) (*Font, error) {
	if _, ok := glyphs[fallback]; !ok {
		return nil, fmt.Errorf("fallback rune %q has no glyph", fallback)
	}
	return &Font{
		glyphs:     glyphs,
		slot:       slot,
		fallback:   fallback,
		lineHeight: lineHeight,
	}, nil
}

// Lookup resolves a rune to its glyph, substituting the fallback glyph when
// the rune is absent.
func (f *Font) Lookup(r rune) GlyphLookup {
	if g, ok := f.glyphs[r]; ok {
		return GlyphLookup{Glyph: g, Rune: r}
	}
	return GlyphLookup{Glyph: f.glyphs[f.fallback], Rune: r, Fallback: true}
}

// HasGlyph returns true if the font has a glyph for the given rune.
func (f *Font) HasGlyph(r rune) bool {
	_, ok := f.glyphs[r]
	return ok
}

// TextureSlot returns the texture unit the font's atlas is bound to.
func (f *Font) TextureSlot() int {
	return f.slot
}

// LineHeight returns the unscaled vertical advance between lines.
func (f *Font) LineHeight() float32 {
	return f.lineHeight
}

// Registry resolves integer font ids to loaded fonts.
// Not owned by any batch; several batches may share one registry.
type Registry struct {
	fonts []*Font
}

// NewRegistry creates an empty font registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a font and returns its id.
func (reg *Registry) Add(f *Font) int {
	reg.fonts = append(reg.fonts, f)
	return len(reg.fonts) - 1
}

// Font returns the font registered under id, or ErrUnknownFont.
func (reg *Registry) Font(id int) (*Font, error) {
	if id < 0 || id >= len(reg.fonts) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFont, id)
	}
	return reg.fonts[id], nil
}
