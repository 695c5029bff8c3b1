package textstrip

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultLineSpacing is the vertical gap in pixels between lines when no
// explicit spacing is configured.
const DefaultLineSpacing = 5

// Ownership violations. These indicate a caller invariant violation rather
// than a recoverable runtime condition.
var (
	// ErrAlreadyOwned is returned when attaching a Text that is already
	// owned by a batch.
	ErrAlreadyOwned = errors.New("text already owned by a batch")
	// ErrNotOwned is returned when detaching a Text from a batch that does
	// not own it.
	ErrNotOwned = errors.New("text not owned by this batch")
)

// Text is a positioned, scaled string with per-entity cached strip geometry
// and a dirty flag. A Text is owned by at most one Batch at a time; the
// owner reference exists only to propagate dirtiness upward.
type Text struct {
	fontID      int
	str         string
	pos         Vec2
	scale       float32
	lineSpacing int

	sb    *Builder
	dirty bool
	owner *Batch
}

// TextOption configures a Text at construction.
type TextOption func(*Text)

// WithScale sets the initial scale (default 1).
func WithScale(s float32) TextOption {
	return func(t *Text) { t.scale = s }
}

// WithLineSpacing sets the initial line spacing in pixels
// (default DefaultLineSpacing).
func WithLineSpacing(px int) TextOption {
	return func(t *Text) { t.lineSpacing = px }
}

// WithTextLayout sets the vertex layout of the entity's cached strip.
// Must match the layout of any batch the entity is added to.
func WithTextLayout(l Layout) TextOption {
	return func(t *Text) { t.sb = NewBuilder(l) }
}

// NewText creates a text entity. It starts dirty and unowned; attach it to a
// Batch with Batch.Add.
func NewText(fontID int, str string, pos Vec2, opts ...TextOption) *Text {
	t := &Text{
		fontID:      fontID,
		str:         str,
		pos:         pos,
		scale:       1,
		lineSpacing: DefaultLineSpacing,
		sb:          NewBuilder(DefaultLayout()),
		dirty:       true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// String returns the current string.
func (t *Text) String() string { return t.str }

// SetString updates the string. Setting the current value is a no-op.
func (t *Text) SetString(s string) {
	if s == t.str {
		return
	}
	t.str = s
	t.markChanged()
}

// SetStringf formats into the string via fmt.Sprintf, then behaves as
// SetString.
func (t *Text) SetStringf(format string, args ...any) {
	t.SetString(fmt.Sprintf(format, args...))
}

// Pos returns the current top-left position.
func (t *Text) Pos() Vec2 { return t.pos }

// SetPos updates the position. Setting the current value is a no-op.
func (t *Text) SetPos(p Vec2) {
	if p == t.pos {
		return
	}
	t.pos = p
	t.markChanged()
}

// FontID returns the current font id.
func (t *Text) FontID() int { return t.fontID }

// SetFontID updates the font id. Setting the current value is a no-op.
func (t *Text) SetFontID(id int) {
	if id == t.fontID {
		return
	}
	t.fontID = id
	t.markChanged()
}

// Scale returns the current scale.
func (t *Text) Scale() float32 { return t.scale }

// SetScale updates the scale. Setting the current value is a no-op.
// A scale below Epsilon makes the entity invisible: it is skipped at the
// batch level rather than producing degenerate geometry.
func (t *Text) SetScale(s float32) {
	if s == t.scale {
		return
	}
	t.scale = s
	t.markChanged()
}

// LineSpacing returns the current line spacing in pixels.
func (t *Text) LineSpacing() int { return t.lineSpacing }

// SetLineSpacing updates the line spacing. Setting the current value is a
// no-op.
func (t *Text) SetLineSpacing(px int) {
	if px == t.lineSpacing {
		return
	}
	t.lineSpacing = px
	t.markChanged()
}

// Dirty reports whether the cached strip is stale. Only BuildStrip clears it.
func (t *Text) Dirty() bool { return t.dirty }

func (t *Text) markChanged() {
	t.dirty = true
	if t.owner != nil {
		t.owner.dirty = true
	}
}

func (t *Text) attach(b *Batch) error {
	if t.owner != nil {
		return ErrAlreadyOwned
	}
	t.owner = b
	return nil
}

func (t *Text) detach(b *Batch) error {
	if t.owner != b {
		return ErrNotOwned
	}
	t.owner = nil
	return nil
}

// BuildStrip returns the entity's strip as a flat vertex array, rebuilding
// it only when dirty. The returned slice is valid until the next rebuild.
//
// Layout walks the string line by line: an empty line advances the vertical
// cursor by the scaled line height plus line spacing without emitting
// geometry; within a line, the first glyph starts a new separated run and
// every following glyph continues it, each advancing the horizontal cursor
// by its scaled width. Missing glyphs fall back to the font's fallback glyph
// with a logged warning.
func (t *Text) BuildStrip(reg *Registry) ([]float32, error) {
	if !t.dirty {
		return t.sb.Vertices(), nil
	}

	font, err := reg.Font(t.fontID)
	if err != nil {
		return nil, fmt.Errorf("build strip: %w", err)
	}

	t.sb.Clear()
	lineHeight := font.LineHeight() * t.scale
	slot := float32(font.TextureSlot())

	var accumY float32
	for _, line := range strings.Split(t.str, "\n") {
		if line == "" {
			accumY += lineHeight + float32(t.lineSpacing)
			continue
		}

		lineY := t.pos.Y + accumY
		var accumX float32
		first := true
		for _, r := range line {
			lu := font.Lookup(r)
			if lu.Fallback {
				stripLogger.Warn("glyph missing from font, using fallback",
					"rune", string(lu.Rune), "font", t.fontID)
			}

			size := lu.Glyph.Size.Mul(t.scale)
			quad := QuadAt(Vec2{X: t.pos.X + accumX, Y: lineY}, size, slot, lu.Glyph.Region)
			if first {
				t.sb.PushSeparatedQuad(quad)
				first = false
			} else {
				t.sb.PushQuad(quad)
			}

			accumX += size.X
		}
		accumY += lineHeight + float32(t.lineSpacing)
	}

	t.dirty = false
	return t.sb.Vertices(), nil
}
