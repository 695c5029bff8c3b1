package textstrip_test

import (
	"errors"
	"testing"

	"github.com/textstrip/textstrip"
)

// testFont returns a font whose glyphs are all 10x10 with distinct atlas
// regions, with '?' as the fallback.
func testFont(t *testing.T) *textstrip.Font {
	t.Helper()

	glyphs := make(map[rune]textstrip.Glyph)
	for i, r := range "ABC 0?" {
		glyphs[r] = textstrip.Glyph{
			Size: textstrip.Vec2{X: 10, Y: 10},
			Region: textstrip.TexRegion{
				Pos:  textstrip.Vec2{X: float32(i) * 0.1},
				Size: textstrip.Vec2{X: 0.1, Y: 0.1},
			},
		}
	}

	f, err := textstrip.NewFont(glyphs, 0, '?', 10)
	if err != nil {
		t.Fatalf("NewFont: %v", err)
	}
	return f
}

// testRegistry returns a registry holding testFont and its id.
func testRegistry(t *testing.T) (*textstrip.Registry, int) {
	t.Helper()
	reg := textstrip.NewRegistry()
	return reg, reg.Add(testFont(t))
}

func TestLookupFound(t *testing.T) {
	f := testFont(t)

	lu := f.Lookup('A')
	if lu.Fallback {
		t.Error("lookup of a present rune should not be a fallback")
	}
	if lu.Rune != 'A' {
		t.Errorf("expected rune 'A', got %q", lu.Rune)
	}
	if lu.Glyph.Size.X != 10 || lu.Glyph.Size.Y != 10 {
		t.Errorf("unexpected glyph size %+v", lu.Glyph.Size)
	}
}

func TestLookupFallback(t *testing.T) {
	f := testFont(t)

	lu := f.Lookup('Z')
	if !lu.Fallback {
		t.Fatal("lookup of an absent rune should report Fallback")
	}
	if lu.Rune != 'Z' {
		t.Errorf("lookup should preserve the requested rune, got %q", lu.Rune)
	}
	if lu.Glyph != f.Lookup('?').Glyph {
		t.Error("fallback lookup should return the fallback rune's glyph")
	}
}

func TestHasGlyph(t *testing.T) {
	f := testFont(t)
	if !f.HasGlyph('B') {
		t.Error("expected glyph for 'B'")
	}
	if f.HasGlyph('z') {
		t.Error("did not expect glyph for 'z'")
	}
}

func TestNewFontRejectsMissingFallback(t *testing.T) {
	glyphs := map[rune]textstrip.Glyph{'A': {}}
	if _, err := textstrip.NewFont(glyphs, 0, '?', 10); err == nil {
		t.Error("expected error for fallback rune without a glyph")
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	reg, id := testRegistry(t)

	f, err := reg.Font(id)
	if err != nil {
		t.Fatalf("Font(%d): %v", id, err)
	}
	if f == nil {
		t.Fatal("expected non-nil font")
	}
}

func TestRegistryUnknownFont(t *testing.T) {
	reg := textstrip.NewRegistry()

	for _, id := range []int{-1, 0, 7} {
		if _, err := reg.Font(id); !errors.Is(err, textstrip.ErrUnknownFont) {
			t.Errorf("Font(%d): expected ErrUnknownFont, got %v", id, err)
		}
	}
}
