package textstrip

// Epsilon is the scale below which an entity is treated as invisible and
// skipped entirely during a batch rebuild.
const Epsilon = 1e-4

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// TexRegion is a rectangular region of a texture atlas in normalized
// coordinates.
type TexRegion struct {
	Pos  Vec2 // Top-left (u, v)
	Size Vec2 // Width and height in UV space
}

// Vertex is one strip vertex before flattening.
// The wire format interleaves Pos, UV and Slot in that order, followed by
// any padding floats the active Layout requires.
type Vertex struct {
	Pos  Vec2    // Screen position
	UV   Vec2    // Atlas coordinates
	Slot float32 // Texture unit the atlas is bound to
}

// Layout describes the interleaved per-vertex float layout shared by every
// strip uploaded through one Device. ExtraFloats is zero-filled padding
// appended to each vertex so strips can share a buffer with vertex formats
// that carry additional attributes.
type Layout struct {
	ExtraFloats int
}

// DefaultLayout returns the layout used when none is configured:
// pos(2) + uv(2) + slot(1), no padding.
func DefaultLayout() Layout {
	return Layout{}
}

// Stride returns the number of floats per vertex.
func (l Layout) Stride() int {
	return 2 + 2 + 1 + l.ExtraFloats
}

// Quad is a textured rectangle as four vertices in strip order.
// Ephemeral; produced per character during layout.
type Quad struct {
	TL, BL, TR, BR Vertex
}

// QuadAt builds an axis-aligned quad from its top-left corner and size,
// tagged with a texture slot and an atlas region.
func QuadAt(topLeft, size Vec2, slot float32, region TexRegion) Quad {
	return Quad{
		TL: Vertex{Pos: topLeft, UV: region.Pos, Slot: slot},
		BL: Vertex{
			Pos:  Vec2{X: topLeft.X, Y: topLeft.Y + size.Y},
			UV:   Vec2{X: region.Pos.X, Y: region.Pos.Y + region.Size.Y},
			Slot: slot,
		},
		TR: Vertex{
			Pos:  Vec2{X: topLeft.X + size.X, Y: topLeft.Y},
			UV:   Vec2{X: region.Pos.X + region.Size.X, Y: region.Pos.Y},
			Slot: slot,
		},
		BR: Vertex{
			Pos:  topLeft.Add(size),
			UV:   region.Pos.Add(region.Size),
			Slot: slot,
		},
	}
}
