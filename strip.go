package textstrip

// Builder accumulates textured quads as runs of a single triangle strip,
// producing one flat float array ready for upload.
//
// Quads within a run share edges: a continuing quad appends only its own
// four vertices and connects to the previous quad through the strip's
// implicit triangles, which are zero-area when the quads are adjacent.
// Between runs the builder inserts two degenerate bridge vertices (a copy
// of the previous last vertex and a copy of the next first vertex) so the
// runs are not visually connected. Every append is an even number of
// vertices, which keeps strip winding consistent across runs.
type Builder struct {
	floats []float32
	layout Layout
}

// NewBuilder creates an empty Builder with the given vertex layout.
func NewBuilder(layout Layout) *Builder {
	return &Builder{layout: layout}
}

// Layout returns the builder's vertex layout.
func (b *Builder) Layout() Layout {
	return b.layout
}

// Clear resets the builder to empty, retaining allocated capacity.
func (b *Builder) Clear() {
	b.floats = b.floats[:0]
}

// PushQuad appends a quad as a continuation of the current run.
// If no quad exists yet, it behaves as PushSeparatedQuad.
func (b *Builder) PushQuad(q Quad) {
	if len(b.floats) == 0 {
		b.PushSeparatedQuad(q)
		return
	}
	b.appendQuad(q)
}

// PushSeparatedQuad starts a new run with the given quad, bridging from the
// previous run with degenerate vertices when one exists.
func (b *Builder) PushSeparatedQuad(q Quad) {
	if len(b.floats) > 0 {
		b.appendLastVertexCopy()
		b.appendVertex(q.TL)
	}
	b.appendQuad(q)
}

// PushRawSeparatedVertices appends a pre-built flat vertex array as a new
// separated run. The array must use the builder's layout; its length must be
// a multiple of the stride. Used to merge entity strips into an aggregate
// buffer without re-deriving geometry.
func (b *Builder) PushRawSeparatedVertices(verts []float32) {
	if len(verts) == 0 {
		return
	}
	stride := b.layout.Stride()
	if len(b.floats) > 0 {
		b.appendLastVertexCopy()
		b.floats = append(b.floats, verts[:stride]...)
	}
	b.floats = append(b.floats, verts...)
}

// Vertices returns the current flat vertex array. The slice is a read-only
// view, valid until the next mutating call.
func (b *Builder) Vertices() []float32 {
	return b.floats
}

// VertexCount returns the number of vertices accumulated so far.
func (b *Builder) VertexCount() int {
	return len(b.floats) / b.layout.Stride()
}

// FloatCount returns the number of floats accumulated so far.
func (b *Builder) FloatCount() int {
	return len(b.floats)
}

func (b *Builder) appendQuad(q Quad) {
	b.appendVertex(q.TL)
	b.appendVertex(q.BL)
	b.appendVertex(q.TR)
	b.appendVertex(q.BR)
}

func (b *Builder) appendVertex(v Vertex) {
	b.floats = append(b.floats, v.Pos.X, v.Pos.Y, v.UV.X, v.UV.Y, v.Slot)
	for i := 0; i < b.layout.ExtraFloats; i++ {
		b.floats = append(b.floats, 0)
	}
}

func (b *Builder) appendLastVertexCopy() {
	stride := b.layout.Stride()
	last := b.floats[len(b.floats)-stride:]
	b.floats = append(b.floats, last...)
}
