package textstrip_test

import (
	"slices"
	"testing"

	"github.com/textstrip/textstrip"
)

// quadAt builds a 10x10 test quad at the given position.
func quadAt(x, y float32) textstrip.Quad {
	return textstrip.QuadAt(
		textstrip.Vec2{X: x, Y: y},
		textstrip.Vec2{X: 10, Y: 10},
		0,
		textstrip.TexRegion{Size: textstrip.Vec2{X: 0.1, Y: 0.1}},
	)
}

// vertexAt returns the floats of vertex i.
func vertexAt(verts []float32, stride, i int) []float32 {
	return verts[i*stride : (i+1)*stride]
}

func TestBuilderEmpty(t *testing.T) {
	b := textstrip.NewBuilder(textstrip.DefaultLayout())

	if b.VertexCount() != 0 {
		t.Errorf("expected 0 vertices, got %d", b.VertexCount())
	}
	if b.FloatCount() != 0 {
		t.Errorf("expected 0 floats, got %d", b.FloatCount())
	}
	if len(b.Vertices()) != 0 {
		t.Errorf("expected empty vertex array, got %d floats", len(b.Vertices()))
	}
}

func TestPushQuadOnEmptyStartsRun(t *testing.T) {
	b := textstrip.NewBuilder(textstrip.DefaultLayout())
	b.PushQuad(quadAt(0, 0))

	// No previous quad exists, so no bridge vertices are inserted.
	if b.VertexCount() != 4 {
		t.Fatalf("expected 4 vertices, got %d", b.VertexCount())
	}

	stride := b.Layout().Stride()
	first := vertexAt(b.Vertices(), stride, 0)
	if first[0] != 0 || first[1] != 0 {
		t.Errorf("first vertex should be the quad's top-left, got (%v, %v)", first[0], first[1])
	}
}

func TestContinuousQuadAppendsFourVertices(t *testing.T) {
	b := textstrip.NewBuilder(textstrip.DefaultLayout())
	b.PushSeparatedQuad(quadAt(0, 0))
	b.PushQuad(quadAt(10, 0))

	if b.VertexCount() != 8 {
		t.Fatalf("expected 8 vertices for two continuous quads, got %d", b.VertexCount())
	}

	stride := b.Layout().Stride()
	second := vertexAt(b.Vertices(), stride, 4)
	if second[0] != 10 || second[1] != 0 {
		t.Errorf("fifth vertex should start the second quad at (10, 0), got (%v, %v)", second[0], second[1])
	}
}

func TestSeparatedQuadInsertsBridge(t *testing.T) {
	b := textstrip.NewBuilder(textstrip.DefaultLayout())
	b.PushSeparatedQuad(quadAt(0, 0))
	b.PushSeparatedQuad(quadAt(50, 50))

	// 4 + 2 bridge + 4
	if b.VertexCount() != 10 {
		t.Fatalf("expected 10 vertices, got %d", b.VertexCount())
	}

	stride := b.Layout().Stride()
	verts := b.Vertices()

	// First bridge vertex repeats the previous run's last vertex.
	if !slices.Equal(vertexAt(verts, stride, 4), vertexAt(verts, stride, 3)) {
		t.Error("bridge vertex 4 should copy vertex 3")
	}
	// Second bridge vertex anticipates the new run's first vertex.
	if !slices.Equal(vertexAt(verts, stride, 5), vertexAt(verts, stride, 6)) {
		t.Error("bridge vertex 5 should copy vertex 6")
	}
}

func TestPushRawSeparatedVertices(t *testing.T) {
	layout := textstrip.DefaultLayout()
	stride := layout.Stride()

	src := textstrip.NewBuilder(layout)
	src.PushSeparatedQuad(quadAt(0, 0))
	first := slices.Clone(src.Vertices())

	src.Clear()
	src.PushSeparatedQuad(quadAt(100, 0))
	second := slices.Clone(src.Vertices())

	agg := textstrip.NewBuilder(layout)
	agg.PushRawSeparatedVertices(first)
	if agg.VertexCount() != 4 {
		t.Fatalf("raw push into empty builder should not bridge: got %d vertices", agg.VertexCount())
	}

	agg.PushRawSeparatedVertices(second)
	if agg.VertexCount() != 10 {
		t.Fatalf("expected 4+2+4 vertices after merging two runs, got %d", agg.VertexCount())
	}

	verts := agg.Vertices()
	if !slices.Equal(vertexAt(verts, stride, 4), vertexAt(verts, stride, 3)) {
		t.Error("bridge should repeat the last vertex of the first run")
	}
	if !slices.Equal(vertexAt(verts, stride, 5), second[:stride]) {
		t.Error("bridge should anticipate the first vertex of the second run")
	}
}

func TestPushRawSeparatedVerticesEmptyIsNoop(t *testing.T) {
	b := textstrip.NewBuilder(textstrip.DefaultLayout())
	b.PushSeparatedQuad(quadAt(0, 0))

	b.PushRawSeparatedVertices(nil)
	if b.VertexCount() != 4 {
		t.Errorf("pushing an empty array should be a no-op, got %d vertices", b.VertexCount())
	}
}

func TestLayoutPaddingKeepsStrideInvariant(t *testing.T) {
	layout := textstrip.Layout{ExtraFloats: 3}
	b := textstrip.NewBuilder(layout)

	b.PushSeparatedQuad(quadAt(0, 0))
	b.PushQuad(quadAt(10, 0))
	b.PushSeparatedQuad(quadAt(0, 20))

	stride := layout.Stride()
	if stride != 8 {
		t.Fatalf("expected stride 8 with 3 extra floats, got %d", stride)
	}
	if b.FloatCount()%stride != 0 {
		t.Errorf("float count %d is not a multiple of stride %d", b.FloatCount(), stride)
	}

	// Padding floats are zero-filled.
	verts := b.Vertices()
	for i := 0; i < b.VertexCount(); i++ {
		v := vertexAt(verts, stride, i)
		for j := 5; j < stride; j++ {
			if v[j] != 0 {
				t.Fatalf("vertex %d padding float %d is %v, want 0", i, j, v[j])
			}
		}
	}
}

func TestClearResetsCounts(t *testing.T) {
	b := textstrip.NewBuilder(textstrip.DefaultLayout())
	b.PushSeparatedQuad(quadAt(0, 0))
	b.PushSeparatedQuad(quadAt(20, 0))

	b.Clear()
	if b.VertexCount() != 0 || b.FloatCount() != 0 {
		t.Fatalf("clear should empty the builder, got %d vertices", b.VertexCount())
	}

	// A push after Clear starts a fresh run with no bridge.
	b.PushSeparatedQuad(quadAt(0, 0))
	if b.VertexCount() != 4 {
		t.Errorf("expected 4 vertices after clear and push, got %d", b.VertexCount())
	}
}

func BenchmarkPushQuad(b *testing.B) {
	builder := textstrip.NewBuilder(textstrip.DefaultLayout())
	q := quadAt(0, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%256 == 0 {
			builder.Clear()
		}
		builder.PushQuad(q)
	}
}
