/*
Package textstrip renders dynamic text inside a real-time loop by converting
strings into batched, GPU-ready triangle-strip geometry, with two levels of
dirty tracking so that unchanged frames cost nothing to rebuild.

# Overview

Each Text entity lays its string out as a connected strip of textured quads
and caches the result. Mutating an entity through its setters marks it dirty;
a clean entity returns its cached geometry untouched. A Batch owns an ordered
collection of entities and a batch-level dirty flag: only when something
changed does Draw re-concatenate the cached strips into one flat vertex array,
upload it once, and issue a single TRIANGLE_STRIP draw call covering every
entity in the batch.

# Quick Start

	// Setup (after the GL context is current)
	renderer, _ := opengl.NewRenderer(800, 600, textstrip.DefaultLayout())

	face, _ := opentype.NewFace(parsed, &opentype.FaceOptions{Size: 24, DPI: 72})
	font, atlas, _ := textstrip.NewFontFromFace(face, 0)
	renderer.LoadFontTexture(atlas, 0)

	reg := textstrip.NewRegistry()
	id := reg.Add(font)

	batch := textstrip.NewBatch(reg, renderer)
	label := textstrip.NewText(id, "hello", textstrip.Vec2{X: 20, Y: 20})
	batch.Add(label)

	// Render loop
	for !window.ShouldClose() {
	    label.SetStringf("fps: %.0f", fps) // no-op when unchanged
	    batch.Draw()                       // rebuilds + uploads only if dirty
	    window.SwapBuffers()
	    glfw.PollEvents()
	}

# Strips and runs

Geometry is a single triangle strip made of runs. Quads within a run share
edges, so a continuing quad costs only four vertices. Between runs (a new
line, a new entity) the Builder inserts two degenerate bridge vertices so the
runs are not visually connected. See Builder for details.

The package is single-threaded by contract: all entity mutation and the
rebuild/upload/draw sequence belong to one render-owning goroutine.
*/
package textstrip
