package textstrip

import "fmt"

// Device abstracts the GPU buffer and draw call owned by a Batch.
// Upload replaces the buffer contents wholesale; Draw issues one
// triangle-strip draw call over the uploaded vertices.
// backend/opengl provides the real implementation.
type Device interface {
	Upload(vertices []float32) error
	Draw(vertexCount int) error
}

// Batch owns an ordered collection of Text entities, an aggregate strip
// builder and a batch-level dirty flag. The flag is set by membership
// changes and by any owned entity's mutation; Draw rebuilds and re-uploads
// the aggregate buffer only while it is set.
type Batch struct {
	reg      *Registry
	dev      Device
	entities []*Text
	sb       *Builder
	dirty    bool
}

// BatchOption configures a Batch at construction.
type BatchOption func(*Batch)

// WithLayout sets the vertex layout of the aggregate buffer
// (default DefaultLayout). Entities added to the batch must use the same
// layout.
func WithLayout(l Layout) BatchOption {
	return func(b *Batch) { b.sb = NewBuilder(l) }
}

// NewBatch creates an empty batch rendering through dev with fonts resolved
// from reg.
func NewBatch(reg *Registry, dev Device, opts ...BatchOption) *Batch {
	b := &Batch{
		reg: reg,
		dev: dev,
		sb:  NewBuilder(DefaultLayout()),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add attaches an entity to the batch, transferring ownership.
// Fails with ErrAlreadyOwned if the entity is owned by any batch.
func (b *Batch) Add(t *Text) error {
	if err := t.attach(b); err != nil {
		return err
	}
	b.entities = append(b.entities, t)
	b.dirty = true
	return nil
}

// Remove detaches an entity from the batch.
// Fails with ErrNotOwned if this batch does not own the entity.
func (b *Batch) Remove(t *Text) error {
	if err := t.detach(b); err != nil {
		return err
	}
	for i, e := range b.entities {
		if e == t {
			b.entities = append(b.entities[:i], b.entities[i+1:]...)
			break
		}
	}
	b.dirty = true
	return nil
}

// Clear detaches all entities.
func (b *Batch) Clear() {
	for _, t := range b.entities {
		t.owner = nil
	}
	b.entities = b.entities[:0]
	b.dirty = true
}

// Len returns the number of owned entities.
func (b *Batch) Len() int {
	return len(b.entities)
}

// Dirty reports whether the aggregate buffer is stale.
func (b *Batch) Dirty() bool {
	return b.dirty
}

// rebuild re-concatenates all entity strips into the aggregate buffer and
// uploads it. Entities with an empty string or a scale below Epsilon are
// skipped entirely.
func (b *Batch) rebuild() error {
	b.sb.Clear()

	for _, t := range b.entities {
		if t.str == "" || t.scale < Epsilon {
			continue
		}
		verts, err := t.BuildStrip(b.reg)
		if err != nil {
			return err
		}
		b.sb.PushRawSeparatedVertices(verts)
	}

	if err := b.dev.Upload(b.sb.Vertices()); err != nil {
		return fmt.Errorf("upload aggregate buffer: %w", err)
	}
	b.dirty = false
	return nil
}

// Draw renders the batch: rebuild and upload if dirty, then one
// triangle-strip draw call covering every entity. Drawing an empty
// aggregate is a no-op, not an error.
//
// The driver contract is exactly one Draw per render step, after all fixed
// simulation updates for that step have completed.
func (b *Batch) Draw() error {
	if b.dirty {
		if err := b.rebuild(); err != nil {
			return fmt.Errorf("rebuild batch: %w", err)
		}
	}

	if b.sb.VertexCount() == 0 {
		return nil
	}
	return b.dev.Draw(b.sb.VertexCount())
}
