package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const sizeOfFloat32 = 4

// Element is one float attribute of an interleaved vertex layout.
type Element struct {
	Name       string
	Components int32
	Normalized bool
}

// Layout describes an interleaved float vertex.
type Layout []Element

// Stride returns the size of one vertex in bytes.
func (l Layout) Stride() int32 {
	var stride int32
	for _, e := range l {
		stride += e.Components * sizeOfFloat32
	}
	return stride
}

// Usage selects the GL buffer usage hint.
type Usage uint32

const (
	Static  Usage = gl.STATIC_DRAW
	Dynamic Usage = gl.DYNAMIC_DRAW
)

// VertexBuffer is a GL array buffer with a fixed byte capacity.
type VertexBuffer struct {
	id       uint32
	layout   Layout
	capacity int
	usage    Usage
}

// NewVertexBuffer allocates capacity bytes of GPU storage. data may be nil;
// otherwise it is uploaded as the initial contents.
func NewVertexBuffer(layout Layout, usage Usage, capacity int, data []float32) (*VertexBuffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("vertex buffer capacity %d must be positive", capacity)
	}
	if len(data)*sizeOfFloat32 > capacity {
		return nil, fmt.Errorf("initial data (%d bytes) exceeds capacity %d", len(data)*sizeOfFloat32, capacity)
	}

	b := &VertexBuffer{layout: layout, capacity: capacity, usage: usage}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.BufferData(gl.ARRAY_BUFFER, capacity, nil, uint32(usage))
	if len(data) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*sizeOfFloat32, gl.Ptr(data))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b, nil
}

// Capacity returns the buffer size in bytes.
func (b *VertexBuffer) Capacity() int {
	return b.capacity
}

// Update overwrites the start of the buffer with data. Writing past the
// capacity is a programming error and panics.
func (b *VertexBuffer) Update(data []float32) {
	size := len(data) * sizeOfFloat32
	if size == 0 {
		return
	}
	if size > b.capacity {
		panic(fmt.Sprintf("vertex buffer %d: update of %d bytes exceeds capacity %d", b.id, size, b.capacity))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Delete releases the GL buffer.
func (b *VertexBuffer) Delete() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

// VertexArray owns a VAO and the vertex buffers attached to it.
type VertexArray struct {
	id         uint32
	buffers    []*VertexBuffer
	nextAttrib uint32
}

// NewVertexArray creates an empty VAO.
func NewVertexArray() *VertexArray {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.id)
	return va
}

// AddVertexBuffer attaches vb and enables one attribute per layout element,
// in order, starting after the attributes of previously added buffers.
func (va *VertexArray) AddVertexBuffer(vb *VertexBuffer) {
	gl.BindVertexArray(va.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)

	stride := vb.layout.Stride()
	var offset int
	for _, e := range vb.layout {
		gl.VertexAttribPointer(va.nextAttrib, e.Components, gl.FLOAT, e.Normalized, stride, gl.PtrOffset(offset))
		gl.EnableVertexAttribArray(va.nextAttrib)
		va.nextAttrib++
		offset += int(e.Components * sizeOfFloat32)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	va.buffers = append(va.buffers, vb)
}

// VertexBuffer returns the i-th attached buffer.
func (va *VertexArray) VertexBuffer(i int) *VertexBuffer {
	return va.buffers[i]
}

// Bind makes the VAO current.
func (va *VertexArray) Bind() {
	gl.BindVertexArray(va.id)
}

// Unbind clears the current VAO.
func (va *VertexArray) Unbind() {
	gl.BindVertexArray(0)
}

// Delete releases the VAO and its buffers.
func (va *VertexArray) Delete() {
	for _, vb := range va.buffers {
		vb.Delete()
	}
	va.buffers = nil
	if va.id != 0 {
		gl.DeleteVertexArrays(1, &va.id)
		va.id = 0
	}
}
