package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/suncycle/internal/engine/geometry"
)

// gpuMesh is a mesh uploaded to vertex and index buffers.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

func uploadMesh(m *geometry.Mesh) *gpuMesh {
	g := &gpuMesh{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	vertexSize := int(unsafe.Sizeof(geometry.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	// Normal
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return g
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func (g *gpuMesh) destroy() {
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
}

// lineBuffer is a dynamic position-only buffer drawn as GL_LINES.
type lineBuffer struct {
	vao, vbo    uint32
	vertexCount int32
}

func newLineBuffer() *lineBuffer {
	l := &lineBuffer{}
	gl.GenVertexArrays(1, &l.vao)
	gl.BindVertexArray(l.vao)
	gl.GenBuffers(1, &l.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return l
}

func (l *lineBuffer) update(vertices []float32) {
	l.vertexCount = int32(len(vertices) / 3)
	if l.vertexCount == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
}

func (l *lineBuffer) draw() {
	gl.BindVertexArray(l.vao)
	gl.DrawArrays(gl.LINES, 0, l.vertexCount)
	gl.BindVertexArray(0)
}

func (l *lineBuffer) destroy() {
	gl.DeleteVertexArrays(1, &l.vao)
	gl.DeleteBuffers(1, &l.vbo)
}
