package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/linegl/internal/engine/debug"
)

// lineLayout matches the debug line shader inputs.
var lineLayout = Layout{
	{Name: "a_position", Components: 3},
	{Name: "a_color", Components: 3},
}

// Backend creates GL objects for the debug drawer. Requires a current context.
type Backend struct{}

// NewBackend returns the GL line backend.
func NewBackend() *Backend {
	return &Backend{}
}

// NewLinePipeline compiles the line program and allocates a dynamic vertex
// buffer for maxVertices position+color vertices.
func (Backend) NewLinePipeline(vertexSrc, fragmentSrc string, maxVertices int) (debug.LinePipeline, error) {
	program, err := NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("line program: %w", err)
	}

	vbo, err := NewVertexBuffer(lineLayout, Dynamic, maxVertices*int(lineLayout.Stride()), nil)
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("line vertex buffer: %w", err)
	}

	vao := NewVertexArray()
	vao.AddVertexBuffer(vbo)

	return &LinePipeline{program: program, vao: vao, vbo: vbo}, nil
}

// LinePipeline is the GL implementation of debug.LinePipeline.
type LinePipeline struct {
	program *Program
	vao     *VertexArray
	vbo     *VertexBuffer
}

func (p *LinePipeline) BindProgram()                      { p.program.Bind() }
func (p *LinePipeline) UnbindProgram()                    { p.program.Unbind() }
func (p *LinePipeline) SetMat4(name string, m mgl32.Mat4) { p.program.SetMat4(name, m) }
func (p *LinePipeline) BindVertexArray()                  { p.vao.Bind() }
func (p *LinePipeline) UnbindVertexArray()                { p.vao.Unbind() }

// Upload writes vertices to the start of the buffer.
func (p *LinePipeline) Upload(vertices []float32) {
	p.vbo.Update(vertices)
}

// DrawLines draws vertexCount vertices as GL_LINES. The VAO must be bound.
func (p *LinePipeline) DrawLines(vertexCount int) {
	gl.DrawArrays(gl.LINES, 0, int32(vertexCount))
}

// Release deletes the program, VAO and buffer.
func (p *LinePipeline) Release() {
	p.vao.Delete()
	p.program.Delete()
}
