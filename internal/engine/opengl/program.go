package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/linegl/internal/logger"
)

// Program is a linked vertex+fragment shader program with a uniform location cache.
type Program struct {
	id       uint32
	uniforms map[string]int32
}

// NewProgram compiles vertex and fragment shaders and links them into a program.
func NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragShader)

	id := gl.CreateProgram()
	gl.AttachShader(id, vertShader)
	gl.AttachShader(id, fragShader)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(id, logLen, nil, &log[0])
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("link: %s", gl.GoStr(&log[0]))
	}

	logger.Debug("shader program created", zap.Uint32("program", id))
	return &Program{id: id, uniforms: make(map[string]int32)}, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, gl.GoStr(&log[0]))
	}

	return shader, nil
}

// ID returns the GL program name.
func (p *Program) ID() uint32 {
	return p.id
}

// Bind makes the program current.
func (p *Program) Bind() {
	gl.UseProgram(p.id)
}

// Unbind clears the current program.
func (p *Program) Unbind() {
	gl.UseProgram(0)
}

// SetMat4 uploads a column-major 4x4 matrix to the named uniform.
// The program must be bound. Unknown uniforms are ignored, as GL does.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		logger.Warn("uniform not found", zap.String("name", name), zap.Uint32("program", p.id))
	}
	p.uniforms[name] = loc
	return loc
}

// Delete releases the GL program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
