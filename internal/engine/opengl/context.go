// Package opengl implements the GPU side of the debug drawer on OpenGL 4.1 core.
// Every function here must run on the thread that owns the GL context.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/linegl/internal/logger"
)

// Init loads the OpenGL function pointers and sets the default render state.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	return nil
}

// Viewport resizes the GL viewport.
func Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("viewport resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Clear clears the color and depth buffers.
func Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels reads back the default framebuffer as tightly packed RGBA rows,
// bottom row first.
func ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels
}
