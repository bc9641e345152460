// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LinesVertexShader transforms interleaved position+color line vertices.
//
//go:embed lines.vert
var LinesVertexShader string

// LinesFragmentShader outputs the interpolated vertex color.
//
//go:embed lines.frag
var LinesFragmentShader string
