// Package debug provides the immediate-mode debug line drawer: callers queue
// lines and wireframe shapes during a frame, and Render flushes them to the
// GPU in fixed-size batches.
package debug

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/linegl/internal/engine/debug/shaders"
	"github.com/Faultbox/linegl/internal/logger"
	"github.com/Faultbox/linegl/pkg/math"
)

const (
	// DefaultLinesBatchSize is the number of lines uploaded per draw call.
	DefaultLinesBatchSize = 1024
	// DefaultCircleSegments is the number of points on every generated ring.
	DefaultCircleSegments = 20

	// FloatsPerVertex is position (3) + color (3).
	FloatsPerVertex = 6
	// VerticesPerLine is the start and end vertex.
	VerticesPerLine = 2
	// FloatsPerLine is the packed size of one line.
	FloatsPerLine = FloatsPerVertex * VerticesPerLine
)

// Uniform names used by the line shader.
const (
	UniformProjection = "u_proj_matrix"
	UniformView       = "u_view_matrix"
)

// Line is one queued segment. It lives until the next Render.
type Line struct {
	Start mgl32.Vec3
	End   mgl32.Vec3
	Color mgl32.Vec3
}

// Viewpoint supplies the matrices lines are rendered with.
type Viewpoint interface {
	ComputeViewMatrix() mgl32.Mat4
	ComputeProjectionMatrix() mgl32.Mat4
}

// Backend creates the GPU objects the drawer renders with.
type Backend interface {
	// NewLinePipeline compiles the given shader pair and allocates a dynamic
	// vertex buffer holding maxVertices interleaved position+color vertices.
	NewLinePipeline(vertexSrc, fragmentSrc string, maxVertices int) (LinePipeline, error)
}

// LinePipeline is the set of GPU operations one batch needs. The drawer is
// its only writer.
type LinePipeline interface {
	BindProgram()
	UnbindProgram()
	SetMat4(name string, m mgl32.Mat4)
	BindVertexArray()
	UnbindVertexArray()
	// Upload writes vertices to the start of the vertex buffer.
	Upload(vertices []float32)
	// DrawLines draws vertexCount vertices from the buffer as a line list.
	DrawLines(vertexCount int)
	Release()
}

// Options configures a Drawer. Zero values select the defaults.
type Options struct {
	BatchSize      int
	CircleSegments int
}

// Drawer accumulates debug lines for one frame and renders them in batches.
// It is not safe for concurrent use; call it from the render thread only.
type Drawer struct {
	pipeline  LinePipeline
	batchSize int
	segments  int

	lines []Line
	batch []float32

	numLines     int
	numDrawCalls int
}

// NewDrawer builds the line shader and the fixed-capacity vertex buffer.
func NewDrawer(backend Backend, opts Options) (*Drawer, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultLinesBatchSize
	}
	if opts.CircleSegments < 3 {
		opts.CircleSegments = DefaultCircleSegments
	}

	pipeline, err := backend.NewLinePipeline(shaders.LinesVertexShader, shaders.LinesFragmentShader, opts.BatchSize*VerticesPerLine)
	if err != nil {
		return nil, fmt.Errorf("debug drawer pipeline: %w", err)
	}

	logger.Debug("debug drawer created",
		zap.Int("batchSize", opts.BatchSize),
		zap.Int("circleSegments", opts.CircleSegments),
		zap.Int("vboBytes", opts.BatchSize*FloatsPerLine*4),
	)

	return &Drawer{
		pipeline:  pipeline,
		batchSize: opts.BatchSize,
		segments:  opts.CircleSegments,
		batch:     make([]float32, 0, opts.BatchSize*FloatsPerLine),
	}, nil
}

// DrawLine queues a line segment for the next Render.
func (d *Drawer) DrawLine(start, end, color mgl32.Vec3) {
	d.lines = append(d.lines, Line{Start: start, End: end, Color: color})
	d.numLines++
}

// DrawBox queues the 12 edges of a box of the given full size (width, depth, height).
func (d *Drawer) DrawBox(size mgl32.Vec3, pose math.Pose, color mgl32.Vec3) {
	Box(d, size, pose, color)
}

// DrawAABB queues a world-aligned box spanning min..max.
func (d *Drawer) DrawAABB(min, max, color mgl32.Vec3) {
	AABB(d, min, max, color)
}

// DrawSphere queues three orthogonal great circles.
func (d *Drawer) DrawSphere(radius float32, pose math.Pose, color mgl32.Vec3) {
	Sphere(d, radius, d.segments, pose, color)
}

// DrawCylinder queues a Z-aligned cylinder wireframe centered on the pose.
func (d *Drawer) DrawCylinder(radius, height float32, pose math.Pose, color mgl32.Vec3) {
	Cylinder(d, radius, height, d.segments, pose, color)
}

// DrawCircle queues a ring in the pose's local XY plane.
func (d *Drawer) DrawCircle(radius float32, pose math.Pose, color mgl32.Vec3) {
	Circle(d, radius, d.segments, pose, color)
}

// DrawAxes queues the local X, Y, Z axes in red, green and blue.
func (d *Drawer) DrawAxes(pose math.Pose, length float32) {
	Axes(d, pose, length)
}

// DrawGrid queues a cells x cells grid in the pose's local XY plane.
func (d *Drawer) DrawGrid(cells int, spacing float32, pose math.Pose, color mgl32.Vec3) {
	Grid(d, cells, spacing, pose, color)
}

// DrawFrustum queues the edges of another viewpoint's view volume.
func (d *Drawer) DrawFrustum(vp Viewpoint, color mgl32.Vec3) {
	Frustum(d, vp, color)
}

// Render uploads and draws every queued line from the given viewpoint, then
// empties the queue. With nothing queued it returns without touching the GPU.
func (d *Drawer) Render(vp Viewpoint) {
	if len(d.lines) == 0 {
		return
	}

	d.pipeline.BindProgram()
	d.pipeline.SetMat4(UniformProjection, vp.ComputeProjectionMatrix())
	d.pipeline.SetMat4(UniformView, vp.ComputeViewMatrix())

	for _, b := range PlanBatches(len(d.lines), d.batchSize) {
		d.batch = PackLines(d.batch[:0], d.lines[b.Offset:b.Offset+b.Count])
		d.renderBatch(b.Count, d.batch)
	}

	d.pipeline.UnbindProgram()
	d.lines = d.lines[:0]
}

// renderBatch issues one draw call for count lines already packed in data.
func (d *Drawer) renderBatch(count int, data []float32) {
	d.pipeline.BindVertexArray()
	d.pipeline.Upload(data)
	d.pipeline.DrawLines(count * VerticesPerLine)
	d.numDrawCalls++
	d.pipeline.UnbindVertexArray()
}

// ClearCounters resets the line and draw call counters. Queued lines are kept.
// Call it after reading the counters.
func (d *Drawer) ClearCounters() {
	d.numLines = 0
	d.numDrawCalls = 0
}

// NumLines returns the lines requested since the last ClearCounters.
func (d *Drawer) NumLines() int {
	return d.numLines
}

// NumDrawCalls returns the draw calls issued since the last ClearCounters.
func (d *Drawer) NumDrawCalls() int {
	return d.numDrawCalls
}

// Pending returns the number of lines waiting for the next Render.
func (d *Drawer) Pending() int {
	return len(d.lines)
}

// BatchSize returns the number of lines per draw call.
func (d *Drawer) BatchSize() int {
	return d.batchSize
}

// Release frees the GPU resources.
func (d *Drawer) Release() {
	if d.pipeline != nil {
		d.pipeline.Release()
		d.pipeline = nil
	}
}

// String returns a short description of the drawer state.
func (d *Drawer) String() string {
	return fmt.Sprintf("<DebugDrawer batchSize=%d pendingLines=%d>", d.batchSize, len(d.lines))
}
