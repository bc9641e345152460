// camtool prints camera matrices and debug drawer batch plans without
// opening a window.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/linegl/internal/engine/camera"
	"github.com/Faultbox/linegl/internal/engine/debug"
	"github.com/Faultbox/linegl/pkg/math"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	args = args[1:]

	var err error
	switch command {
	case "view":
		err = cmdView(args, stdout)
	case "proj", "projection":
		err = cmdProj(args, stdout)
	case "plan":
		err = cmdPlan(args, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `camtool - camera and debug drawer inspection utility

Usage:
  camtool <command> [options]

Commands:
  view  --pos x,y,z --target x,y,z [--up x,y,z]   Aim a camera and print its basis and view matrix
  proj  [--kind perspective|orthographic] ...      Print a projection matrix
  plan  --lines N [--batch 1024]                   Print how N lines split into draw calls

Examples:
  camtool view --pos 0,-3,0 --target 0,0,0
  camtool proj --kind ortho --width 20 --height 20 --zoom 2
  camtool plan --lines 2500`)
}

func cmdView(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fs.SetOutput(w)
	pos := fs.String("pos", "0,-3,0", "Camera position")
	target := fs.String("target", "0,0,0", "Look-at target")
	up := fs.String("up", "0,0,1", "World up vector")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := math.ParseVec3(*pos)
	if err != nil {
		return err
	}
	t, err := math.ParseVec3(*target)
	if err != nil {
		return err
	}
	u, err := math.ParseVec3(*up)
	if err != nil {
		return err
	}

	cam := camera.New("camtool")
	cam.WorldUp = u
	cam.SetPosition(p)
	cam.LookAt(t)

	fmt.Fprintf(w, "Camera: %s\n\n", cam)
	fmt.Fprintf(w, "right: %s\n", formatVec3(cam.Right))
	fmt.Fprintf(w, "up:    %s\n", formatVec3(cam.Up))
	fmt.Fprintf(w, "front: %s\n\n", formatVec3(cam.Front))
	fmt.Fprintln(w, "View matrix:")
	writeMat4(w, cam.ComputeViewMatrix())
	return nil
}

func cmdProj(args []string, w io.Writer) error {
	def := camera.DefaultProjectionData()

	fs := flag.NewFlagSet("proj", flag.ContinueOnError)
	fs.SetOutput(w)
	kind := fs.String("kind", "perspective", "Projection kind (perspective, orthographic)")
	fov := fs.Float64("fov", float64(def.FOV), "Vertical field of view in degrees")
	aspect := fs.Float64("aspect", float64(def.Aspect), "Aspect ratio")
	width := fs.Float64("width", float64(def.Width), "Orthographic box width")
	height := fs.Float64("height", float64(def.Height), "Orthographic box height")
	near := fs.Float64("near", float64(def.Near), "Near plane")
	far := fs.Float64("far", float64(def.Far), "Far plane")
	zoom := fs.Float64("zoom", 1, "Zoom factor")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := camera.ParseProjectionKind(*kind)
	if err != nil {
		return err
	}
	if *zoom <= 0 {
		return fmt.Errorf("zoom %v must be positive", *zoom)
	}

	cam := camera.New("camtool")
	cam.Zoom = float32(*zoom)
	cam.Data = camera.ProjectionData{
		Projection: k,
		FOV:        float32(*fov),
		Aspect:     float32(*aspect),
		Width:      float32(*width),
		Height:     float32(*height),
		Near:       float32(*near),
		Far:        float32(*far),
	}

	fmt.Fprintf(w, "%s zoom=%.3f\n\n", cam.Data, cam.Zoom)
	fmt.Fprintln(w, "Projection matrix:")
	writeMat4(w, cam.ComputeProjectionMatrix())
	return nil
}

func cmdPlan(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	fs.SetOutput(w)
	lines := fs.Int("lines", 0, "Number of queued lines")
	batch := fs.Int("batch", debug.DefaultLinesBatchSize, "Lines per draw call")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *lines < 0 {
		return fmt.Errorf("lines %d must not be negative", *lines)
	}
	if *batch <= 0 {
		return fmt.Errorf("batch %d must be positive", *batch)
	}

	batches := debug.PlanBatches(*lines, *batch)
	fmt.Fprintf(w, "Lines:      %d\n", *lines)
	fmt.Fprintf(w, "Batch size: %d\n", *batch)
	fmt.Fprintf(w, "Draw calls: %d\n", len(batches))
	fmt.Fprintf(w, "VBO bytes:  %d\n\n", *batch*debug.FloatsPerLine*4)

	for i, b := range batches {
		fmt.Fprintf(w, "  #%-4d offset=%-8d lines=%-6d vertices=%-6d bytes=%d\n",
			i, b.Offset, b.Count, b.Count*debug.VerticesPerLine, b.Count*debug.FloatsPerLine*4)
	}
	return nil
}

func formatVec3(v mgl32.Vec3) string {
	return fmt.Sprintf("(%8.4f, %8.4f, %8.4f)", noNegZero(v[0]), noNegZero(v[1]), noNegZero(v[2]))
}

// noNegZero maps -0 to 0 so it prints without a sign.
func noNegZero(f float32) float32 {
	if f == 0 {
		return 0
	}
	return f
}

// writeMat4 prints m row by row.
func writeMat4(w io.Writer, m mgl32.Mat4) {
	for row := 0; row < 4; row++ {
		r := m.Row(row)
		fmt.Fprintf(w, "  [%9.4f %9.4f %9.4f %9.4f]\n", noNegZero(r[0]), noNegZero(r[1]), noNegZero(r[2]), noNegZero(r[3]))
	}
}
