package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/bmp"
)

// Screenshot image formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// ScreenshotCapture writes framebuffer captures to timestamped files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    string
	now       func() time.Time
}

// NewScreenshotCapture creates a capture handler. An unknown format falls back to PNG.
func NewScreenshotCapture(outputDir, prefix, format string) *ScreenshotCapture {
	if format != FormatBMP {
		format = FormatPNG
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}
}

// Format returns the image format written by Capture.
func (sc *ScreenshotCapture) Format() string {
	return sc.format
}

// Capture saves bottom-up RGBA pixels (as read back from OpenGL) to a new file
// and returns its path.
func (sc *ScreenshotCapture) Capture(pixels []byte, width, height int) (string, error) {
	img, err := ImageFromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}

	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := sc.encode(file, img); err != nil {
		return "", err
	}
	return filename, nil
}

// GenerateFilename returns the path the next capture is written to.
func (sc *ScreenshotCapture) GenerateFilename() string {
	name := fmt.Sprintf("%s_%s.%s", sc.prefix, sc.now().Format("2006-01-02_15-04-05.000"), sc.format)
	if sc.outputDir != "" {
		name = filepath.Join(sc.outputDir, name)
	}
	return name
}

func (sc *ScreenshotCapture) encode(w io.Writer, img image.Image) error {
	switch sc.format {
	case FormatBMP:
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("encoding BMP: %w", err)
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	}
	return nil
}

// ImageFromPixels converts width*height*4 bytes of bottom-up RGBA into a
// top-down image.
func ImageFromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}
