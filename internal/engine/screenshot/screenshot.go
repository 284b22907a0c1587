// Package screenshot writes framebuffer captures to disk.
package screenshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// Supported output formats.
const (
	FormatWebP = "webp"
	FormatTGA  = "tga"
	FormatPNG  = "png"
)

// ErrUnknownFormat is returned for a format other than webp, tga or png.
var ErrUnknownFormat = errors.New("unknown screenshot format")

// Options configures where and how captures are written.
type Options struct {
	Dir     string
	Prefix  string
	Format  string
	MaxSize int // Longest side in pixels, 0 keeps the source size
}

// Capturer saves RGBA framebuffer readbacks as image files.
type Capturer struct {
	opts Options
	now  func() time.Time
}

// New creates a capturer. An empty prefix becomes "screenshot" and an
// empty format becomes webp.
func New(opts Options) *Capturer {
	if opts.Prefix == "" {
		opts.Prefix = "screenshot"
	}
	if opts.Format == "" {
		opts.Format = FormatWebP
	}
	return &Capturer{opts: opts, now: time.Now}
}

// Filename returns the path the next capture will be written to.
func (c *Capturer) Filename() string {
	timestamp := c.now().Format("2006-01-02_15-04-05.000")
	name := fmt.Sprintf("%s_%s.%s", c.opts.Prefix, timestamp, c.opts.Format)
	if c.opts.Dir != "" {
		name = filepath.Join(c.opts.Dir, name)
	}
	return name
}

// Save writes bottom-up RGBA pixels (as read back from OpenGL) to a new
// file and returns its path.
func (c *Capturer) Save(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	out := Downscale(img, c.opts.MaxSize)

	if c.opts.Dir != "" {
		if err := os.MkdirAll(c.opts.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := c.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if err := Encode(file, out, c.opts.Format); err != nil {
		file.Close()
		os.Remove(filename)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", filename, err)
	}
	return filename, nil
}

// FromPixels copies width*height RGBA pixels into an image, flipping rows
// since OpenGL has its origin at the bottom-left.
func FromPixels(pixels []byte, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid capture size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// Downscale shrinks img so its longest side is maxSize, keeping the
// aspect ratio. Images already within the limit are returned as is.
func Downscale(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}

	var dw, dh int
	if w >= h {
		dw, dh = maxSize, max(1, h*maxSize/w)
	} else {
		dw, dh = max(1, w*maxSize/h), maxSize
	}

	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch format {
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatTGA:
		err = tga.Encode(w, img)
	case FormatPNG:
		err = png.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return nil
}
