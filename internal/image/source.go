// Package image provides source image loading, slicing into tile units,
// batch loading and compositing.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrImageLoad matches every error returned for an unreadable source image.
var ErrImageLoad = errors.New("failed to load image")

// LoadError reports a source image that could not be opened or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load image %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrImageLoad) match.
func (e *LoadError) Is(target error) bool {
	return target == ErrImageLoad
}

// Source is a decoded source image normalized to NRGBA with origin (0,0).
type Source struct {
	Path   string       // Path the image was loaded from
	Format string       // Decoder name ("png", "bmp", ...)
	Image  *image.NRGBA // Decoded pixels
}

// Load decodes the image at path.
func Load(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}

	return &Source{Path: path, Format: format, Image: toNRGBA(img)}, nil
}

// FromImage wraps an already decoded image as a Source.
func FromImage(path string, img image.Image) *Source {
	return &Source{Path: path, Image: toNRGBA(img)}
}

// Width returns the image width in pixels.
func (s *Source) Width() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (s *Source) Height() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dy()
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// SupportedFormats returns the list of supported image extensions.
func SupportedFormats() []string {
	return []string{".png", ".bmp", ".gif", ".jpg", ".jpeg", ".tif", ".tiff"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

// FindImages returns the supported image files directly inside dir,
// sorted by path. A missing or unreadable directory yields no files.
func FindImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var images []string
	for _, e := range entries {
		if e.IsDir() || !IsSupportedFormat(e.Name()) {
			continue
		}
		images = append(images, filepath.Join(dir, e.Name()))
	}
	sort.Strings(images)
	return images
}
