// Package project opens finished tileset images onto a canvas and exports
// canvases back to PNG.
package project

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"tileset-composer/internal/canvas"
	tsimage "tileset-composer/internal/image"
	"tileset-composer/internal/tileset"
)

// ErrEmptyCanvas is returned when exporting a canvas with nothing placed.
var ErrEmptyCanvas = errors.New("canvas is empty")

// Result is a tileset image reopened as a canvas.
type Result struct {
	TypeName string
	Canvas   *canvas.Canvas
	Message  string // Label for the detected type, as shown in a type picker
}

// Open loads a tileset image and places every unit at its own position.
// An empty typeName detects the layout from the image size.
func Open(path, typeName string) (*Result, error) {
	var typ *tileset.Type
	if typeName != "" {
		t, err := tileset.LookupChoice(typeName)
		if err != nil {
			return nil, err
		}
		typ = t
	}

	src, err := tsimage.Load(path)
	if err != nil {
		return nil, err
	}

	if typ == nil {
		name, ok := tileset.MatchDimensions(src.Width(), src.Height())
		if !ok {
			return nil, &tileset.UnknownTypeError{Width: src.Width(), Height: src.Height()}
		}
		typ = tileset.MustLookup(name)
	}

	c := canvas.New(typ)
	for _, u := range tsimage.Units(src, typ) {
		c.Placements().Place(u, u.GridX, u.GridY)
	}

	return &Result{
		TypeName: typ.Name,
		Canvas:   c,
		Message:  tileset.DisplayName(typ.Name),
	}, nil
}

// SuggestedName returns the default export file name for a type.
func SuggestedName(typeName string) string {
	return fmt.Sprintf("Tileset_%s.png", typeName)
}

// WithPNGExt appends ".png" unless path already ends with it.
func WithPNGExt(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return path
	}
	return path + ".png"
}

// Export renders the canvas at its layout's pixel size and writes it as a
// PNG. It returns the path actually written.
func Export(c *canvas.Canvas, path string) (string, error) {
	if c.IsEmpty() {
		return "", ErrEmptyCanvas
	}
	return WriteImage(c, path)
}

// WriteImage is Export without the empty-canvas check.
func WriteImage(c *canvas.Canvas, path string) (string, error) {
	return WritePNG(c.Render(), path)
}

// WritePNG encodes img to path, adding the .png extension and creating
// missing directories. It returns the path actually written.
func WritePNG(img image.Image, path string) (string, error) {
	path = WithPNGExt(path)
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
