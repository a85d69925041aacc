// Package tile provides the Tile and Unit models extracted from source images.
//
// Every Tile is a 48×48 block. Larger autotile shapes are Units that
// group several Tiles which select and move together.
package tile

import (
	"image"
	"path/filepath"

	"tileset-composer/internal/tileset"
	"tileset-composer/pkg/geometry"
)

// Tile is a single 48×48 pixel block taken from a source image.
type Tile struct {
	SourcePath  string       // Path to the source image file
	SourceIndex int          // Sequential index within the source image
	X, Y        int          // Pixel offset within the source image
	Image       *image.NRGBA // Always TileSize×TileSize, origin at (0,0)

	unit *Unit
}

// Unit returns the unit that owns this tile, or nil before grouping.
func (t *Tile) Unit() *Unit {
	return t.unit
}

// Cell returns the tile's column and row in the source image.
func (t *Tile) Cell() geometry.PointInt {
	return geometry.Pt(t.X/tileset.TileSize, t.Y/tileset.TileSize)
}

// Rect returns the tile's pixel rectangle in the source image.
func (t *Tile) Rect() geometry.RectInt {
	return geometry.NewRectInt(t.X, t.Y, tileset.TileSize, tileset.TileSize)
}

// SourceName returns just the file name of the source image.
func (t *Tile) SourceName() string {
	return filepath.Base(t.SourcePath)
}
