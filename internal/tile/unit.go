package tile

import (
	"image"

	"golang.org/x/image/draw"

	"tileset-composer/internal/tileset"
	"tileset-composer/pkg/geometry"
)

// Unit is a selectable group of tiles from one source image.
type Unit struct {
	// Size in tiles (1×1 for plain tiles, up to 6×3 for A1 animations).
	GridWidth  int
	GridHeight int

	// Tiles in row-major order. For a 2×2 unit:
	// top-left, top-right, bottom-left, bottom-right.
	Tiles []*Tile

	// Top-left tile column/row in the source image. Used to keep
	// relative offsets when several units are dragged together.
	GridX int
	GridY int
}

// NewUnit creates a unit and links every tile back to it.
func NewUnit(gridWidth, gridHeight, gridX, gridY int, tiles []*Tile) *Unit {
	u := &Unit{
		GridWidth:  gridWidth,
		GridHeight: gridHeight,
		Tiles:      tiles,
		GridX:      gridX,
		GridY:      gridY,
	}
	for _, t := range tiles {
		t.unit = u
	}
	return u
}

// IsSingleTile reports whether the unit is one 48×48 tile.
func (u *Unit) IsSingleTile() bool {
	return u.GridWidth == 1 && u.GridHeight == 1
}

// Complete reports whether the unit holds all GridWidth×GridHeight tiles.
func (u *Unit) Complete() bool {
	return len(u.Tiles) == u.GridWidth*u.GridHeight
}

// SourcePath returns the path shared by all tiles, or "" for an empty unit.
func (u *Unit) SourcePath() string {
	if len(u.Tiles) == 0 {
		return ""
	}
	return u.Tiles[0].SourcePath
}

// SourceName returns the file name of the source image.
func (u *Unit) SourceName() string {
	if len(u.Tiles) == 0 {
		return ""
	}
	return u.Tiles[0].SourceName()
}

// PixelWidth returns the unit width in pixels.
func (u *Unit) PixelWidth() int { return u.GridWidth * tileset.TileSize }

// PixelHeight returns the unit height in pixels.
func (u *Unit) PixelHeight() int { return u.GridHeight * tileset.TileSize }

// Shape returns the unit footprint as a layout shape.
func (u *Unit) Shape() tileset.UnitShape {
	return tileset.UnitShape{Width: u.GridWidth, Height: u.GridHeight}
}

// Footprint returns the cells the unit covers when its top-left is at cell.
func (u *Unit) Footprint(cell geometry.PointInt) geometry.RectInt {
	return geometry.NewRectInt(cell.X, cell.Y, u.GridWidth, u.GridHeight)
}

// SourceRect returns the unit's pixel rectangle in its source image.
func (u *Unit) SourceRect() geometry.RectInt {
	o := u.Origin()
	return geometry.NewRectInt(o.X, o.Y, u.PixelWidth(), u.PixelHeight())
}

// TileAt returns the tile at a local column/row, or nil when out of range.
func (u *Unit) TileAt(col, row int) *Tile {
	if col < 0 || col >= u.GridWidth || row < 0 || row >= u.GridHeight {
		return nil
	}
	index := row*u.GridWidth + col
	if index >= len(u.Tiles) {
		return nil
	}
	return u.Tiles[index]
}

// Origin returns the minimum pixel position over all tiles.
func (u *Unit) Origin() geometry.PointInt {
	if len(u.Tiles) == 0 {
		return geometry.PointInt{}
	}
	o := geometry.Pt(u.Tiles[0].X, u.Tiles[0].Y)
	for _, t := range u.Tiles[1:] {
		o.X = min(o.X, t.X)
		o.Y = min(o.Y, t.Y)
	}
	return o
}

// Image composes the unit's tiles into one transparent image of the unit's pixel size.
func (u *Unit) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, u.PixelWidth(), u.PixelHeight()))
	u.DrawAt(img, image.Point{})
	return img
}

// DrawAt copies the unit's tiles into dst with the unit's top-left at pt.
func (u *Unit) DrawAt(dst draw.Image, pt image.Point) {
	o := u.Origin()
	for _, t := range u.Tiles {
		if t.Image == nil {
			continue
		}
		at := pt.Add(image.Pt(t.X-o.X, t.Y-o.Y))
		r := image.Rectangle{Min: at, Max: at.Add(t.Image.Bounds().Size())}
		draw.Draw(dst, r, t.Image, t.Image.Bounds().Min, draw.Src)
	}
}
