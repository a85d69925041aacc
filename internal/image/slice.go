package image

import (
	"image"

	"golang.org/x/image/draw"

	"tileset-composer/internal/tile"
	"tileset-composer/internal/tileset"
)

// LoadUnits loads an image and groups its tiles into units.
//
// When typ is nil the layout is detected from the image dimensions;
// images of other sizes become a plain grid of 1×1 units.
func LoadUnits(path string, typ *tileset.Type) ([]*tile.Unit, error) {
	src, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Units(src, typ), nil
}

// LoadUnitsByName is LoadUnits with the type given by name. An empty name
// means auto-detect. Unknown names fail before the image is read.
func LoadUnitsByName(path, name string) ([]*tile.Unit, error) {
	var typ *tileset.Type
	if name != "" {
		t, err := tileset.LookupChoice(name)
		if err != nil {
			return nil, err
		}
		typ = t
	}
	return LoadUnits(path, typ)
}

// DetectType returns the layout auto-detected for a source, or nil.
func DetectType(src *Source) *tileset.Type {
	name, ok := tileset.DetectForDimensions(src.Width(), src.Height())
	if !ok {
		return nil
	}
	return tileset.MustLookup(name)
}

// Units slices a decoded source and groups the tiles into units.
func Units(src *Source, typ *tileset.Type) []*tile.Unit {
	if typ == nil {
		typ = DetectType(src)
	}
	grid := SliceGrid(src)
	if typ != nil {
		return GroupUnits(grid, typ)
	}
	return GroupSimple(grid)
}

// SliceGrid cuts the image into a row-major grid of TileSize tiles,
// indexed grid[row][col]. Pixels beyond the last full tile are dropped.
func SliceGrid(src *Source) [][]*tile.Tile {
	size := tileset.TileSize
	cols := src.Width() / size
	rows := src.Height() / size

	grid := make([][]*tile.Tile, 0, rows)
	index := 0
	for row := 0; row < rows; row++ {
		tileRow := make([]*tile.Tile, 0, cols)
		for col := 0; col < cols; col++ {
			x, y := col*size, row*size

			img := image.NewNRGBA(image.Rect(0, 0, size, size))
			draw.Copy(img, image.Point{}, src.Image, image.Rect(x, y, x+size, y+size), draw.Src, nil)

			tileRow = append(tileRow, &tile.Tile{
				SourcePath:  src.Path,
				SourceIndex: index,
				X:           x,
				Y:           y,
				Image:       img,
			})
			index++
		}
		grid = append(grid, tileRow)
	}
	return grid
}

// GroupSimple makes every tile its own 1×1 unit in row-major order.
func GroupSimple(grid [][]*tile.Tile) []*tile.Unit {
	var units []*tile.Unit
	for row, tiles := range grid {
		for col, t := range tiles {
			units = append(units, tile.NewUnit(1, 1, col, row, []*tile.Tile{t}))
		}
	}
	return units
}

// GroupUnits groups tiles by the layout's unit rectangles. Rectangles
// that extend past the sliced grid are skipped, so undersized images
// produce fewer units.
func GroupUnits(grid [][]*tile.Tile, typ *tileset.Type) []*tile.Unit {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil
	}
	rows, cols := len(grid), len(grid[0])
	size := tileset.TileSize

	var units []*tile.Unit
	for _, r := range typ.UnitPositions() {
		startCol, startRow := r.X/size, r.Y/size
		unitCols, unitRows := r.Width/size, r.Height/size
		if startCol+unitCols > cols || startRow+unitRows > rows {
			continue
		}

		tiles := make([]*tile.Tile, 0, unitCols*unitRows)
		for dy := 0; dy < unitRows; dy++ {
			for dx := 0; dx < unitCols; dx++ {
				tiles = append(tiles, grid[startRow+dy][startCol+dx])
			}
		}
		units = append(units, tile.NewUnit(unitCols, unitRows, startCol, startRow, tiles))
	}
	return units
}

// Tiles flattens units into their tiles, preserving order.
func Tiles(units []*tile.Unit) []*tile.Tile {
	var tiles []*tile.Tile
	for _, u := range units {
		tiles = append(tiles, u.Tiles...)
	}
	return tiles
}
