// Package tileset provides RPG Maker MZ tileset layout definitions and
// the registry of built-in types.
package tileset

import (
	"errors"
	"fmt"

	"tileset-composer/pkg/geometry"
)

// TileSize is the edge length in pixels of the atomic tile every layout is built from.
const TileSize = 48

// ErrUnknownType is returned when a name or image size has no registered layout.
var ErrUnknownType = errors.New("unknown tileset type")

// UnknownTypeError describes a failed lookup by name or by dimensions.
type UnknownTypeError struct {
	Name   string
	Width  int
	Height int
}

func (e *UnknownTypeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown tileset type: %s", e.Name)
	}
	return fmt.Sprintf("cannot determine tileset type for image with dimensions %d×%d", e.Width, e.Height)
}

// Is makes errors.Is(err, ErrUnknownType) match.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// UnitShape is the size of one unit in tiles.
type UnitShape struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PixelWidth returns the shape width in pixels.
func (s UnitShape) PixelWidth() int { return s.Width * TileSize }

// PixelHeight returns the shape height in pixels.
func (s UnitShape) PixelHeight() int { return s.Height * TileSize }

func (s UnitShape) String() string {
	return fmt.Sprintf("%d×%d", s.Width, s.Height)
}

// Type defines one tileset image format.
//
// Unit rows alternate between EvenRowLayout (rows 0, 2, 4...) and
// OddRowLayout (rows 1, 3, 5...). Each layout is a horizontal pattern
// that repeats until it fills PixelWidth. Most types use the same layout
// for both; A1 and A4 do not.
type Type struct {
	Name          string      `json:"name"`
	PixelWidth    int         `json:"pixel_width"`
	PixelHeight   int         `json:"pixel_height"`
	EvenRowLayout []UnitShape `json:"even_row_layout"`
	OddRowLayout  []UnitShape `json:"odd_row_layout"`
	UnitRows      int         `json:"unit_rows"`

	positions []geometry.RectInt
}

// RowLayout returns the layout used by the given unit row.
func (t *Type) RowLayout(row int) []UnitShape {
	if row%2 == 0 {
		return t.EvenRowLayout
	}
	return t.OddRowLayout
}

// GridWidth returns the number of tile columns.
func (t *Type) GridWidth() int { return t.PixelWidth / TileSize }

// GridHeight returns the number of tile rows.
func (t *Type) GridHeight() int { return t.PixelHeight / TileSize }

// Bounds returns the full image rectangle in pixels.
func (t *Type) Bounds() geometry.RectInt {
	return geometry.NewRectInt(0, 0, t.PixelWidth, t.PixelHeight)
}

// Validate checks that the layout is well formed.
func (t *Type) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tileset type name is required")
	}
	if t.PixelWidth <= 0 || t.PixelHeight <= 0 {
		return fmt.Errorf("tileset %s: dimensions must be positive", t.Name)
	}
	if t.PixelWidth%TileSize != 0 || t.PixelHeight%TileSize != 0 {
		return fmt.Errorf("tileset %s: dimensions %d×%d are not multiples of %d",
			t.Name, t.PixelWidth, t.PixelHeight, TileSize)
	}
	if t.UnitRows <= 0 {
		return fmt.Errorf("tileset %s: unit row count must be positive", t.Name)
	}

	for i, layout := range [][]UnitShape{t.EvenRowLayout, t.OddRowLayout} {
		if len(layout) == 0 {
			return fmt.Errorf("tileset %s: row layout %d is empty", t.Name, i)
		}
		height := layout[0].Height
		for _, s := range layout {
			if s.Width <= 0 || s.Height <= 0 {
				return fmt.Errorf("tileset %s: unit shape %s must be positive", t.Name, s)
			}
			if s.Height != height {
				return fmt.Errorf("tileset %s: mixed unit heights in one row layout", t.Name)
			}
		}
		if pw := patternWidth(layout); t.PixelWidth%pw != 0 {
			return fmt.Errorf("tileset %s: pattern width %d does not divide image width %d",
				t.Name, pw, t.PixelWidth)
		}
	}

	total := 0
	for row := 0; row < t.UnitRows; row++ {
		total += t.RowLayout(row)[0].PixelHeight()
	}
	if total > t.PixelHeight {
		return fmt.Errorf("tileset %s: unit rows span %dpx, image is %dpx tall",
			t.Name, total, t.PixelHeight)
	}
	return nil
}

// UnitPositions returns every unit rectangle in pixels, ordered top to
// bottom, left to right, pattern order within each repetition. UI
// numbering depends on this order.
func (t *Type) UnitPositions() []geometry.RectInt {
	if t.positions == nil {
		t.positions = computePositions(t)
	}
	out := make([]geometry.RectInt, len(t.positions))
	copy(out, t.positions)
	return out
}

// TotalUnits returns the number of selectable units in the layout.
func (t *Type) TotalUnits() int {
	total := 0
	for row := 0; row < t.UnitRows; row++ {
		layout := t.RowLayout(row)
		total += len(layout) * (t.PixelWidth / patternWidth(layout))
	}
	return total
}

// Shapes returns the distinct unit shapes used by the layout, in first-seen order.
func (t *Type) Shapes() []UnitShape {
	var shapes []UnitShape
	seen := make(map[UnitShape]bool)
	for _, layout := range [][]UnitShape{t.EvenRowLayout, t.OddRowLayout} {
		for _, s := range layout {
			if !seen[s] {
				seen[s] = true
				shapes = append(shapes, s)
			}
		}
	}
	return shapes
}

func computePositions(t *Type) []geometry.RectInt {
	positions := make([]geometry.RectInt, 0, t.TotalUnits())
	y := 0
	for row := 0; row < t.UnitRows; row++ {
		layout := t.RowLayout(row)
		repeats := t.PixelWidth / patternWidth(layout)

		x := 0
		for r := 0; r < repeats; r++ {
			for _, s := range layout {
				positions = append(positions, geometry.NewRectInt(x, y, s.PixelWidth(), s.PixelHeight()))
				x += s.PixelWidth()
			}
		}

		// All shapes in one layout share a height.
		y += layout[0].PixelHeight()
	}
	return positions
}

func patternWidth(layout []UnitShape) int {
	w := 0
	for _, s := range layout {
		w += s.PixelWidth()
	}
	return w
}
