// Package canvas provides the composition canvas model: drop validation
// against a tileset layout and the map of placed units.
package canvas

import (
	"tileset-composer/internal/tile"
	"tileset-composer/internal/tileset"
	"tileset-composer/pkg/geometry"
)

// Validator decides where units may land on a tileset layout. A unit may
// only occupy a layout slot of exactly its own size.
type Validator struct {
	slots []geometry.RectInt // Layout unit rectangles in tile units, generator order
}

// NewValidator builds a validator for the given layout.
func NewValidator(typ *tileset.Type) *Validator {
	positions := typ.UnitPositions()
	slots := make([]geometry.RectInt, len(positions))
	for i, p := range positions {
		slots[i] = geometry.NewRectInt(
			p.X/tileset.TileSize, p.Y/tileset.TileSize,
			p.Width/tileset.TileSize, p.Height/tileset.TileSize,
		)
	}
	return &Validator{slots: slots}
}

// IsValid reports whether a width×height footprint may sit with its
// top-left at (gridX, gridY).
func (v *Validator) IsValid(gridX, gridY, width, height int) bool {
	want := geometry.NewRectInt(gridX, gridY, width, height)
	for _, s := range v.slots {
		if s == want {
			return true
		}
	}
	return false
}

// IsValidPlacement reports whether unit may be placed at (gridX, gridY).
func (v *Validator) IsValidPlacement(gridX, gridY int, unit *tile.Unit) bool {
	return v.IsValid(gridX, gridY, unit.GridWidth, unit.GridHeight)
}

// SnapToNearest returns the slot matching the unit's footprint whose
// top-left is closest to (gridX, gridY) by Manhattan distance. Ties go to
// the slot that comes first in layout order. ok is false when the layout
// has no slot of that size.
func (v *Validator) SnapToNearest(gridX, gridY int, unit *tile.Unit) (cell geometry.PointInt, ok bool) {
	return v.Snap(gridX, gridY, unit.GridWidth, unit.GridHeight)
}

// Snap is SnapToNearest for a bare footprint.
func (v *Validator) Snap(gridX, gridY, width, height int) (geometry.PointInt, bool) {
	from := geometry.Pt(gridX, gridY)
	best := geometry.PointInt{}
	bestDist := -1
	for _, s := range v.slots {
		if s.Width != width || s.Height != height {
			continue
		}
		if d := s.TopLeft().Manhattan(from); bestDist < 0 || d < bestDist {
			best, bestDist = s.TopLeft(), d
		}
	}
	return best, bestDist >= 0
}

// Slots returns the layout slots of the given footprint, in layout order.
// A zero width or height matches every slot.
func (v *Validator) Slots(width, height int) []geometry.RectInt {
	var out []geometry.RectInt
	for _, s := range v.slots {
		if (width == 0 || s.Width == width) && (height == 0 || s.Height == height) {
			out = append(out, s)
		}
	}
	return out
}
