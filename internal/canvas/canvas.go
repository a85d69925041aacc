package canvas

import (
	"image"

	"tileset-composer/internal/tile"
	"tileset-composer/internal/tileset"
	"tileset-composer/pkg/geometry"
)

// Canvas is the composition target: an active tileset layout and the
// units placed on it.
type Canvas struct {
	typ       *tileset.Type
	validator *Validator
	placed    *PlacementMap
}

// New creates an empty canvas for the given layout.
func New(typ *tileset.Type) *Canvas {
	return &Canvas{
		typ:       typ,
		validator: NewValidator(typ),
		placed:    NewPlacementMap(),
	}
}

// Type returns the active layout.
func (c *Canvas) Type() *tileset.Type {
	return c.typ
}

// SetType switches the layout. Placed units never carry over, even when
// the new type is the same.
func (c *Canvas) SetType(typ *tileset.Type) {
	c.typ = typ
	c.validator = NewValidator(typ)
	c.placed.Clear()
}

// Validator returns the drop validator for the active layout.
func (c *Canvas) Validator() *Validator {
	return c.validator
}

// Placements returns the placement map.
func (c *Canvas) Placements() *PlacementMap {
	return c.placed
}

// GridWidth returns the number of tile columns.
func (c *Canvas) GridWidth() int { return c.typ.GridWidth() }

// GridHeight returns the number of tile rows.
func (c *Canvas) GridHeight() int { return c.typ.GridHeight() }

// CellAt converts a pixel position to a grid cell. ok is false outside the canvas.
func (c *Canvas) CellAt(px, py int) (geometry.PointInt, bool) {
	if px < 0 || py < 0 || px >= c.typ.PixelWidth || py >= c.typ.PixelHeight {
		return geometry.PointInt{}, false
	}
	return geometry.Pt(px/tileset.TileSize, py/tileset.TileSize), true
}

// Drop places unit at cell if the layout allows it. With snap set, an
// invalid cell is moved to the nearest slot of the unit's size. It
// returns the cell actually used.
func (c *Canvas) Drop(unit *tile.Unit, cell geometry.PointInt, snap bool) (geometry.PointInt, bool) {
	if !c.validator.IsValidPlacement(cell.X, cell.Y, unit) {
		if !snap {
			return cell, false
		}
		snapped, ok := c.validator.SnapToNearest(cell.X, cell.Y, unit)
		if !ok {
			return cell, false
		}
		cell = snapped
	}
	c.placed.Place(unit, cell.X, cell.Y)
	return cell, true
}

// DropGroup drops several units that were dragged together. The anchor
// lands at cell and every other unit keeps its source-grid offset from
// the anchor. Snapping, when enabled, moves the anchor only; members that
// then fall on invalid slots are skipped. It returns what was placed.
func (c *Canvas) DropGroup(units []*tile.Unit, anchor *tile.Unit, cell geometry.PointInt, snap bool) []Placement {
	if anchor == nil {
		return nil
	}
	if snap && !c.validator.IsValidPlacement(cell.X, cell.Y, anchor) {
		snapped, ok := c.validator.SnapToNearest(cell.X, cell.Y, anchor)
		if !ok {
			return nil
		}
		cell = snapped
	}

	var placed []Placement
	for _, u := range units {
		at := cell.Add(geometry.Pt(u.GridX-anchor.GridX, u.GridY-anchor.GridY))
		if c.validator.IsValidPlacement(at.X, at.Y, u) {
			c.placed.Place(u, at.X, at.Y)
			placed = append(placed, Placement{Cell: at, Unit: u})
		}
	}
	return placed
}

// Remove removes the unit covering cell.
func (c *Canvas) Remove(cell geometry.PointInt) (*tile.Unit, bool) {
	return c.placed.RemoveAt(cell)
}

// Clear removes all placed units.
func (c *Canvas) Clear() {
	c.placed.Clear()
}

// IsEmpty reports whether nothing is placed.
func (c *Canvas) IsEmpty() bool {
	return c.placed.IsEmpty()
}

// Render composes the canvas at the layout's full pixel size.
func (c *Canvas) Render() *image.NRGBA {
	return c.placed.Render(c.typ.PixelWidth, c.typ.PixelHeight)
}
