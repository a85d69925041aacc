package canvas

import (
	"image"
	"sort"

	"tileset-composer/internal/tile"
	"tileset-composer/internal/tileset"
	"tileset-composer/pkg/geometry"
)

// Placement is one unit on the canvas, keyed by its top-left cell.
type Placement struct {
	Cell geometry.PointInt
	Unit *tile.Unit
}

// Footprint returns the cells covered by the placement.
func (p Placement) Footprint() geometry.RectInt {
	return p.Unit.Footprint(p.Cell)
}

// PlacementMap is the sparse grid of units placed on a canvas. No two
// placements overlap: placing a unit evicts everything it would cover.
type PlacementMap struct {
	units map[geometry.PointInt]*tile.Unit
}

// NewPlacementMap creates an empty map.
func NewPlacementMap() *PlacementMap {
	return &PlacementMap{units: make(map[geometry.PointInt]*tile.Unit)}
}

// Place puts unit with its top-left at (gridX, gridY), first removing
// every placed unit whose footprint intersects the new one. The evicted
// units are returned.
func (m *PlacementMap) Place(unit *tile.Unit, gridX, gridY int) []*tile.Unit {
	cell := geometry.Pt(gridX, gridY)
	area := unit.Footprint(cell)

	var evicted []*tile.Unit
	for at, u := range m.units {
		if u.Footprint(at).Intersects(area) {
			evicted = append(evicted, u)
			delete(m.units, at)
		}
	}
	m.units[cell] = unit
	return evicted
}

// UnitAt returns the placement whose footprint covers cell.
func (m *PlacementMap) UnitAt(cell geometry.PointInt) (Placement, bool) {
	if u, ok := m.units[cell]; ok {
		return Placement{Cell: cell, Unit: u}, true
	}
	for at, u := range m.units {
		if u.Footprint(at).Contains(cell) {
			return Placement{Cell: at, Unit: u}, true
		}
	}
	return Placement{}, false
}

// RemoveAt removes the placement covering cell, if any.
func (m *PlacementMap) RemoveAt(cell geometry.PointInt) (*tile.Unit, bool) {
	p, ok := m.UnitAt(cell)
	if !ok {
		return nil, false
	}
	delete(m.units, p.Cell)
	return p.Unit, true
}

// Clear removes every placement.
func (m *PlacementMap) Clear() {
	clear(m.units)
}

// IsEmpty reports whether nothing is placed.
func (m *PlacementMap) IsEmpty() bool {
	return len(m.units) == 0
}

// Len returns the number of placed units.
func (m *PlacementMap) Len() int {
	return len(m.units)
}

// Placements returns every placement sorted by row, then column.
func (m *PlacementMap) Placements() []Placement {
	out := make([]Placement, 0, len(m.units))
	for at, u := range m.units {
		out = append(out, Placement{Cell: at, Unit: u})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cell.Less(out[j].Cell) })
	return out
}

// Render copies every placed unit into a transparent width×height image.
// Placements never overlap, so pixels are copied as is rather than
// blended, which keeps partially transparent pixels exact.
func (m *PlacementMap) Render(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for _, p := range m.Placements() {
		p.Unit.DrawAt(img, p.Cell.Mul(tileset.TileSize).Image())
	}
	return img
}
