// Package palette holds the units loaded from source images and the
// current selection among them.
package palette

import (
	"tileset-composer/internal/tile"
	"tileset-composer/internal/tileset"
	"tileset-composer/pkg/geometry"
)

// Section is the run of units that came from one source image.
type Section struct {
	SourcePath string
	Units      []*tile.Unit
	Cols       int // Tile columns from the image's left edge to the last unit
	Rows       int // Tile rows from the image's top edge to the last unit

	// Tile cells actually covered by the units.
	Extent geometry.RectInt
}

// Name returns the source file name.
func (s Section) Name() string {
	if len(s.Units) == 0 {
		return ""
	}
	return s.Units[0].SourceName()
}

// Palette is the ordered list of units available for placement.
type Palette struct {
	units    []*tile.Unit
	selected []*tile.Unit
}

// New creates an empty palette.
func New() *Palette {
	return &Palette{}
}

// Set replaces the palette contents and clears the selection.
func (p *Palette) Set(units []*tile.Unit) {
	p.units = append([]*tile.Unit(nil), units...)
	p.selected = nil
}

// Prepend adds units in front of the current contents. Units whose source
// path is already present are skipped as a whole file. It returns the
// number of units added.
func (p *Palette) Prepend(units []*tile.Unit) int {
	present := make(map[string]bool)
	for _, u := range p.units {
		present[u.SourcePath()] = true
	}

	var fresh []*tile.Unit
	for _, u := range units {
		if !present[u.SourcePath()] {
			fresh = append(fresh, u)
		}
	}
	if len(fresh) == 0 {
		return 0
	}
	p.units = append(fresh, p.units...)
	return len(fresh)
}

// Clear empties the palette.
func (p *Palette) Clear() {
	p.units = nil
	p.selected = nil
}

// Units returns the palette units in display order.
func (p *Palette) Units() []*tile.Unit {
	return append([]*tile.Unit(nil), p.units...)
}

// Len returns the number of units.
func (p *Palette) Len() int {
	return len(p.units)
}

// TileCount returns the number of tiles across all units.
func (p *Palette) TileCount() int {
	n := 0
	for _, u := range p.units {
		n += len(u.Tiles)
	}
	return n
}

// Select selects the whole unit that owns t. A nil tile, or one that is
// not in the palette, clears the selection.
func (p *Palette) Select(t *tile.Tile) {
	p.selected = nil
	if t == nil || t.Unit() == nil || !p.contains(t.Unit()) {
		return
	}
	p.selected = []*tile.Unit{t.Unit()}
}

// SelectUnits replaces the selection with the given palette units.
func (p *Palette) SelectUnits(units []*tile.Unit) {
	p.selected = nil
	for _, u := range units {
		if p.contains(u) {
			p.selected = append(p.selected, u)
		}
	}
}

// Selected returns the selected units.
func (p *Palette) Selected() []*tile.Unit {
	return append([]*tile.Unit(nil), p.selected...)
}

// IsSelected reports whether u is part of the selection.
func (p *Palette) IsSelected(u *tile.Unit) bool {
	for _, s := range p.selected {
		if s == u {
			return true
		}
	}
	return false
}

func (p *Palette) contains(u *tile.Unit) bool {
	for _, have := range p.units {
		if have == u {
			return true
		}
	}
	return false
}

// Sections groups the palette by source image in first-seen order.
func (p *Palette) Sections() []Section {
	var sections []Section
	var cells [][]geometry.PointInt
	index := make(map[string]int)
	for _, u := range p.units {
		path := u.SourcePath()
		i, ok := index[path]
		if !ok {
			i = len(sections)
			index[path] = i
			sections = append(sections, Section{SourcePath: path})
			cells = append(cells, nil)
		}
		sections[i].Units = append(sections[i].Units, u)
		for _, t := range u.Tiles {
			cells[i] = append(cells[i], t.Cell())
		}
	}
	for i := range sections {
		s := &sections[i]
		s.Extent = geometry.BoundingBox(cells[i])
		if !s.Extent.Empty() {
			end := s.Extent.BottomRight()
			s.Cols, s.Rows = end.X, end.Y
		}
	}
	return sections
}

// UnitsInRect returns the units from sourcePath whose source pixels
// intersect rect, in palette order.
func (p *Palette) UnitsInRect(sourcePath string, rect geometry.RectInt) []*tile.Unit {
	if rect.Empty() {
		return nil
	}
	var out []*tile.Unit
	for _, u := range p.units {
		if u.SourcePath() != sourcePath {
			continue
		}
		if u.SourceRect().Intersects(rect) {
			out = append(out, u)
		}
	}
	return out
}

// UnitAt returns the unit from sourcePath covering the source pixel pt.
func (p *Palette) UnitAt(sourcePath string, pt geometry.PointInt) *tile.Unit {
	for _, u := range p.units {
		if u.SourcePath() != sourcePath {
			continue
		}
		for _, t := range u.Tiles {
			if t.Rect().Contains(pt) {
				return u
			}
		}
	}
	return nil
}

// CellRect converts a tile-cell rectangle to source pixels.
func CellRect(r geometry.RectInt) geometry.RectInt {
	return r.Scale(tileset.TileSize)
}
