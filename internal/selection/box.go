// Package selection provides rubber-band box selection and drag sessions
// for moving units from the palette to the canvas.
package selection

import "tileset-composer/pkg/geometry"

// BoxSelection tracks a rubber-band rectangle between a press and a
// release. The zero value is inactive.
type BoxSelection struct {
	Start   geometry.PointInt
	Current geometry.PointInt
	Active  bool
}

// Begin starts a selection at pt.
func (b *BoxSelection) Begin(pt geometry.PointInt) {
	b.Start = pt
	b.Current = pt
	b.Active = true
}

// Update moves the free corner. It does nothing while inactive.
func (b *BoxSelection) Update(pt geometry.PointInt) {
	if !b.Active {
		return
	}
	b.Current = pt
}

// End finishes the selection and returns its final rectangle.
func (b *BoxSelection) End() (geometry.RectInt, bool) {
	r, ok := b.Rect()
	b.Active = false
	return r, ok
}

// Rect returns the normalized rectangle spanned by the selection. ok is
// false while inactive or when the box has no area.
func (b BoxSelection) Rect() (geometry.RectInt, bool) {
	if !b.Active {
		return geometry.RectInt{}, false
	}
	r := geometry.RectFromPoints(b.Start, b.Current)
	if r.Empty() {
		return geometry.RectInt{}, false
	}
	return r, true
}
