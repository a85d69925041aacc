package selection

import (
	"testing"

	"tileset-composer/internal/tile"
	"tileset-composer/pkg/geometry"
)

func TestBoxSelectionLifecycle(t *testing.T) {
	var b BoxSelection
	if _, ok := b.Rect(); ok {
		t.Fatal("zero value should be inactive")
	}

	b.Update(geometry.Pt(5, 5))
	if b.Current != (geometry.PointInt{}) {
		t.Error("Update while inactive should be ignored")
	}

	b.Begin(geometry.Pt(100, 80))
	if _, ok := b.Rect(); ok {
		t.Error("a box with no area should report false")
	}

	b.Update(geometry.Pt(20, 30))
	want := geometry.NewRectInt(20, 30, 80, 50)
	if r, ok := b.Rect(); !ok || r != want {
		t.Errorf("Rect() = %v, %v, want %v", r, ok, want)
	}

	r, ok := b.End()
	if !ok || r != want {
		t.Errorf("End() = %v, %v, want %v", r, ok, want)
	}
	if b.Active {
		t.Error("End should deactivate the selection")
	}
}

func TestBoxSelectionIsValue(t *testing.T) {
	var a BoxSelection
	a.Begin(geometry.Pt(0, 0))
	b := a
	b.Update(geometry.Pt(10, 10))
	if a.Current != geometry.Pt(0, 0) {
		t.Error("copies must not share state")
	}
}

func TestDragRegistry(t *testing.T) {
	u1 := tile.NewUnit(1, 1, 0, 0, nil)
	u2 := tile.NewUnit(1, 1, 1, 0, nil)
	r := NewDragRegistry()

	id := r.Begin(DragPayload{Units: []*tile.Unit{u1, u2}})
	other := r.Begin(DragPayload{Units: []*tile.Unit{u2}, Anchor: u2})
	if id == other {
		t.Fatal("session ids must be unique")
	}
	if r.Active() != 2 {
		t.Errorf("Active() = %d, want 2", r.Active())
	}

	p, ok := r.Payload(id)
	if !ok || len(p.Units) != 2 || p.Anchor != u1 {
		t.Errorf("Payload() = %+v, %v", p, ok)
	}

	parsed, err := ParseID(id.String())
	if err != nil || parsed != id {
		t.Errorf("ParseID round trip = %v, %v", parsed, err)
	}

	r.End(id)
	if _, ok := r.Payload(id); ok {
		t.Error("ended session should be forgotten")
	}
	r.End(id)
	if r.Active() != 1 {
		t.Errorf("Active() = %d, want 1", r.Active())
	}
}
