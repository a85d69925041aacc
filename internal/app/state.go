// Package app provides the composer state shared by front ends: the
// palette, the canvas, active drags and change events.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"tileset-composer/internal/canvas"
	tsimage "tileset-composer/internal/image"
	"tileset-composer/internal/palette"
	"tileset-composer/internal/project"
	"tileset-composer/internal/selection"
	"tileset-composer/internal/tile"
	"tileset-composer/internal/tileset"
	"tileset-composer/pkg/geometry"
)

// DefaultType is the layout a new state starts with.
const DefaultType = "A5"

// ErrUnknownDrag is returned when a drop names a drag session that was
// never started or has already ended.
var ErrUnknownDrag = errors.New("unknown drag session")

// State holds the palette, the canvas and the drags in flight.
type State struct {
	mu sync.RWMutex

	palette *palette.Palette
	canvas  *canvas.Canvas
	drags   *selection.DragRegistry

	// Snap moves invalid drops to the nearest matching slot instead of
	// rejecting them.
	snap bool

	// Path of the last image opened as a project, "" for a new canvas.
	openedPath string

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventTypeChanged EventType = iota
	EventPaletteChanged
	EventSelectionChanged
	EventUnitPlaced
	EventUnitRemoved
	EventCanvasCleared
	EventProjectOpened
	EventExported
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// PlacedEvent is the payload of EventUnitPlaced.
type PlacedEvent struct {
	Unit *tile.Unit
	Cell geometry.PointInt
}

// LoadedEvent is the payload of EventPaletteChanged after a load.
type LoadedEvent struct {
	Added    int
	Files    int
	Failures int
	Appended bool
}

// NewState creates a state with an empty palette and a DefaultType canvas.
func NewState() *State {
	return &State{
		palette:   palette.New(),
		canvas:    canvas.New(tileset.MustLookup(DefaultType)),
		drags:     selection.NewDragRegistry(),
		snap:      true,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Palette returns the palette.
func (s *State) Palette() *palette.Palette {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.palette
}

// Canvas returns the canvas.
func (s *State) Canvas() *canvas.Canvas {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canvas
}

// TargetType returns the canvas layout.
func (s *State) TargetType() *tileset.Type {
	return s.Canvas().Type()
}

// OpenedPath returns the image last opened with OpenImage.
func (s *State) OpenedPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.openedPath
}

// SetSnap enables or disables snapping of invalid drops.
func (s *State) SetSnap(enabled bool) {
	s.mu.Lock()
	s.snap = enabled
	s.mu.Unlock()
}

// Snap reports whether drops snap to the nearest slot.
func (s *State) Snap() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// SetTargetType switches the canvas layout by name or picker entry. The
// canvas is always cleared, even when the type does not change.
func (s *State) SetTargetType(name string) error {
	typ, err := tileset.LookupChoice(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.canvas.SetType(typ)
	s.openedPath = ""
	s.mu.Unlock()

	log.Printf("Target: %s (%d×%d px)", typ.Name, typ.PixelWidth, typ.PixelHeight)
	s.Emit(EventTypeChanged, typ)
	return nil
}

// LoadImages slices the given images and puts their units in the palette,
// replacing its contents or, with appendMode, prepending new sources.
// Images that fail to load are skipped. A cancelled load leaves the
// palette untouched.
func (s *State) LoadImages(ctx context.Context, paths []string, appendMode bool, progress tsimage.ProgressFunc) *tsimage.BatchResult {
	res := tsimage.LoadBatch(ctx, paths, nil, progress)
	s.applyBatch(res, len(paths), appendMode)
	return res
}

// LoadFolder is LoadImages for every supported image in dir.
func (s *State) LoadFolder(ctx context.Context, dir string, appendMode bool, progress tsimage.ProgressFunc) *tsimage.BatchResult {
	paths := tsimage.FindImages(dir)
	res := tsimage.LoadBatch(ctx, paths, nil, progress)
	s.applyBatch(res, len(paths), appendMode)
	return res
}

// AddUnits puts already loaded units in the palette.
func (s *State) AddUnits(units []*tile.Unit, appendMode bool) int {
	s.mu.Lock()
	added := len(units)
	if appendMode {
		added = s.palette.Prepend(units)
	} else {
		s.palette.Set(units)
	}
	s.mu.Unlock()

	s.Emit(EventPaletteChanged, LoadedEvent{Added: added, Appended: appendMode})
	return added
}

func (s *State) applyBatch(res *tsimage.BatchResult, files int, appendMode bool) {
	if res.Cancelled {
		log.Printf("Palette: load cancelled after %d of %d image(s)", len(res.Loaded), files)
		return
	}

	s.mu.Lock()
	added := len(res.Units)
	if appendMode {
		added = s.palette.Prepend(res.Units)
	} else {
		s.palette.Set(res.Units)
	}
	s.mu.Unlock()

	if appendMode {
		log.Printf("Palette: added %d unit(s) from %d image(s)", added, files)
	} else {
		log.Printf("Palette: loaded %d unit(s) from %d image(s)", added, files)
	}
	s.Emit(EventPaletteChanged, LoadedEvent{
		Added:    added,
		Files:    files,
		Failures: res.FailureCount(),
		Appended: appendMode,
	})
}

// SelectTile selects the unit owning t.
func (s *State) SelectTile(t *tile.Tile) {
	s.mu.Lock()
	s.palette.Select(t)
	sel := s.palette.Selected()
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, sel)
}

// SelectBox selects the units of one source image touched by rect, given
// in source pixels.
func (s *State) SelectBox(sourcePath string, rect geometry.RectInt) []*tile.Unit {
	s.mu.Lock()
	s.palette.SelectUnits(s.palette.UnitsInRect(sourcePath, rect))
	sel := s.palette.Selected()
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, sel)
	return sel
}

// BeginDrag starts a drag session carrying units. A nil anchor uses the
// first unit.
func (s *State) BeginDrag(units []*tile.Unit, anchor *tile.Unit) uuid.UUID {
	return s.drags.Begin(selection.DragPayload{Units: units, Anchor: anchor})
}

// BeginSelectionDrag starts a drag carrying the palette selection.
func (s *State) BeginSelectionDrag(anchor *tile.Unit) (uuid.UUID, bool) {
	sel := s.Palette().Selected()
	if len(sel) == 0 {
		return uuid.Nil, false
	}
	return s.BeginDrag(sel, anchor), true
}

// CancelDrag ends a drag session without dropping.
func (s *State) CancelDrag(id uuid.UUID) {
	s.drags.End(id)
}

// Drop ends the drag session id by placing its units with the anchor at
// cell. It returns how many units landed; zero means the drop was
// rejected.
func (s *State) Drop(id uuid.UUID, cell geometry.PointInt) (int, error) {
	payload, ok := s.drags.Payload(id)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownDrag, id)
	}
	s.drags.End(id)
	if len(payload.Units) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	var placed []PlacedEvent
	if len(payload.Units) == 1 {
		u := payload.Units[0]
		if at, ok := s.canvas.Drop(u, cell, s.snap); ok {
			placed = append(placed, PlacedEvent{Unit: u, Cell: at})
		}
	} else {
		for _, p := range s.canvas.DropGroup(payload.Units, payload.Anchor, cell, s.snap) {
			placed = append(placed, PlacedEvent{Unit: p.Unit, Cell: p.Cell})
		}
	}
	s.mu.Unlock()

	for _, p := range placed {
		s.Emit(EventUnitPlaced, p)
	}
	return len(placed), nil
}

// Place drops a single unit without a drag session.
func (s *State) Place(unit *tile.Unit, cell geometry.PointInt) (geometry.PointInt, bool) {
	s.mu.Lock()
	at, ok := s.canvas.Drop(unit, cell, s.snap)
	s.mu.Unlock()
	if ok {
		s.Emit(EventUnitPlaced, PlacedEvent{Unit: unit, Cell: at})
	}
	return at, ok
}

// RemoveAt removes the unit covering cell.
func (s *State) RemoveAt(cell geometry.PointInt) bool {
	s.mu.Lock()
	u, ok := s.canvas.Remove(cell)
	s.mu.Unlock()
	if ok {
		s.Emit(EventUnitRemoved, u)
	}
	return ok
}

// ClearCanvas removes every placed unit. It reports false when the canvas
// was already empty.
func (s *State) ClearCanvas() bool {
	s.mu.Lock()
	if s.canvas.IsEmpty() {
		s.mu.Unlock()
		return false
	}
	s.canvas.Clear()
	s.mu.Unlock()
	s.Emit(EventCanvasCleared, nil)
	return true
}

// OpenImage replaces the canvas with a finished tileset image. An empty
// typeName detects the layout from the image size.
func (s *State) OpenImage(path, typeName string) (*project.Result, error) {
	res, err := project.Open(path, typeName)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.canvas = res.Canvas
	s.openedPath = path
	s.mu.Unlock()

	log.Printf("Opened %s as %s", path, res.Message)
	s.Emit(EventTypeChanged, res.Canvas.Type())
	s.Emit(EventProjectOpened, res)
	return res, nil
}

// Export writes the canvas as a PNG and returns the path written.
func (s *State) Export(path string) (string, error) {
	s.mu.RLock()
	c := s.canvas
	s.mu.RUnlock()

	out, err := project.Export(c, path)
	if err != nil {
		return "", err
	}
	s.Emit(EventExported, out)
	return out, nil
}

// SuggestedExportName returns the default file name for the current type.
func (s *State) SuggestedExportName() string {
	return project.SuggestedName(s.TargetType().Name)
}
