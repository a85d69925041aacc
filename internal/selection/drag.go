package selection

import (
	"sync"

	"github.com/google/uuid"

	"tileset-composer/internal/tile"
)

// MIMEType marks tile-unit drags for front ends that carry a drag id in
// a clipboard-style payload.
const MIMEType = "application/x-rpgmaker-tileunit"

// DragPayload is what a drag session carries from the palette.
type DragPayload struct {
	Units  []*tile.Unit
	Anchor *tile.Unit // Unit under the pointer when the drag started
}

// DragRegistry holds the payloads of active drags, keyed by session id.
type DragRegistry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]DragPayload
}

// NewDragRegistry creates an empty registry.
func NewDragRegistry() *DragRegistry {
	return &DragRegistry{sessions: make(map[uuid.UUID]DragPayload)}
}

// Begin registers a payload and returns its session id. A nil anchor
// defaults to the first unit.
func (r *DragRegistry) Begin(payload DragPayload) uuid.UUID {
	if payload.Anchor == nil && len(payload.Units) > 0 {
		payload.Anchor = payload.Units[0]
	}
	payload.Units = append([]*tile.Unit(nil), payload.Units...)

	id := uuid.New()
	r.mu.Lock()
	r.sessions[id] = payload
	r.mu.Unlock()
	return id
}

// Payload returns the payload for id.
func (r *DragRegistry) Payload(id uuid.UUID) (DragPayload, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.sessions[id]
	return p, ok
}

// End forgets the session. Ending an unknown id is a no-op.
func (r *DragRegistry) End(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Active returns the number of sessions not yet ended.
func (r *DragRegistry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// ParseID decodes a session id carried as text under MIMEType.
func ParseID(text string) (uuid.UUID, error) {
	return uuid.Parse(text)
}
