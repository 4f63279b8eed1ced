// Package workbench holds the in-memory model of one active claim and the
// relationship engine that keeps its photos, items, and rooms mutually
// consistent while the canvas UI rearranges them.
package workbench

import (
	"log/slog"
	"sync"
	"time"

	"github.com/JasonMadeSomething/claimbench/internal/canvas"
	"github.com/JasonMadeSomething/claimbench/internal/domain"
)

// Workbench owns the three keyed collections for exactly one active claim,
// plus the canvas position cache. All exported operations take the single
// mutex, so every mutation is one atomic transition with respect to reads.
type Workbench struct {
	mu      sync.Mutex
	claimID string

	photos map[string]*domain.Photo
	items  map[string]*domain.Item
	rooms  map[string]*domain.Room

	// Insertion order for stable listings.
	photoOrder []string
	itemOrder  []string
	roomOrder  []string

	positions *canvas.Cache
	sink      ChangeSink
	logger    *slog.Logger
	now       func() time.Time
}

// New creates an empty workbench. sink may be nil when no persistence is
// attached (tests, read-only tooling).
func New(sink ChangeSink, logger *slog.Logger) *Workbench {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workbench{
		photos:    make(map[string]*domain.Photo),
		items:     make(map[string]*domain.Item),
		rooms:     make(map[string]*domain.Room),
		positions: canvas.NewCache(),
		sink:      sink,
		logger:    logger,
		now:       time.Now,
	}
}

// ReplaceClaim atomically swaps in the collections of a different claim and
// clears the position cache. The slices become the authoritative state; the
// workbench copies them, so callers keep ownership of their arguments.
func (w *Workbench) ReplaceClaim(claimID string, photos []domain.Photo, items []domain.Item, rooms []domain.Room) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.claimID = claimID
	w.photos = make(map[string]*domain.Photo, len(photos))
	w.items = make(map[string]*domain.Item, len(items))
	w.rooms = make(map[string]*domain.Room, len(rooms))
	w.photoOrder = w.photoOrder[:0]
	w.itemOrder = w.itemOrder[:0]
	w.roomOrder = w.roomOrder[:0]

	for i := range photos {
		p := clonePhoto(&photos[i])
		w.photos[p.ID] = p
		w.photoOrder = append(w.photoOrder, p.ID)
	}
	for i := range items {
		it := cloneItem(&items[i])
		w.items[it.ID] = it
		w.itemOrder = append(w.itemOrder, it.ID)
	}
	for i := range rooms {
		r := cloneRoom(&rooms[i])
		w.rooms[r.ID] = r
		w.roomOrder = append(w.roomOrder, r.ID)
	}

	w.positions.Reset()
	w.logger.Info("claim replaced",
		"claim_id", claimID,
		"photos", len(photos),
		"items", len(items),
		"rooms", len(rooms),
	)
}

// ClaimID returns the active claim id, or "" before any claim is loaded.
func (w *Workbench) ClaimID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.claimID
}

// AddPhoto registers a freshly uploaded photo. Upload itself happens
// elsewhere; the workbench only learns the finished record.
func (w *Workbench) AddPhoto(p domain.Photo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.photos[p.ID]; exists {
		return
	}
	cp := clonePhoto(&p)
	w.photos[cp.ID] = cp
	w.photoOrder = append(w.photoOrder, cp.ID)
}

// RemovePhoto drops a photo deleted externally, detaching it from any owning
// item first so membership and thumbnail invariants hold.
func (w *Workbench) RemovePhoto(photoID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.photos[photoID]
	if !ok {
		return notFound("photo", photoID)
	}
	if p.ItemID != "" {
		if it, ok := w.items[p.ItemID]; ok {
			w.detachPhotoLocked(it, p)
			w.emit(Change{Op: OpItemUpdated, ClaimID: w.claimID, Item: cloneItem(it)})
		}
	}
	delete(w.photos, photoID)
	w.photoOrder = removeID(w.photoOrder, photoID)
	w.positions.Forget(photoID)
	return nil
}

// Photo returns a copy of the photo, or false if absent.
func (w *Workbench) Photo(id string) (domain.Photo, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.photos[id]
	if !ok {
		return domain.Photo{}, false
	}
	return *clonePhoto(p), true
}

// Item returns a copy of the item, or false if absent.
func (w *Workbench) Item(id string) (domain.Item, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	it, ok := w.items[id]
	if !ok {
		return domain.Item{}, false
	}
	return *cloneItem(it), true
}

// Room returns a copy of the room, or false if absent.
func (w *Workbench) Room(id string) (domain.Room, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, ok := w.rooms[id]
	if !ok {
		return domain.Room{}, false
	}
	return *cloneRoom(r), true
}

// Photos lists all photos in insertion order.
func (w *Workbench) Photos() []domain.Photo {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]domain.Photo, 0, len(w.photoOrder))
	for _, id := range w.photoOrder {
		out = append(out, *clonePhoto(w.photos[id]))
	}
	return out
}

// Items lists all items in insertion order.
func (w *Workbench) Items() []domain.Item {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]domain.Item, 0, len(w.itemOrder))
	for _, id := range w.itemOrder {
		out = append(out, *cloneItem(w.items[id]))
	}
	return out
}

// Rooms lists all rooms in insertion order.
func (w *Workbench) Rooms() []domain.Room {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]domain.Room, 0, len(w.roomOrder))
	for _, id := range w.roomOrder {
		out = append(out, *cloneRoom(w.rooms[id]))
	}
	return out
}

// UnassignedPhotos lists photos with no owning item, in insertion order.
func (w *Workbench) UnassignedPhotos() []domain.Photo {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []domain.Photo
	for _, id := range w.photoOrder {
		p := w.photos[id]
		if p.ItemID == "" {
			out = append(out, *clonePhoto(p))
		}
	}
	return out
}

// ItemsInRoom lists the items assigned to roomID, or the items in no room
// when roomID is empty (the main workbench).
func (w *Workbench) ItemsInRoom(roomID string) []domain.Item {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []domain.Item
	for _, id := range w.itemOrder {
		it := w.items[id]
		if it.RoomID == roomID {
			out = append(out, *cloneItem(it))
		}
	}
	return out
}

// Positions exposes the canvas position cache.
func (w *Workbench) Positions() *canvas.Cache {
	return w.positions
}

// SetPhotoPosition records a user move of a photo on the canvas. Positions
// are view state and never emit a change.
func (w *Workbench) SetPhotoPosition(photoID string, pos domain.Position) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.photos[photoID]
	if !ok {
		return notFound("photo", photoID)
	}
	p.Position = pos
	w.positions.Set(photoID, pos)
	return nil
}

// SetPhotoLabels replaces a photo's label set. This is the label producer's
// write path; the engine itself never edits labels.
func (w *Workbench) SetPhotoLabels(photoID string, labels []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.photos[photoID]
	if !ok {
		return notFound("photo", photoID)
	}
	p.Labels = append([]string(nil), labels...)
	w.emit(Change{Op: OpPhotoUpdated, ClaimID: w.claimID, Photo: clonePhoto(p)})
	return nil
}

// ReconcileItem overlays canonical server timestamps onto a local item after
// a successful sync. Relationship fields are deliberately left alone so a
// stale server echo cannot undo newer local edits.
func (w *Workbench) ReconcileItem(server domain.Item) {
	w.mu.Lock()
	defer w.mu.Unlock()
	it, ok := w.items[server.ID]
	if !ok {
		return
	}
	if !server.CreatedAt.IsZero() {
		it.CreatedAt = server.CreatedAt
	}
	if !server.UpdatedAt.IsZero() {
		it.UpdatedAt = server.UpdatedAt
	}
}

// ReconcileRoom is the room counterpart of ReconcileItem.
func (w *Workbench) ReconcileRoom(server domain.Room) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, ok := w.rooms[server.ID]
	if !ok {
		return
	}
	if !server.CreatedAt.IsZero() {
		r.CreatedAt = server.CreatedAt
	}
	if !server.UpdatedAt.IsZero() {
		r.UpdatedAt = server.UpdatedAt
	}
}

// ReconcilePhoto is the photo counterpart of ReconcileItem.
func (w *Workbench) ReconcilePhoto(server domain.Photo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.photos[server.ID]
	if !ok {
		return
	}
	if !server.UploadedAt.IsZero() {
		p.UploadedAt = server.UploadedAt
	}
	if server.URL != "" {
		p.URL = server.URL
	}
}

func (w *Workbench) emit(ch Change) {
	if w.sink == nil {
		return
	}
	w.sink.Apply(ch)
}

func clonePhoto(p *domain.Photo) *domain.Photo {
	cp := *p
	cp.Labels = append([]string(nil), p.Labels...)
	return &cp
}

func cloneItem(it *domain.Item) *domain.Item {
	cp := *it
	cp.PhotoIDs = append([]string(nil), it.PhotoIDs...)
	return &cp
}

func cloneRoom(r *domain.Room) *domain.Room {
	cp := *r
	cp.ItemIDs = append([]string(nil), r.ItemIDs...)
	return &cp
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
