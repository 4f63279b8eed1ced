package workbench

import (
	"fmt"

	"github.com/JasonMadeSomething/claimbench/internal/domain"
)

// The operations below are the relationship engine. Each one validates its
// preconditions fully before touching state, mutates under the workbench
// mutex, and emits changes for the sync adapter only after the local state is
// consistent again. There is no partially-applied state visible to reads.

// CreateItemFromPhoto makes a new item seeded with one unassigned photo. The
// photo becomes the thumbnail and the item inherits the photo's room.
func (w *Workbench) CreateItemFromPhoto(photoID string) (domain.Item, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.photos[photoID]
	if !ok {
		return domain.Item{}, notFound("photo", photoID)
	}
	if p.ItemID != "" {
		return domain.Item{}, notFound("unassigned photo", photoID)
	}

	now := w.now()
	it := &domain.Item{
		ID:               domain.NewID(),
		ThumbnailPhotoID: photoID,
		PhotoIDs:         []string{photoID},
		RoomID:           p.RoomID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	w.items[it.ID] = it
	w.itemOrder = append(w.itemOrder, it.ID)
	if it.RoomID != "" {
		if r, ok := w.rooms[it.RoomID]; ok {
			r.ItemIDs = append(r.ItemIDs, it.ID)
		}
	}
	p.ItemID = it.ID

	w.logger.Debug("item created from photo", "item_id", it.ID, "photo_id", photoID)
	w.emit(Change{Op: OpItemCreated, ClaimID: w.claimID, Item: cloneItem(it)})
	return *cloneItem(it), nil
}

// CreateEmptyItem makes an item with no photos, optionally already placed in
// a room. roomID may be empty for the main workbench.
func (w *Workbench) CreateEmptyItem(roomID string) (domain.Item, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if roomID != "" {
		if _, ok := w.rooms[roomID]; !ok {
			return domain.Item{}, notFound("room", roomID)
		}
	}

	now := w.now()
	it := &domain.Item{
		ID:        domain.NewID(),
		RoomID:    roomID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	w.items[it.ID] = it
	w.itemOrder = append(w.itemOrder, it.ID)
	if roomID != "" {
		w.rooms[roomID].ItemIDs = append(w.rooms[roomID].ItemIDs, it.ID)
	}

	w.emit(Change{Op: OpItemCreated, ClaimID: w.claimID, Item: cloneItem(it)})
	return *cloneItem(it), nil
}

// AddPhotoToItem appends a photo to an item. A photo already owned by a
// different item is first removed from it, with that item's thumbnail
// re-elected. Adding a photo the item already has is a no-op.
func (w *Workbench) AddPhotoToItem(itemID, photoID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	it, ok := w.items[itemID]
	if !ok {
		return notFound("item", itemID)
	}
	p, ok := w.photos[photoID]
	if !ok {
		return notFound("photo", photoID)
	}
	if it.HasPhoto(photoID) {
		return nil
	}

	if p.ItemID != "" {
		prev, ok := w.items[p.ItemID]
		if ok {
			w.detachPhotoLocked(prev, p)
			w.emit(Change{Op: OpPhotoRemoved, ClaimID: w.claimID, ItemID: prev.ID, PhotoID: photoID})
			w.emit(Change{Op: OpItemUpdated, ClaimID: w.claimID, Item: cloneItem(prev)})
		}
	}

	it.PhotoIDs = append(it.PhotoIDs, photoID)
	p.ItemID = itemID
	p.RoomID = it.RoomID
	if !it.HasThumbnail() {
		it.ThumbnailPhotoID = photoID
	}
	it.UpdatedAt = w.now()

	w.emit(Change{Op: OpPhotoAdded, ClaimID: w.claimID, ItemID: itemID, PhotoID: photoID})
	w.emit(Change{Op: OpItemUpdated, ClaimID: w.claimID, Item: cloneItem(it)})
	return nil
}

// RemovePhotoFromItem detaches a member photo. The photo keeps its room; the
// item re-elects its thumbnail if the removed photo held it.
func (w *Workbench) RemovePhotoFromItem(itemID, photoID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	it, ok := w.items[itemID]
	if !ok {
		return notFound("item", itemID)
	}
	if !it.HasPhoto(photoID) {
		return notFound("photo in item", photoID)
	}
	p := w.photos[photoID]

	w.detachPhotoLocked(it, p)

	w.emit(Change{Op: OpPhotoRemoved, ClaimID: w.claimID, ItemID: itemID, PhotoID: photoID})
	w.emit(Change{Op: OpItemUpdated, ClaimID: w.claimID, Item: cloneItem(it)})
	return nil
}

// SetThumbnail designates photoID as the item's thumbnail. The photo must
// already be a member of the item.
func (w *Workbench) SetThumbnail(itemID, photoID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	it, ok := w.items[itemID]
	if !ok {
		return notFound("item", itemID)
	}
	if !it.HasPhoto(photoID) {
		return fmt.Errorf("%w: photo %s is not a member of item %s", ErrInvalidState, photoID, itemID)
	}
	it.ThumbnailPhotoID = photoID
	it.UpdatedAt = w.now()

	w.emit(Change{Op: OpItemUpdated, ClaimID: w.claimID, Item: cloneItem(it)})
	return nil
}

// MoveItemToRoom reassigns an item to roomID (empty = main workbench) and
// cascades the new room onto every member photo.
func (w *Workbench) MoveItemToRoom(itemID, roomID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	it, ok := w.items[itemID]
	if !ok {
		return notFound("item", itemID)
	}
	var dest *domain.Room
	if roomID != "" {
		dest, ok = w.rooms[roomID]
		if !ok {
			return notFound("room", roomID)
		}
	}

	if it.RoomID != "" {
		if prev, ok := w.rooms[it.RoomID]; ok {
			prev.ItemIDs = removeID(prev.ItemIDs, itemID)
		}
	}
	if dest != nil && !dest.HasItem(itemID) {
		dest.ItemIDs = append(dest.ItemIDs, itemID)
	}
	it.RoomID = roomID
	for _, pid := range it.PhotoIDs {
		w.photos[pid].RoomID = roomID
	}
	it.UpdatedAt = w.now()

	w.logger.Debug("item moved", "item_id", itemID, "room_id", roomID)
	w.emit(Change{Op: OpItemUpdated, ClaimID: w.claimID, Item: cloneItem(it)})
	return nil
}

// MoveRoomAssignment sets the room of a photo that has no owning item.
// Rooms track item membership only, so no room bookkeeping changes; the
// photo's room is informational until it joins an item.
func (w *Workbench) MoveRoomAssignment(photoID, roomID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.photos[photoID]
	if !ok {
		return notFound("photo", photoID)
	}
	if p.ItemID != "" {
		return fmt.Errorf("%w: photo %s belongs to item %s; move the item instead", ErrInvalidState, photoID, p.ItemID)
	}
	if roomID != "" {
		if _, ok := w.rooms[roomID]; !ok {
			return notFound("room", roomID)
		}
	}
	p.RoomID = roomID

	w.emit(Change{Op: OpPhotoUpdated, ClaimID: w.claimID, Photo: clonePhoto(p)})
	return nil
}

// UpdateItemDetails edits the user-entered fields of an item. Field
// validation (empty name, negative value) belongs to the caller; this only
// requires the item to exist.
func (w *Workbench) UpdateItemDetails(itemID, name, description string, replacementValue float64) (domain.Item, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	it, ok := w.items[itemID]
	if !ok {
		return domain.Item{}, notFound("item", itemID)
	}
	it.Name = name
	it.Description = description
	it.ReplacementValue = replacementValue
	it.UpdatedAt = w.now()

	w.emit(Change{Op: OpItemUpdated, ClaimID: w.claimID, Item: cloneItem(it)})
	return *cloneItem(it), nil
}

// DeleteItem removes an item, detaching every member photo (photos keep
// their room) and removing the item from its room. Items never auto-delete
// when emptied; this is the only way an item goes away.
func (w *Workbench) DeleteItem(itemID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	it, ok := w.items[itemID]
	if !ok {
		return notFound("item", itemID)
	}

	for _, pid := range it.PhotoIDs {
		w.photos[pid].ItemID = ""
	}
	if it.RoomID != "" {
		if r, ok := w.rooms[it.RoomID]; ok {
			r.ItemIDs = removeID(r.ItemIDs, itemID)
		}
	}
	delete(w.items, itemID)
	w.itemOrder = removeID(w.itemOrder, itemID)

	w.logger.Debug("item deleted", "item_id", itemID, "photos_detached", len(it.PhotoIDs))
	w.emit(Change{Op: OpItemDeleted, ClaimID: w.claimID, ItemID: itemID})
	return nil
}

// CreateRoom adds a room from the catalogue. Each catalogue kind is usable
// once per claim. An empty name falls back to the kind's default.
func (w *Workbench) CreateRoom(kind domain.RoomKind, name string) (domain.Room, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !kind.Valid() {
		return domain.Room{}, fmt.Errorf("%w: unknown room kind %q", ErrInvalidState, kind)
	}
	for _, id := range w.roomOrder {
		if w.rooms[id].Kind == kind {
			return domain.Room{}, fmt.Errorf("%w: room kind %q already exists in this claim", ErrInvalidState, kind)
		}
	}
	if name == "" {
		name = kind.DefaultName()
	}

	now := w.now()
	r := &domain.Room{
		ID:        domain.NewID(),
		Name:      name,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
	w.rooms[r.ID] = r
	w.roomOrder = append(w.roomOrder, r.ID)

	w.emit(Change{Op: OpRoomCreated, ClaimID: w.claimID, Room: cloneRoom(r)})
	return *cloneRoom(r), nil
}

// RenameRoom changes a room's display name.
func (w *Workbench) RenameRoom(roomID, name string) (domain.Room, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	r, ok := w.rooms[roomID]
	if !ok {
		return domain.Room{}, notFound("room", roomID)
	}
	r.Name = name
	r.UpdatedAt = w.now()

	w.emit(Change{Op: OpRoomUpdated, ClaimID: w.claimID, Room: cloneRoom(r)})
	return *cloneRoom(r), nil
}

// DeleteRoom removes an empty room. Rooms with member items are rejected;
// the UI blocks that case, the engine still refuses it. Bare photos pointing
// at the room lose their room assignment.
func (w *Workbench) DeleteRoom(roomID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	r, ok := w.rooms[roomID]
	if !ok {
		return notFound("room", roomID)
	}
	if len(r.ItemIDs) > 0 {
		return fmt.Errorf("%w: room %s still has %d items", ErrPreconditionFailed, roomID, len(r.ItemIDs))
	}

	for _, id := range w.photoOrder {
		p := w.photos[id]
		if p.RoomID == roomID && p.ItemID == "" {
			p.RoomID = ""
		}
	}
	delete(w.rooms, roomID)
	w.roomOrder = removeID(w.roomOrder, roomID)

	w.emit(Change{Op: OpRoomDeleted, ClaimID: w.claimID, RoomID: roomID})
	return nil
}

// detachPhotoLocked removes p from it and re-elects the thumbnail. The
// photo's room is left unchanged: removal from an item does not remove it
// from a room. Caller holds w.mu.
func (w *Workbench) detachPhotoLocked(it *domain.Item, p *domain.Photo) {
	it.PhotoIDs = removeID(it.PhotoIDs, p.ID)
	p.ItemID = ""
	if it.ThumbnailPhotoID == p.ID {
		if len(it.PhotoIDs) > 0 {
			it.ThumbnailPhotoID = it.PhotoIDs[0]
		} else {
			it.ThumbnailPhotoID = ""
		}
	}
	it.UpdatedAt = w.now()
}

func notFound(what, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, what, id)
}
