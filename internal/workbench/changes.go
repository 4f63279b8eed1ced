package workbench

import "github.com/JasonMadeSomething/claimbench/internal/domain"

// ChangeOp names a persisted-state mutation produced by the engine.
type ChangeOp string

const (
	OpItemCreated  ChangeOp = "item_created"
	OpItemUpdated  ChangeOp = "item_updated"
	OpItemDeleted  ChangeOp = "item_deleted"
	OpPhotoAdded   ChangeOp = "photo_added"
	OpPhotoRemoved ChangeOp = "photo_removed"
	OpPhotoUpdated ChangeOp = "photo_updated"
	OpRoomCreated  ChangeOp = "room_created"
	OpRoomUpdated  ChangeOp = "room_updated"
	OpRoomDeleted  ChangeOp = "room_deleted"
)

// Change is one mutation to persist. Entity fields are snapshots taken at
// emit time, so later local edits cannot leak into an in-flight request.
type Change struct {
	Op      ChangeOp
	ClaimID string

	// Set for item ops; a snapshot for creates/updates, id only for deletes.
	Item *domain.Item
	// Set for room ops.
	Room *domain.Room
	// Set for photo ops (photo_updated carries the snapshot; photo_added and
	// photo_removed carry the link ids below).
	Photo *domain.Photo

	ItemID  string
	PhotoID string
	RoomID  string
}

// ChangeSink receives changes after each successful local mutation. The
// engine calls Apply synchronously; implementations must not block.
type ChangeSink interface {
	Apply(Change)
}
