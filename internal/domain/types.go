package domain

import (
	"time"

	"github.com/google/uuid"
)

// Photo is a single uploaded photograph in the active claim. Labels are
// assigned by the label producer and are read-only inside the workbench.
// ItemID and RoomID are empty strings when unassigned.
type Photo struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	FileName   string    `json:"file_name"`
	Labels     []string  `json:"labels"`
	ItemID     string    `json:"item_id,omitempty"`
	RoomID     string    `json:"room_id,omitempty"`
	Position   Position  `json:"position"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Item groups photos of one damaged belonging. PhotoIDs is ordered and
// duplicate-free. ThumbnailPhotoID is empty iff PhotoIDs is empty, and
// otherwise always one of PhotoIDs.
type Item struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	ReplacementValue float64   `json:"replacement_value"`
	ThumbnailPhotoID string    `json:"thumbnail_photo_id,omitempty"`
	PhotoIDs         []string  `json:"photo_ids"`
	RoomID           string    `json:"room_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Room is a physical-space grouping of items. ItemIDs is ordered and
// duplicate-free, and mirrors each member item's RoomID.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      RoomKind  `json:"kind"`
	ItemIDs   []string  `json:"item_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Position is a photo's canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewID returns a fresh entity id. Ids are client-chosen so optimistic
// creations can be persisted without waiting for the backend.
func NewID() string {
	return uuid.NewString()
}

// HasThumbnail reports whether the item has an elected thumbnail.
func (i *Item) HasThumbnail() bool {
	return i.ThumbnailPhotoID != ""
}

// HasPhoto reports whether photoID is a member of the item.
func (i *Item) HasPhoto(photoID string) bool {
	for _, id := range i.PhotoIDs {
		if id == photoID {
			return true
		}
	}
	return false
}

// HasItem reports whether itemID is a member of the room.
func (r *Room) HasItem(itemID string) bool {
	for _, id := range r.ItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}
