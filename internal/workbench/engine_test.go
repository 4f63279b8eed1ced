package workbench

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JasonMadeSomething/claimbench/internal/domain"
)

// checkConsistency asserts the three structural invariants after a mutation:
// photo/item room mirroring, thumbnail membership, and bidirectional
// room/item membership.
func checkConsistency(t *testing.T, w *Workbench) {
	t.Helper()

	items := make(map[string]domain.Item)
	for _, it := range w.Items() {
		items[it.ID] = it
	}
	rooms := make(map[string]domain.Room)
	for _, r := range w.Rooms() {
		rooms[r.ID] = r
	}

	for _, p := range w.Photos() {
		if p.ItemID != "" {
			it, ok := items[p.ItemID]
			require.True(t, ok, "photo %s references missing item %s", p.ID, p.ItemID)
			assert.Equal(t, it.RoomID, p.RoomID, "photo %s room must mirror owning item", p.ID)
			assert.True(t, it.HasPhoto(p.ID), "item %s must list member photo %s", it.ID, p.ID)
		}
	}

	for _, it := range items {
		if len(it.PhotoIDs) == 0 {
			assert.Empty(t, it.ThumbnailPhotoID, "empty item %s must have no thumbnail", it.ID)
		} else {
			assert.True(t, it.HasPhoto(it.ThumbnailPhotoID), "thumbnail of %s must be a member photo", it.ID)
		}
		seen := make(map[string]bool)
		for _, pid := range it.PhotoIDs {
			assert.False(t, seen[pid], "item %s has duplicate photo %s", it.ID, pid)
			seen[pid] = true
		}
		if it.RoomID != "" {
			r, ok := rooms[it.RoomID]
			require.True(t, ok, "item %s references missing room %s", it.ID, it.RoomID)
			assert.True(t, r.HasItem(it.ID), "room %s must list member item %s", r.ID, it.ID)
		}
	}

	for _, r := range rooms {
		for _, iid := range r.ItemIDs {
			it, ok := items[iid]
			require.True(t, ok, "room %s lists missing item %s", r.ID, iid)
			assert.Equal(t, r.ID, it.RoomID, "item %s must point back at room %s", iid, r.ID)
		}
	}
}

func newTestBench(t *testing.T) *Workbench {
	t.Helper()
	w := New(nil, nil)
	// Deterministic clock so UpdatedAt comparisons are stable.
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	w.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return w
}

func addPhoto(t *testing.T, w *Workbench, labels ...string) domain.Photo {
	t.Helper()
	p := domain.Photo{
		ID:       domain.NewID(),
		URL:      "https://files.example.com/" + domain.NewID() + ".jpg",
		FileName: fmt.Sprintf("IMG_%04d.jpg", len(w.Photos())+1),
		Labels:   labels,
	}
	w.AddPhoto(p)
	return p
}

func TestCreateItemFromPhoto(t *testing.T) {
	w := newTestBench(t)
	p := addPhoto(t, w, "Water Stain")

	it, err := w.CreateItemFromPhoto(p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, it.PhotoIDs)
	assert.Equal(t, p.ID, it.ThumbnailPhotoID)
	assert.Empty(t, it.RoomID)

	got, ok := w.Photo(p.ID)
	require.True(t, ok)
	assert.Equal(t, it.ID, got.ItemID)
	checkConsistency(t, w)
}

func TestCreateItemFromPhoto_InheritsRoom(t *testing.T) {
	w := newTestBench(t)
	room, err := w.CreateRoom(domain.RoomKitchen, "")
	require.NoError(t, err)
	p := addPhoto(t, w, "Cabinet")
	require.NoError(t, w.MoveRoomAssignment(p.ID, room.ID))

	it, err := w.CreateItemFromPhoto(p.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, it.RoomID)

	got, _ := w.Room(room.ID)
	assert.True(t, got.HasItem(it.ID))
	checkConsistency(t, w)
}

func TestCreateItemFromPhoto_Missing(t *testing.T) {
	w := newTestBench(t)
	_, err := w.CreateItemFromPhoto("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateItemFromPhoto_AlreadyAssigned(t *testing.T) {
	w := newTestBench(t)
	p := addPhoto(t, w)
	_, err := w.CreateItemFromPhoto(p.ID)
	require.NoError(t, err)

	_, err = w.CreateItemFromPhoto(p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	checkConsistency(t, w)
}

// The photo-steal scenario: adding an assigned photo to another item removes
// it from the first, emptying that item and clearing its thumbnail.
func TestAddPhotoToItem_StealsFromPreviousItem(t *testing.T) {
	w := newTestBench(t)
	p1 := addPhoto(t, w, "Water Stain")

	i1, err := w.CreateItemFromPhoto(p1.ID)
	require.NoError(t, err)
	i2, err := w.CreateEmptyItem("")
	require.NoError(t, err)
	assert.Empty(t, i2.PhotoIDs)

	require.NoError(t, w.AddPhotoToItem(i2.ID, p1.ID))

	got1, _ := w.Item(i1.ID)
	assert.Empty(t, got1.PhotoIDs)
	assert.Empty(t, got1.ThumbnailPhotoID)

	got2, _ := w.Item(i2.ID)
	assert.Equal(t, []string{p1.ID}, got2.PhotoIDs)
	assert.Equal(t, p1.ID, got2.ThumbnailPhotoID)
	checkConsistency(t, w)
}

func TestAddPhotoToItem_Idempotent(t *testing.T) {
	w := newTestBench(t)
	p := addPhoto(t, w)
	it, err := w.CreateItemFromPhoto(p.ID)
	require.NoError(t, err)

	require.NoError(t, w.AddPhotoToItem(it.ID, p.ID))
	require.NoError(t, w.AddPhotoToItem(it.ID, p.ID))

	got, _ := w.Item(it.ID)
	assert.Equal(t, []string{p.ID}, got.PhotoIDs)
	checkConsistency(t, w)
}

func TestAddPhotoToItem_MirrorsItemRoom(t *testing.T) {
	w := newTestBench(t)
	room, err := w.CreateRoom(domain.RoomBedroom, "")
	require.NoError(t, err)
	it, err := w.CreateEmptyItem(room.ID)
	require.NoError(t, err)
	p := addPhoto(t, w, "Mattress")

	require.NoError(t, w.AddPhotoToItem(it.ID, p.ID))

	got, _ := w.Photo(p.ID)
	assert.Equal(t, room.ID, got.RoomID)
	checkConsistency(t, w)
}

func TestAddPhotoToItem_NotFound(t *testing.T) {
	w := newTestBench(t)
	p := addPhoto(t, w)
	it, err := w.CreateItemFromPhoto(p.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, w.AddPhotoToItem("nope", p.ID), ErrNotFound)
	assert.ErrorIs(t, w.AddPhotoToItem(it.ID, "nope"), ErrNotFound)
	checkConsistency(t, w)
}

func TestRemovePhotoFromItem_ReelectsThumbnail(t *testing.T) {
	w := newTestBench(t)
	p1 := addPhoto(t, w)
	p2 := addPhoto(t, w)
	it, err := w.CreateItemFromPhoto(p1.ID)
	require.NoError(t, err)
	require.NoError(t, w.AddPhotoToItem(it.ID, p2.ID))

	require.NoError(t, w.RemovePhotoFromItem(it.ID, p1.ID))

	got, _ := w.Item(it.ID)
	assert.Equal(t, []string{p2.ID}, got.PhotoIDs)
	assert.Equal(t, p2.ID, got.ThumbnailPhotoID)

	gotPhoto, _ := w.Photo(p1.ID)
	assert.Empty(t, gotPhoto.ItemID)
	checkConsistency(t, w)
}

func TestRemovePhotoFromItem_KeepsPhotoRoom(t *testing.T) {
	w := newTestBench(t)
	room, err := w.CreateRoom(domain.RoomGarage, "")
	require.NoError(t, err)
	p := addPhoto(t, w)
	it, err := w.CreateItemFromPhoto(p.ID)
	require.NoError(t, err)
	require.NoError(t, w.MoveItemToRoom(it.ID, room.ID))

	require.NoError(t, w.RemovePhotoFromItem(it.ID, p.ID))

	got, _ := w.Photo(p.ID)
	assert.Empty(t, got.ItemID)
	assert.Equal(t, room.ID, got.RoomID, "removal from an item must not remove the photo from its room")
	checkConsistency(t, w)
}

// Items stay around when their last photo is removed; deleting an item is
// always an explicit action.
func TestRemoveLastPhotoKeepsItem(t *testing.T) {
	w := newTestBench(t)
	p := addPhoto(t, w)
	it, err := w.CreateItemFromPhoto(p.ID)
	require.NoError(t, err)

	require.NoError(t, w.RemovePhotoFromItem(it.ID, p.ID))

	got, ok := w.Item(it.ID)
	require.True(t, ok, "emptied item must not auto-delete")
	assert.Empty(t, got.PhotoIDs)
	assert.Empty(t, got.ThumbnailPhotoID)
	checkConsistency(t, w)
}

func TestRemovePhotoFromItem_NotAMember(t *testing.T) {
	w := newTestBench(t)
	p := addPhoto(t, w)
	other := addPhoto(t, w)
	it, err := w.CreateItemFromPhoto(p.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, w.RemovePhotoFromItem(it.ID, other.ID), ErrNotFound)
	checkConsistency(t, w)
}

func TestSetThumbnail(t *testing.T) {
	w := newTestBench(t)
	p1 := addPhoto(t, w)
	p2 := addPhoto(t, w)
	it, err := w.CreateItemFromPhoto(p1.ID)
	require.NoError(t, err)
	require.NoError(t, w.AddPhotoToItem(it.ID, p2.ID))

	require.NoError(t, w.SetThumbnail(it.ID, p2.ID))
	got, _ := w.Item(it.ID)
	assert.Equal(t, p2.ID, got.ThumbnailPhotoID)
	checkConsistency(t, w)
}

func TestSetThumbnail_NotAMember(t *testing.T) {
	w := newTestBench(t)
	p := addPhoto(t, w)
	stranger := addPhoto(t, w)
	it, err := w.CreateItemFromPhoto(p.ID)
	require.NoError(t, err)

	err = w.SetThumbnail(it.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	got, _ := w.Item(it.ID)
	assert.Equal(t, p.ID, got.ThumbnailPhotoID, "failed operation must leave state untouched")
	checkConsistency(t, w)
}

func TestMoveItemToRoom_CascadesToPhotos(t *testing.T) {
	w := newTestBench(t)
	room, err := w.CreateRoom(domain.RoomLivingRoom, "")
	require.NoError(t, err)
	p := addPhoto(t, w, "Water Stain")
	it, err := w.CreateItemFromPhoto(p.ID)
	require.NoError(t, err)

	require.NoError(t, w.MoveItemToRoom(it.ID, room.ID))

	gotItem, _ := w.Item(it.ID)
	assert.Equal(t, room.ID, gotItem.RoomID)
	gotPhoto, _ := w.Photo(p.ID)
	assert.Equal(t, room.ID, gotPhoto.RoomID)
	gotRoom, _ := w.Room(room.ID)
	assert.Equal(t, []string{it.ID}, gotRoom.ItemIDs)
	checkConsistency(t, w)
}

func TestMoveItemToRoom_BetweenRooms(t *testing.T) {
	w := newTestBench(t)
	r1, err := w.CreateRoom(domain.RoomKitchen, "")
	require.NoError(t, err)
	r2, err := w.CreateRoom(domain.RoomGarage, "")
	require.NoError(t, err)
	p := addPhoto(t, w)
	it, err := w.CreateItemFromPhoto(p.ID)
	require.NoError(t, err)
	require.NoError(t, w.MoveItemToRoom(it.ID, r1.ID))

	require.NoError(t, w.MoveItemToRoom(it.ID, r2.ID))

	got1, _ := w.Room(r1.ID)
	assert.Empty(t, got1.ItemIDs)
	got2, _ := w.Room(r2.ID)
	assert.Equal(t, []string{it.ID}, got2.ItemIDs)
	checkConsistency(t, w)
}

func TestMoveItemToRoom_BackToWorkbench(t *testing.T) {
	w := newTestBench(t)
	room, err := w.CreateRoom(domain.RoomAttic, "")
	require.NoError(t, err)
	p := addPhoto(t, w)
	it, err := w.CreateItemFromPhoto(p.ID)
	require.NoError(t, err)
	require.NoError(t, w.MoveItemToRoom(it.ID, room.ID))

	require.NoError(t, w.MoveItemToRoom(it.ID, ""))

	gotItem, _ := w.Item(it.ID)
	assert.Empty(t, gotItem.RoomID)
	gotPhoto, _ := w.Photo(p.ID)
	assert.Empty(t, gotPhoto.RoomID)
	gotRoom, _ := w.Room(room.ID)
	assert.Empty(t, gotRoom.ItemIDs)
	checkConsistency(t, w)
}

func TestMoveRoomAssignment_BarePhotoOnly(t *testing.T) {
	w := newTestBench(t)
	room, err := w.CreateRoom(domain.RoomBasement, "")
	require.NoError(t, err)
	bare := addPhoto(t, w)
	owned := addPhoto(t, w)
	_, err = w.CreateItemFromPhoto(owned.ID)
	require.NoError(t, err)

	require.NoError(t, w.MoveRoomAssignment(bare.ID, room.ID))
	got, _ := w.Photo(bare.ID)
	assert.Equal(t, room.ID, got.RoomID)

	err = w.MoveRoomAssignment(owned.ID, room.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	checkConsistency(t, w)
}

func TestDeleteItem_DetachesPhotos(t *testing.T) {
	w := newTestBench(t)
	room, err := w.CreateRoom(domain.RoomOffice, "")
	require.NoError(t, err)
	p1 := addPhoto(t, w)
	p2 := addPhoto(t, w)
	it, err := w.CreateItemFromPhoto(p1.ID)
	require.NoError(t, err)
	require.NoError(t, w.AddPhotoToItem(it.ID, p2.ID))
	require.NoError(t, w.MoveItemToRoom(it.ID, room.ID))

	require.NoError(t, w.DeleteItem(it.ID))

	_, ok := w.Item(it.ID)
	assert.False(t, ok)
	for _, pid := range []string{p1.ID, p2.ID} {
		p, ok := w.Photo(pid)
		require.True(t, ok)
		assert.Empty(t, p.ItemID)
		assert.Equal(t, room.ID, p.RoomID, "detached photos keep their room")
	}
	gotRoom, _ := w.Room(room.ID)
	assert.Empty(t, gotRoom.ItemIDs)
	checkConsistency(t, w)
}

func TestCreateRoom_DuplicateKind(t *testing.T) {
	w := newTestBench(t)
	_, err := w.CreateRoom(domain.RoomKitchen, "")
	require.NoError(t, err)

	_, err = w.CreateRoom(domain.RoomKitchen, "Second Kitchen")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Len(t, w.Rooms(), 1)
}

func TestCreateRoom_UnknownKind(t *testing.T) {
	w := newTestBench(t)
	_, err := w.CreateRoom("spaceship", "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDeleteRoom_RejectsNonEmpty(t *testing.T) {
	w := newTestBench(t)
	room, err := w.CreateRoom(domain.RoomBedroom, "")
	require.NoError(t, err)
	p := addPhoto(t, w)
	it, err := w.CreateItemFromPhoto(p.ID)
	require.NoError(t, err)
	require.NoError(t, w.MoveItemToRoom(it.ID, room.ID))

	err = w.DeleteRoom(room.ID)
	assert.ErrorIs(t, err, ErrPreconditionFailed)

	got, ok := w.Room(room.ID)
	require.True(t, ok, "failed delete must leave the room in place")
	assert.Equal(t, []string{it.ID}, got.ItemIDs)
	checkConsistency(t, w)
}

func TestDeleteRoom_ClearsBarePhotos(t *testing.T) {
	w := newTestBench(t)
	room, err := w.CreateRoom(domain.RoomLaundry, "")
	require.NoError(t, err)
	bare := addPhoto(t, w)
	require.NoError(t, w.MoveRoomAssignment(bare.ID, room.ID))

	require.NoError(t, w.DeleteRoom(room.ID))

	got, _ := w.Photo(bare.ID)
	assert.Empty(t, got.RoomID)
	_, ok := w.Room(room.ID)
	assert.False(t, ok)
	checkConsistency(t, w)
}

func TestRemovePhoto_DetachesFromItem(t *testing.T) {
	w := newTestBench(t)
	p1 := addPhoto(t, w)
	p2 := addPhoto(t, w)
	it, err := w.CreateItemFromPhoto(p1.ID)
	require.NoError(t, err)
	require.NoError(t, w.AddPhotoToItem(it.ID, p2.ID))

	require.NoError(t, w.RemovePhoto(p1.ID))

	_, ok := w.Photo(p1.ID)
	assert.False(t, ok)
	got, _ := w.Item(it.ID)
	assert.Equal(t, []string{p2.ID}, got.PhotoIDs)
	assert.Equal(t, p2.ID, got.ThumbnailPhotoID)
	checkConsistency(t, w)
}

func TestUpdateItemDetails(t *testing.T) {
	w := newTestBench(t)
	it, err := w.CreateEmptyItem("")
	require.NoError(t, err)

	updated, err := w.UpdateItemDetails(it.ID, "Leather Sofa", "three-seater, water damaged", 1899.99)
	require.NoError(t, err)
	assert.Equal(t, "Leather Sofa", updated.Name)
	assert.Equal(t, 1899.99, updated.ReplacementValue)
	assert.True(t, updated.UpdatedAt.After(it.UpdatedAt))
}

// A randomized churn of valid operations must never break consistency.
func TestOperationChurnKeepsInvariants(t *testing.T) {
	w := newTestBench(t)
	rooms := []domain.RoomKind{domain.RoomKitchen, domain.RoomBedroom, domain.RoomGarage}
	var roomIDs []string
	for _, k := range rooms {
		r, err := w.CreateRoom(k, "")
		require.NoError(t, err)
		roomIDs = append(roomIDs, r.ID)
	}

	var photoIDs []string
	for i := 0; i < 12; i++ {
		photoIDs = append(photoIDs, addPhoto(t, w, "Label", fmt.Sprintf("Tag %d", i%4)).ID)
	}

	var itemIDs []string
	for i := 0; i < 4; i++ {
		it, err := w.CreateItemFromPhoto(photoIDs[i])
		require.NoError(t, err)
		itemIDs = append(itemIDs, it.ID)
		checkConsistency(t, w)
	}

	for i, pid := range photoIDs {
		require.NoError(t, w.AddPhotoToItem(itemIDs[i%len(itemIDs)], pid))
		checkConsistency(t, w)
	}
	for i, iid := range itemIDs {
		require.NoError(t, w.MoveItemToRoom(iid, roomIDs[i%len(roomIDs)]))
		checkConsistency(t, w)
	}
	for _, iid := range itemIDs[:2] {
		require.NoError(t, w.MoveItemToRoom(iid, ""))
		checkConsistency(t, w)
	}
	require.NoError(t, w.DeleteItem(itemIDs[0]))
	checkConsistency(t, w)
	for _, pid := range photoIDs[4:8] {
		if p, ok := w.Photo(pid); ok && p.ItemID != "" {
			require.NoError(t, w.RemovePhotoFromItem(p.ItemID, pid))
			checkConsistency(t, w)
		}
	}
}
