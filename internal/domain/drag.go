package domain

// DragKind discriminates the two things a user can drag on the canvas.
type DragKind int

const (
	DragPhoto DragKind = iota
	DragItem
)

// DragPayload identifies the entity being dragged. It is a closed union:
// construct it only with PhotoDrag or ItemDrag so drop targets never see an
// unknown kind.
type DragPayload struct {
	kind DragKind
	id   string
}

func PhotoDrag(photoID string) DragPayload {
	return DragPayload{kind: DragPhoto, id: photoID}
}

func ItemDrag(itemID string) DragPayload {
	return DragPayload{kind: DragItem, id: itemID}
}

func (p DragPayload) Kind() DragKind { return p.kind }
func (p DragPayload) ID() string     { return p.id }
