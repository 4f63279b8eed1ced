// Package canvas tracks where each photo last sat on the workbench canvas.
// Positions are view state only: they survive filter and mode toggles within
// a session but are never persisted to the backend.
package canvas

import (
	"sync"

	"github.com/JasonMadeSomething/claimbench/internal/domain"
)

// Default grid layout for photos that have never been moved. Slots fill
// left-to-right, top-to-bottom in first-seen order.
const (
	gridCols  = 6
	cellWidth = 220.0
	cellHeight = 180.0
	gridMargin = 24.0
)

// Cache maps photo ids to their last-known canvas position. Reads for
// unknown photos fall back to a deterministic grid slot assigned by
// first-seen order, so repeated reads are stable across view toggles.
type Cache struct {
	mu        sync.Mutex
	positions map[string]domain.Position
	slots     map[string]int
	nextSlot  int
}

func NewCache() *Cache {
	return &Cache{
		positions: make(map[string]domain.Position),
		slots:     make(map[string]int),
	}
}

// Get returns the recorded position for photoID, or its grid default if the
// photo was never explicitly moved. The grid slot is pinned on first lookup;
// Get never records a position.
func (c *Cache) Get(photoID string) domain.Position {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.positions[photoID]; ok {
		return p
	}
	return gridSlot(c.slot(photoID))
}

// Recorded returns the explicitly recorded position, if any.
func (c *Cache) Recorded(photoID string) (domain.Position, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.positions[photoID]
	return p, ok
}

// Set records photoID's position. Callers must invoke Set only for photos
// the user actually moved; filtering is a pure view operation.
func (c *Cache) Set(photoID string, p domain.Position) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.positions[photoID] = p
	c.slot(photoID)
}

// Forget drops any recorded position and slot for photoID.
func (c *Cache) Forget(photoID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.positions, photoID)
	delete(c.slots, photoID)
}

// Reset clears everything. Called when the active claim is replaced.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.positions = make(map[string]domain.Position)
	c.slots = make(map[string]int)
	c.nextSlot = 0
}

// slot returns the stable first-seen index for photoID, assigning the next
// free one if needed. Caller holds c.mu.
func (c *Cache) slot(photoID string) int {
	if s, ok := c.slots[photoID]; ok {
		return s
	}
	s := c.nextSlot
	c.slots[photoID] = s
	c.nextSlot++
	return s
}

func gridSlot(index int) domain.Position {
	col := index % gridCols
	row := index / gridCols
	return domain.Position{
		X: gridMargin + float64(col)*cellWidth,
		Y: gridMargin + float64(row)*cellHeight,
	}
}
