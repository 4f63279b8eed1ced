package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JasonMadeSomething/claimbench/internal/domain"
)

type createItemRequest struct {
	PhotoID string `json:"photo_id,omitempty"`
	RoomID  string `json:"room_id,omitempty"`
}

// handleCreateItem creates an item either from an unassigned photo or empty.
// The response carries the detail-panel auto-open preference so the UI can
// act on it without a second round trip.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	var (
		item domain.Item
		err  error
	)
	if req.PhotoID != "" {
		item, err = s.bench.CreateItemFromPhoto(req.PhotoID)
	} else {
		item, err = s.bench.CreateEmptyItem(req.RoomID)
	}
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	autoOpen, prefErr := s.prefs.AutoOpenDetail(r.Context())
	if prefErr != nil {
		s.logger.Error("failed to read auto-open preference", "error", prefErr)
		autoOpen = true
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"item":             item,
		"auto_open_detail": autoOpen,
	})
}

type updateItemRequest struct {
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	ReplacementValue float64 `json:"replacement_value"`
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if errs := domain.ValidateItemFields(req.Name, req.ReplacementValue); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	item, err := s.bench.UpdateItemDetails(chi.URLParam(r, "itemID"), req.Name, req.Description, req.ReplacementValue)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.bench.DeleteItem(chi.URLParam(r, "itemID")); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddPhotoToItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if err := s.bench.AddPhotoToItem(itemID, chi.URLParam(r, "photoID")); err != nil {
		s.writeEngineError(w, err)
		return
	}
	item, _ := s.bench.Item(itemID)
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleRemovePhotoFromItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if err := s.bench.RemovePhotoFromItem(itemID, chi.URLParam(r, "photoID")); err != nil {
		s.writeEngineError(w, err)
		return
	}
	item, _ := s.bench.Item(itemID)
	writeJSON(w, http.StatusOK, item)
}

type setThumbnailRequest struct {
	PhotoID string `json:"photo_id"`
}

func (s *Server) handleSetThumbnail(w http.ResponseWriter, r *http.Request) {
	var req setThumbnailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	itemID := chi.URLParam(r, "itemID")
	if err := s.bench.SetThumbnail(itemID, req.PhotoID); err != nil {
		s.writeEngineError(w, err)
		return
	}
	item, _ := s.bench.Item(itemID)
	writeJSON(w, http.StatusOK, item)
}

type moveToRoomRequest struct {
	// Empty means back to the main workbench.
	RoomID string `json:"room_id"`
}

func (s *Server) handleMoveItemToRoom(w http.ResponseWriter, r *http.Request) {
	var req moveToRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	itemID := chi.URLParam(r, "itemID")
	if err := s.bench.MoveItemToRoom(itemID, req.RoomID); err != nil {
		s.writeEngineError(w, err)
		return
	}
	item, _ := s.bench.Item(itemID)
	writeJSON(w, http.StatusOK, item)
}
