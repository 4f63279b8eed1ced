package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JasonMadeSomething/claimbench/internal/domain"
)

func (s *Server) handleMovePhotoToRoom(w http.ResponseWriter, r *http.Request) {
	var req moveToRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	photoID := chi.URLParam(r, "photoID")
	if err := s.bench.MoveRoomAssignment(photoID, req.RoomID); err != nil {
		s.writeEngineError(w, err)
		return
	}
	photo, _ := s.bench.Photo(photoID)
	writeJSON(w, http.StatusOK, photo)
}

func (s *Server) handleSetPhotoPosition(w http.ResponseWriter, r *http.Request) {
	var pos domain.Position
	if err := decodeJSON(r, &pos); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	photoID := chi.URLParam(r, "photoID")
	if err := s.bench.SetPhotoPosition(photoID, pos); err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, photoView{
		Photo:  mustPhoto(s, photoID),
		Canvas: pos,
	})
}

func mustPhoto(s *Server, photoID string) domain.Photo {
	p, _ := s.bench.Photo(photoID)
	return p
}

const maxLabelImageBytes = 20 << 20

// handleGenerateLabels runs the label analyzer over an uploaded image and
// attaches the result to a photo that arrived without pipeline labels.
func (s *Server) handleGenerateLabels(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "no label backend configured"})
		return
	}
	photoID := chi.URLParam(r, "photoID")
	if _, ok := s.bench.Photo(photoID); !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "photo not found"})
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxLabelImageBytes)
	generated, err := s.analyzer.Labels(r.Context(), body, r.Header.Get("Content-Type"))
	if err != nil {
		s.logger.Error("label analysis failed", "photo_id", photoID, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "label analysis failed"})
		return
	}

	if err := s.bench.SetPhotoLabels(photoID, generated); err != nil {
		s.writeEngineError(w, err)
		return
	}
	photo, _ := s.bench.Photo(photoID)
	writeJSON(w, http.StatusOK, photo)
}
