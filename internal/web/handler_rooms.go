package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JasonMadeSomething/claimbench/internal/domain"
)

type createRoomRequest struct {
	Kind domain.RoomKind `json:"kind"`
	Name string          `json:"name,omitempty"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	room, err := s.bench.CreateRoom(req.Kind, req.Name)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

type renameRoomRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleRenameRoom(w http.ResponseWriter, r *http.Request) {
	var req renameRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	room, err := s.bench.RenameRoom(chi.URLParam(r, "roomID"), req.Name)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := s.bench.DeleteRoom(chi.URLParam(r, "roomID")); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
