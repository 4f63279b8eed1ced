package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JasonMadeSomething/claimbench/internal/domain"
	"github.com/JasonMadeSomething/claimbench/internal/search"
)

// handleActivateClaim loads a claim from the backend into the workbench and
// remembers it as the last-active claim.
func (s *Server) handleActivateClaim(w http.ResponseWriter, r *http.Request) {
	claimID := chi.URLParam(r, "claimID")
	if claimID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "claim id required"})
		return
	}

	photos, items, rooms, err := s.loader.LoadClaim(r.Context(), claimID)
	if err != nil {
		s.logger.Error("failed to load claim", "claim_id", claimID, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "failed to load claim"})
		return
	}

	s.bench.ReplaceClaim(claimID, photos, items, rooms)
	if err := s.prefs.SetLastClaimID(r.Context(), claimID); err != nil {
		s.logger.Error("failed to record last claim", "error", err)
	}

	s.writeWorkbench(w, http.StatusOK)
}

// photoView is a photo plus its resolved canvas position.
type photoView struct {
	domain.Photo
	Canvas domain.Position `json:"canvas"`
}

type workbenchView struct {
	ClaimID string          `json:"claim_id"`
	Photos  []photoView     `json:"photos"`
	Items   []domain.Item   `json:"items"`
	Rooms   []domain.Room   `json:"rooms"`
	Results []search.Result `json:"results,omitempty"`
	Mode    search.Mode     `json:"mode,omitempty"`
}

// handleGetWorkbench returns the full workbench state. With ?view=unassigned
// only photos without an owning item are listed; this is a pure read and
// never touches stored positions.
func (s *Server) handleGetWorkbench(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("view") == "unassigned" {
		s.writeWorkbenchPhotos(w, s.bench.UnassignedPhotos())
		return
	}
	s.writeWorkbench(w, http.StatusOK)
}

func (s *Server) writeWorkbench(w http.ResponseWriter, status int) {
	view := workbenchView{
		ClaimID: s.bench.ClaimID(),
		Photos:  s.photoViews(s.bench.Photos()),
		Items:   s.bench.Items(),
		Rooms:   s.bench.Rooms(),
	}
	writeJSON(w, status, view)
}

func (s *Server) writeWorkbenchPhotos(w http.ResponseWriter, photos []domain.Photo) {
	view := workbenchView{
		ClaimID: s.bench.ClaimID(),
		Photos:  s.photoViews(photos),
		Items:   s.bench.Items(),
		Rooms:   s.bench.Rooms(),
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) photoViews(photos []domain.Photo) []photoView {
	out := make([]photoView, 0, len(photos))
	for _, p := range photos {
		out = append(out, photoView{Photo: p, Canvas: s.bench.Positions().Get(p.ID)})
	}
	return out
}
