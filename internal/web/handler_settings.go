package web

import "net/http"

type settingsResponse struct {
	AutoOpenDetail bool   `json:"auto_open_detail"`
	LastClaimID    string `json:"last_claim_id,omitempty"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	autoOpen, err := s.prefs.AutoOpenDetail(r.Context())
	if err != nil {
		s.logger.Error("failed to read settings", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read settings"})
		return
	}
	lastClaim, err := s.prefs.LastClaimID(r.Context())
	if err != nil {
		s.logger.Error("failed to read settings", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read settings"})
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{AutoOpenDetail: autoOpen, LastClaimID: lastClaim})
}

type updateSettingsRequest struct {
	AutoOpenDetail *bool `json:"auto_open_detail,omitempty"`
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.AutoOpenDetail != nil {
		if err := s.prefs.SetAutoOpenDetail(r.Context(), *req.AutoOpenDetail); err != nil {
			s.logger.Error("failed to update settings", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update settings"})
			return
		}
	}
	s.handleGetSettings(w, r)
}
