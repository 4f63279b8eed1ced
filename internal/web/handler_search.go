package web

import (
	"net/http"

	"github.com/JasonMadeSomething/claimbench/internal/search"
)

type searchResponse struct {
	Query   string         `json:"query"`
	Mode    search.Mode    `json:"mode"`
	Results []searchResult `json:"results"`
}

// searchResult augments the match boolean with the mode-resolved rendering
// hints so the UI does not re-implement mode semantics.
type searchResult struct {
	search.Result
	Visible bool `json:"visible"`
	Dimmed  bool `json:"dimmed"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	mode, err := search.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	matcher := search.NewMatcher(query)
	results := search.Evaluate(matcher, s.bench.Photos())

	out := searchResponse{Query: query, Mode: mode, Results: make([]searchResult, 0, len(results))}
	for _, res := range results {
		out.Results = append(out.Results, searchResult{
			Result:  res,
			Visible: res.VisibleUnder(mode),
			Dimmed:  res.DimmedUnder(mode),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
