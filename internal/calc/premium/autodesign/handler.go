package autodesign

import (
	"encoding/json"
	"errors"
	"net/http"

	"CableCheck/internal/calc/analysis"
)

type Handler struct {
	Env *analysis.Env
}

func (h *Handler) Cable(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Select(r.Context(), h.Env, input)
	if errors.Is(err, ErrNoAdequateCable) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(res)
		return
	}
	if err != nil {
		analysis.WriteError(w, err)
		return
	}
	analysis.WriteJSON(w, res)
}
