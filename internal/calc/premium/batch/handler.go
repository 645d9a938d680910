package batch

import (
	"encoding/json"
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
	res, err := Calculate(r.Context(), h.Env, input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	analysis.WriteJSON(w, res)
}
