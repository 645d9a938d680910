package recommend

import (
	"encoding/json"
	"net/http"

	"CableCheck/internal/calc/analysis"
)

type Handler struct {
	Env *analysis.Env
}

func (h *Handler) Prestress(w http.ResponseWriter, r *http.Request) {
	var input analysis.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Prestress(h.Env, input)
	if err != nil {
		analysis.WriteError(w, err)
		return
	}
	analysis.WriteJSON(w, res)
}
