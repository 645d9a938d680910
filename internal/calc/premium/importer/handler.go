package importer

import (
	"net/http"

	"CableCheck/internal/calc/analysis"
	"CableCheck/internal/calc/premium/batch"
)

type Handler struct {
	Env *analysis.Env
}

type ImportResult struct {
	Count int `json:"count"`
	Sheet
	batch.Result
}

func (h *Handler) Cable(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	sheet, err := Read(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	out := ImportResult{Sheet: sheet}
	if len(sheet.Items) > 0 {
		res, err := batch.Calculate(r.Context(), h.Env, batch.Input{Items: sheet.Items})
		if err != nil {
			analysis.WriteError(w, err)
			return
		}
		out.Result = res
		out.Count = len(res.Results)
	}
	analysis.WriteJSON(w, out)
}
