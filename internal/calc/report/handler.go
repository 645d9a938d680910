package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"CableCheck/internal/calc/analysis"
)

type Input struct {
	Meta
	Analysis analysis.Input `json:"analysis"`
}

type Handler struct {
	Env *analysis.Env
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Env.Calculate(input.Analysis)
	if err != nil {
		analysis.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	number, err := Render(&buf, input.Meta, input.Analysis, res, Options{})
	if err != nil {
		if h.Env.Logger != nil {
			h.Env.Logger.Error("report generation failed", zap.Error(err))
		}
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"cable-report-%s.pdf\"", number[:8]))
	w.Header().Set("X-Report-Number", number)
	w.Write(buf.Bytes())
}
