package analysis

import (
	"encoding/json"
	"errors"
	"net/http"

	"CableCheck/internal/calc/catalog"
	"CableCheck/internal/calc/material"
	"CableCheck/internal/calc/solver"
)

type Handler struct {
	Env *Env
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.Env.Calculate(input)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, res)
}

type CatalogItem struct {
	catalog.Entry
	AllowableLoadKN float64 `json:"allowable_load_kn"`
}

type CatalogResponse struct {
	SafetyFactor     float64       `json:"safety_factor"`
	ImportanceFactor float64       `json:"importance_factor"`
	Materials        []string      `json:"materials"`
	Items            []CatalogItem `json:"items"`
}

// Listing returns the cable table in ascending diameter order with allowable
// loads under the context derating.
func (e *Env) Listing() CatalogResponse {
	d := e.DeratingFor(Input{})
	resp := CatalogResponse{
		SafetyFactor:     d.SafetyFactor,
		ImportanceFactor: d.ImportanceFactor,
		Materials:        e.Materials.Names(),
	}
	for _, key := range e.Catalog.Sorted() {
		entry, _ := e.Catalog.Lookup(key)
		resp.Items = append(resp.Items, CatalogItem{Entry: entry, AllowableLoadKN: d.Allowable(entry.BreakingLoadKN)})
	}
	return resp
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, h.Env.Listing())
}

// StatusCode maps analysis errors to HTTP statuses.
func StatusCode(err error) int {
	var (
		invalid  *InvalidInputError
		notFound *catalog.DiameterNotFoundError
		conv     *solver.ConvergenceError
	)
	switch {
	case errors.As(err, &invalid), errors.As(err, &notFound), errors.Is(err, material.ErrUnknown):
		return http.StatusBadRequest
	case errors.As(err, &conv):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "Calculation error"
	}
	http.Error(w, msg, code)
}

func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
