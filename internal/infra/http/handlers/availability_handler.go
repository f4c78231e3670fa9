package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type AvailabilityHandler struct {
	Checker AvailabilityCheckerInterface
}

func NewAvailabilityHandler(checker AvailabilityCheckerInterface) *AvailabilityHandler {
	return &AvailabilityHandler{Checker: checker}
}

// Check is the public availability probe. It never reveals who holds a
// claimed zip.
func (h *AvailabilityHandler) Check(w http.ResponseWriter, r *http.Request) {
	zipCode := chi.URLParam(r, "zip")

	result, err := h.Checker.Check(r.Context(), zipCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CheckLedger is the admin probe: it bypasses the cache and includes the
// current owner.
func (h *AvailabilityHandler) CheckLedger(w http.ResponseWriter, r *http.Request) {
	zipCode := chi.URLParam(r, "zip")

	result, err := h.Checker.CheckLedger(r.Context(), zipCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
