package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/homelead/territory-api/internal/entity"
	"github.com/homelead/territory-api/internal/infra/http/middleware"
	"github.com/homelead/territory-api/internal/usecase"
)

// AdminHandler groups the back-office operations. Everything here mounts
// behind the admin middleware.
type AdminHandler struct {
	Claimer       TerritoryClaimerInterface
	Leads         LeadServiceInterface
	Deleter       UserDeleterInterface
	TerritoryRepo entity.TerritoryRepositoryInterface
	Cache         usecase.AvailabilityCacheInterface
}

func NewAdminHandler(
	claimer TerritoryClaimerInterface,
	leads LeadServiceInterface,
	deleter UserDeleterInterface,
	territoryRepo entity.TerritoryRepositoryInterface,
	cache usecase.AvailabilityCacheInterface,
) *AdminHandler {
	return &AdminHandler{
		Claimer:       claimer,
		Leads:         leads,
		Deleter:       deleter,
		TerritoryRepo: territoryRepo,
		Cache:         cache,
	}
}

type grantTerritoryRequest struct {
	ZipCode  string `json:"zip_code"`
	UserID   string `json:"user_id"`
	LeadType string `json:"lead_type"`
}

// GrantTerritory assigns a zip to a user without payment. Same claim path as
// checkout, so exclusivity and idempotency hold.
func (h *AdminHandler) GrantTerritory(w http.ResponseWriter, r *http.Request) {
	var req grantTerritoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	out, err := h.Claimer.Execute(r.Context(), usecase.ClaimTerritoryInput{
		ZipCode:  req.ZipCode,
		UserID:   req.UserID,
		LeadType: req.LeadType,
		Source:   "admin",
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordClaim("claimed")
	writeJSON(w, http.StatusCreated, out)
}

// ReleaseTerritory deactivates a territory, making its zip claimable again.
// The row stays for history; only the active flag flips.
func (h *AdminHandler) ReleaseTerritory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	territory, err := h.TerritoryRepo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrTerritoryNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "territory not found"})
			return
		}
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
		return
	}

	if err := h.TerritoryRepo.Deactivate(r.Context(), id); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
		return
	}

	if err := h.Cache.SetAvailable(r.Context(), territory.ZipCode); err != nil {
		zap.L().Warn("cache update after release failed",
			zap.String("zip_code", territory.ZipCode), zap.Error(err))
	}

	w.WriteHeader(http.StatusNoContent)
}

type adminCreateLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	ZipCode string `json:"zip_code"`
	Notes   string `json:"notes"`
}

// CreateLead injects a lead through the same routing pipeline as public
// intake, marked with the admin source.
func (h *AdminHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req adminCreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	out, err := h.Leads.Execute(r.Context(), usecase.CreateLeadInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		ZipCode: req.ZipCode,
		Notes:   req.Notes,
		Source:  "admin",
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadRouted(out.Assigned)
	writeJSON(w, http.StatusCreated, out)
}

// ReassignLead re-runs routing for a lead, picking up ownership changes made
// since it was created.
func (h *AdminHandler) ReassignLead(w http.ResponseWriter, r *http.Request) {
	out, err := h.Leads.Reassign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadRouted(out.Assigned)
	writeJSON(w, http.StatusOK, out)
}

// DeleteUser removes everything the service holds for a user, then the
// account itself.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Deleter.Execute(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
