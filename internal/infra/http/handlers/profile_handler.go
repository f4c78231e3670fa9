package handlers

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"time"

	"go.uber.org/zap"

	"github.com/homelead/territory-api/internal/entity"
	"github.com/homelead/territory-api/internal/infra/http/middleware"
	"github.com/homelead/territory-api/internal/usecase"
)

type ProfileHandler struct {
	Bootstrap   *usecase.BootstrapProfileUseCase
	ProfileRepo entity.ProfileRepositoryInterface
	Territories entity.TerritoryRepositoryInterface
}

func NewProfileHandler(
	bootstrap *usecase.BootstrapProfileUseCase,
	profileRepo entity.ProfileRepositoryInterface,
	territories entity.TerritoryRepositoryInterface,
) *ProfileHandler {
	return &ProfileHandler{
		Bootstrap:   bootstrap,
		ProfileRepo: profileRepo,
		Territories: territories,
	}
}

// Get returns the caller's profile, creating the default one on first touch.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Bootstrap.Ensure(r.Context(), middleware.UserID(r.Context()), middleware.UserEmail(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type updateProfileRequest struct {
	FirstName       *string  `json:"first_name"`
	LastName        *string  `json:"last_name"`
	Phone           *string  `json:"phone"`
	SecondaryEmails []string `json:"secondary_emails"`
	SecondaryPhones []string `json:"secondary_phones"`
	NotifyEmail     *bool    `json:"notify_email"`
	NotifySMS       *bool    `json:"notify_sms"`
	LeadType        *string  `json:"lead_type"`
}

// Update applies the fields present in the request to the caller's profile.
// Admin status and the primary email are not editable here.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	profile, err := h.Bootstrap.Ensure(r.Context(), middleware.UserID(r.Context()), middleware.UserEmail(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.SecondaryEmails != nil {
		for _, addr := range req.SecondaryEmails {
			if _, err := mail.ParseAddress(addr); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid secondary email: " + addr})
				return
			}
		}
		profile.SecondaryEmails = req.SecondaryEmails
	}
	if req.SecondaryPhones != nil {
		profile.SecondaryPhones = req.SecondaryPhones
	}
	if req.NotifyEmail != nil {
		profile.NotifyEmail = *req.NotifyEmail
	}
	if req.NotifySMS != nil {
		profile.NotifySMS = *req.NotifySMS
	}
	if req.LeadType != nil {
		leadType, err := entity.ParseLeadType(*req.LeadType)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		profile.LeadType = leadType
	}
	profile.UpdatedAt = time.Now()

	if err := h.ProfileRepo.Update(r.Context(), profile); err != nil {
		zap.L().Error("update profile failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// ListTerritories returns the caller's territories, active and past.
func (h *ProfileHandler) ListTerritories(w http.ResponseWriter, r *http.Request) {
	territories, err := h.Territories.FindByUserID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
		return
	}
	if territories == nil {
		territories = []*entity.Territory{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"territories": territories})
}
