package handlers

import (
	"encoding/json"
	"net/http"
	"net/mail"

	"go.uber.org/zap"

	"github.com/homelead/territory-api/internal/entity"
	"github.com/homelead/territory-api/internal/usecase"
)

// WaitlistHandler records interest in zips that are already taken.
type WaitlistHandler struct {
	Repo entity.WaitlistRepositoryInterface
}

func NewWaitlistHandler(repo entity.WaitlistRepositoryInterface) *WaitlistHandler {
	return &WaitlistHandler{Repo: repo}
}

type joinWaitlistRequest struct {
	Email   string `json:"email"`
	ZipCode string `json:"zip_code"`
}

func (h *WaitlistHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req joinWaitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid email"})
		return
	}
	if !usecase.IsValidZipCode(req.ZipCode) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid zip code"})
		return
	}

	entry := entity.NewWaitlistEntry(req.Email, req.ZipCode)
	if err := h.Repo.Create(r.Context(), entry); err != nil {
		zap.L().Error("create waitlist entry failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}
