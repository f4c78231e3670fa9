package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/homelead/territory-api/internal/entity"
	"github.com/homelead/territory-api/internal/infra/http/middleware"
	"github.com/homelead/territory-api/internal/infra/integration/payhub"
	"github.com/homelead/territory-api/internal/usecase"
)

type CheckoutHandler struct {
	PayHub      CheckoutGatewayInterface
	RequestRepo entity.TerritoryRequestRepositoryInterface
	Checker     AvailabilityCheckerInterface
	Claimer     TerritoryClaimerInterface

	PriceCents int64
	SuccessURL string
	CancelURL  string
}

func NewCheckoutHandler(
	payhubClient CheckoutGatewayInterface,
	requestRepo entity.TerritoryRequestRepositoryInterface,
	checker AvailabilityCheckerInterface,
	claimer TerritoryClaimerInterface,
	priceCents int64,
	successURL, cancelURL string,
) *CheckoutHandler {
	return &CheckoutHandler{
		PayHub:      payhubClient,
		RequestRepo: requestRepo,
		Checker:     checker,
		Claimer:     claimer,
		PriceCents:  priceCents,
		SuccessURL:  successURL,
		CancelURL:   cancelURL,
	}
}

type startCheckoutRequest struct {
	ZipCode  string `json:"zip_code"`
	LeadType string `json:"lead_type"`
}

type startCheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// Start opens a hosted checkout session for a zip. The availability check
// here is advisory: the race is settled at claim time, not here. Losing the
// race after paying surfaces on the success redirect as a conflict.
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req startCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	avail, err := h.Checker.Check(r.Context(), req.ZipCode)
	if err != nil {
		writeError(w, err)
		return
	}
	if avail.Status == usecase.AvailabilityInvalidFormat {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid zip code"})
		return
	}
	if avail.Status == usecase.AvailabilityClaimed {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "territory unavailable"})
		return
	}

	leadType, err := entity.ParseLeadType(req.LeadType)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	session, err := h.PayHub.CreateSession(r.Context(), payhub.CreateSessionInput{
		AmountCents: h.PriceCents,
		Currency:    "usd",
		Description: "Exclusive territory: " + req.ZipCode,
		SuccessURL:  h.SuccessURL,
		CancelURL:   h.CancelURL,
		Metadata: payhub.SessionMetadata{
			ZipCode:  req.ZipCode,
			UserID:   userID,
			LeadType: string(leadType),
		},
	})
	if err != nil {
		zap.L().Error("create checkout session failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "checkout unavailable"})
		return
	}

	request := entity.NewTerritoryRequest(req.ZipCode, userID, leadType, session.ID)
	if err := h.RequestRepo.Create(r.Context(), request); err != nil {
		zap.L().Error("record territory request failed", zap.Error(err))
	}

	writeJSON(w, http.StatusCreated, startCheckoutResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	})
}

// Complete handles the success redirect. It re-reads the session from the
// provider (the redirect itself proves nothing) and claims the territory.
// Safe to hit repeatedly: the claim is idempotent per (zip, user).
func (h *CheckoutHandler) Complete(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "session_id is required"})
		return
	}

	session, err := h.PayHub.GetSession(r.Context(), sessionID)
	if err != nil {
		zap.L().Error("get checkout session failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "checkout unavailable"})
		return
	}
	if session.Status != payhub.SessionStatusCompleted {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "payment not completed"})
		return
	}

	out, err := h.Claimer.Execute(r.Context(), usecase.ClaimTerritoryInput{
		ZipCode:  session.Metadata.ZipCode,
		UserID:   session.Metadata.UserID,
		Email:    middleware.UserEmail(r.Context()),
		LeadType: session.Metadata.LeadType,
		Source:   "payment_success",
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
