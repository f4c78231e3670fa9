package handlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/homelead/territory-api/internal/infra/http/middleware"
	"github.com/homelead/territory-api/internal/usecase"
)

// WebhookHandler receives payment events from PayHub. The webhook, not the
// success redirect, is the authoritative completion signal: the redirect can
// be lost to a closed tab.
type WebhookHandler struct {
	Claimer TerritoryClaimerInterface
	Secret  string
}

func NewWebhookHandler(claimer TerritoryClaimerInterface, secret string) *WebhookHandler {
	return &WebhookHandler{Claimer: claimer, Secret: secret}
}

type webhookEvent struct {
	Event   string `json:"event"`
	Session struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		Metadata struct {
			ZipCode  string `json:"zip_code"`
			UserID   string `json:"user_id"`
			LeadType string `json:"lead_type"`
		} `json:"metadata"`
	} `json:"session"`
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unreadable body"})
		return
	}

	if !h.verifySignature(body, r.Header.Get("X-Payhub-Signature")) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid_signature"})
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	if event.Event != "checkout.session.completed" {
		w.WriteHeader(http.StatusOK)
		return
	}

	_, err = h.Claimer.Execute(r.Context(), usecase.ClaimTerritoryInput{
		ZipCode:  event.Session.Metadata.ZipCode,
		UserID:   event.Session.Metadata.UserID,
		LeadType: event.Session.Metadata.LeadType,
		Source:   "webhook",
	})
	if err != nil {
		// A conflict means someone else holds the zip. Retrying the delivery
		// will not change that, so acknowledge and leave it to support.
		if usecase.IsConflictError(err) {
			zap.L().Warn("webhook claim conflict",
				zap.String("zip_code", event.Session.Metadata.ZipCode),
				zap.String("user_id", event.Session.Metadata.UserID),
				zap.String("session_id", event.Session.ID),
			)
			middleware.RecordClaim("conflict")
			w.WriteHeader(http.StatusOK)
			return
		}
		if usecase.IsDomainError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		// Technical failure: signal the provider to redeliver.
		zap.L().Error("webhook claim failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	middleware.RecordClaim("claimed")
	w.WriteHeader(http.StatusOK)
}

// verifySignature checks hex(sha256(body + secret)) against the signature
// header in constant time.
func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" || h.Secret == "" {
		return false
	}

	hasher := sha256.New()
	hasher.Write(body)
	hasher.Write([]byte(h.Secret))
	expected := hex.EncodeToString(hasher.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
