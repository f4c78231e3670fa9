package handlers_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/homelead/territory-api/internal/entity"
	"github.com/homelead/territory-api/internal/infra/http/handlers"
	"github.com/homelead/territory-api/internal/usecase"
)

const webhookSecret = "test-webhook-secret"

func signedWebhookRequest(t *testing.T, payload interface{}) (*http.Request, []byte) {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	hash := sha256.Sum256(append(body, []byte(webhookSecret)...))
	req := httptest.NewRequest("POST", "/webhooks/payhub", bytes.NewReader(body))
	req.Header.Set("X-Payhub-Signature", fmt.Sprintf("%x", hash))
	return req, body
}

func completedSessionEvent(zip, user string) map[string]interface{} {
	return map[string]interface{}{
		"event": "checkout.session.completed",
		"session": map[string]interface{}{
			"id":     "sess-123",
			"status": "completed",
			"metadata": map[string]string{
				"zip_code":  zip,
				"user_id":   user,
				"lead_type": "seller",
			},
		},
	}
}

func TestWebhookValidSignatureClaims(t *testing.T) {
	claimer := new(MockClaimer)
	claimer.On("Execute", mock.Anything, mock.MatchedBy(func(in usecase.ClaimTerritoryInput) bool {
		return in.ZipCode == "90210" && in.UserID == "user-1" && in.Source == "webhook"
	})).Return(&usecase.ClaimTerritoryOutput{
		Territory: entity.NewTerritory("90210", "user-1", entity.LeadTypeSeller),
	}, nil)

	handler := handlers.NewWebhookHandler(claimer, webhookSecret)

	req, _ := signedWebhookRequest(t, completedSessionEvent("90210", "user-1"))
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	claimer.AssertExpectations(t)
}

func TestWebhookInvalidSignature(t *testing.T) {
	claimer := new(MockClaimer)
	handler := handlers.NewWebhookHandler(claimer, webhookSecret)

	body, _ := json.Marshal(completedSessionEvent("90210", "user-1"))
	req := httptest.NewRequest("POST", "/webhooks/payhub", bytes.NewReader(body))
	req.Header.Set("X-Payhub-Signature", "deadbeef")
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	claimer.AssertNotCalled(t, "Execute")
}

func TestWebhookMissingSignature(t *testing.T) {
	claimer := new(MockClaimer)
	handler := handlers.NewWebhookHandler(claimer, webhookSecret)

	body, _ := json.Marshal(completedSessionEvent("90210", "user-1"))
	req := httptest.NewRequest("POST", "/webhooks/payhub", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookTamperedBody(t *testing.T) {
	claimer := new(MockClaimer)
	handler := handlers.NewWebhookHandler(claimer, webhookSecret)

	// Sign one body, send another.
	_, signedBody := signedWebhookRequest(t, completedSessionEvent("90210", "user-1"))
	hash := sha256.Sum256(append(signedBody, []byte(webhookSecret)...))

	tampered, _ := json.Marshal(completedSessionEvent("90210", "attacker"))
	req := httptest.NewRequest("POST", "/webhooks/payhub", bytes.NewReader(tampered))
	req.Header.Set("X-Payhub-Signature", fmt.Sprintf("%x", hash))
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	claimer.AssertNotCalled(t, "Execute")
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	claimer := new(MockClaimer)
	handler := handlers.NewWebhookHandler(claimer, webhookSecret)

	req, _ := signedWebhookRequest(t, map[string]interface{}{"event": "checkout.session.expired"})
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	claimer.AssertNotCalled(t, "Execute")
}

func TestWebhookConflictAcknowledged(t *testing.T) {
	// A paid-but-lost race is not retryable; the delivery must be acked so
	// the provider stops redelivering.
	claimer := new(MockClaimer)
	claimer.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &usecase.ConflictError{Code: "TERRITORY_UNAVAILABLE", Message: "taken"})

	handler := handlers.NewWebhookHandler(claimer, webhookSecret)

	req, _ := signedWebhookRequest(t, completedSessionEvent("90210", "user-1"))
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookTechnicalFailureSignalsRetry(t *testing.T) {
	claimer := new(MockClaimer)
	claimer.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: "down"})

	handler := handlers.NewWebhookHandler(claimer, webhookSecret)

	req, _ := signedWebhookRequest(t, completedSessionEvent("90210", "user-1"))
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
