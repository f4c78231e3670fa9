package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/homelead/territory-api/internal/entity"
	"github.com/homelead/territory-api/internal/infra/http/middleware"
	"github.com/homelead/territory-api/internal/usecase"
)

type LeadHandler struct {
	Leads    LeadServiceInterface
	LeadRepo entity.LeadRepositoryInterface
	limiter  *ipLimiter
}

func NewLeadHandler(leads LeadServiceInterface, leadRepo entity.LeadRepositoryInterface, ratePerMinute, burst int) *LeadHandler {
	return &LeadHandler{
		Leads:    leads,
		LeadRepo: leadRepo,
		limiter:  newIPLimiter(rate.Limit(float64(ratePerMinute)/60.0), burst),
	}
}

type createLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	ZipCode string `json:"zip_code"`
	Notes   string `json:"notes"`
}

// Create is the public intake form. Unauthenticated, so it sits behind a
// per-IP rate limit.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
		return
	}

	var req createLeadRequest
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
		Source:  "public_intake",
	})
	if err != nil {
		writeError(w, err)
		return
	}

	// The submitter learns the lead was accepted, not where it went.
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      out.Lead.ID,
		"success": true,
	})
}

// ListMine returns the authenticated user's leads.
func (h *LeadHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	leads, err := h.LeadRepo.FindByOwnerID(r.Context(), userID)
	if err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DB_ERROR", Message: "could not list leads"})
		return
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"leads": leads})
}

type updateLeadRequest struct {
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
	Archived *bool   `json:"archived"`
}

// Update lets the owner (or an admin) change status, notes, or the archived
// flag of a lead.
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	lead, err := h.Leads.Update(r.Context(), usecase.UpdateLeadInput{
		LeadID:   chi.URLParam(r, "id"),
		ActorID:  middleware.UserID(r.Context()),
		Status:   req.Status,
		Notes:    req.Notes,
		Archived: req.Archived,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// AdminUpdate is Update without the ownership check. Mounted behind the
// admin middleware.
func (h *LeadHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	lead, err := h.Leads.Update(r.Context(), usecase.UpdateLeadInput{
		LeadID:     chi.URLParam(r, "id"),
		ActorID:    middleware.UserID(r.Context()),
		ActorAdmin: true,
		Status:     req.Status,
		Notes:      req.Notes,
		Archived:   req.Archived,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// ipLimiter keeps one token bucket per client IP.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newIPLimiter(limit rate.Limit, burst int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = limiter
	}
	return limiter.Allow()
}
