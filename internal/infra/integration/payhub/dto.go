package payhub

// CreateSessionInput carries everything the hosted checkout page needs. The
// metadata round-trips through the provider and comes back on the webhook, so
// the claim can be completed without any server-side session state.
type CreateSessionInput struct {
	AmountCents int64
	Currency    string
	Description string
	SuccessURL  string
	CancelURL   string
	Metadata    SessionMetadata
}

type SessionMetadata struct {
	ZipCode  string `json:"zip_code"`
	UserID   string `json:"user_id"`
	LeadType string `json:"lead_type"`
}

type Session struct {
	ID       string
	URL      string
	Status   string
	Metadata SessionMetadata
}

const (
	SessionStatusOpen      = "open"
	SessionStatusCompleted = "completed"
	SessionStatusExpired   = "expired"
)

type createSessionRequest struct {
	AmountCents int64           `json:"amount_cents"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	SuccessURL  string          `json:"success_url"`
	CancelURL   string          `json:"cancel_url"`
	Metadata    SessionMetadata `json:"metadata"`
}

type sessionResponse struct {
	ID       string          `json:"id"`
	URL      string          `json:"url"`
	Status   string          `json:"status"`
	Metadata SessionMetadata `json:"metadata"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
