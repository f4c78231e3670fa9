package notify

// LeadNotice is the lead summary delivered to a territory owner.
type LeadNotice struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string
	ZipCode string
	Source  string
}

// ProfileSnapshot is the owner's contact channels and preferences captured at
// assignment time.
type ProfileSnapshot struct {
	UserID      string
	Emails      []string
	Phones      []string
	NotifyEmail bool
	NotifySMS   bool
}

// Result reports per-channel delivery. It is informational only; no caller
// treats a false as fatal.
type Result struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}
