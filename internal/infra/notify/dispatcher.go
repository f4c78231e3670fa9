package notify

import (
	"context"

	"go.uber.org/zap"
)

type EmailSenderInterface interface {
	SendLeadAlert(to []string, notice LeadNotice) error
}

type SMSSenderInterface interface {
	SendLeadAlert(ctx context.Context, number string, notice LeadNotice) error
}

// Dispatcher fans a lead notice out to every enabled channel. Delivery
// failures are logged and reflected in the Result, never returned as errors:
// a messaging outage must not block lead assignment or payment completion.
type Dispatcher struct {
	Email EmailSenderInterface
	SMS   SMSSenderInterface
}

func NewDispatcher(email EmailSenderInterface, sms SMSSenderInterface) *Dispatcher {
	return &Dispatcher{Email: email, SMS: sms}
}

func (d *Dispatcher) Dispatch(ctx context.Context, notice LeadNotice, to ProfileSnapshot) Result {
	var result Result

	if to.NotifyEmail && d.Email != nil && len(to.Emails) > 0 {
		if err := d.Email.SendLeadAlert(to.Emails, notice); err != nil {
			zap.L().Warn("lead email delivery failed",
				zap.String("lead_id", notice.ID),
				zap.String("owner_id", to.UserID),
				zap.Error(err))
		} else {
			result.Email = true
		}
	}

	if to.NotifySMS && d.SMS != nil && len(to.Phones) > 0 {
		// Per-recipient isolation: one bad number must not block the rest.
		for _, number := range to.Phones {
			if err := d.SMS.SendLeadAlert(ctx, number, notice); err != nil {
				zap.L().Warn("lead sms delivery failed",
					zap.String("lead_id", notice.ID),
					zap.String("owner_id", to.UserID),
					zap.String("number", number),
					zap.Error(err))
				continue
			}
			result.SMS = true
		}
	}

	zap.L().Info("lead notification dispatched",
		zap.String("lead_id", notice.ID),
		zap.String("owner_id", to.UserID),
		zap.Bool("email", result.Email),
		zap.Bool("sms", result.SMS))

	return result
}
