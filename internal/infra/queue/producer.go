package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadAssignedPayload carries everything the notification worker needs so it
// never has to touch the database: the lead summary plus a snapshot of the
// owner's notification preferences at assignment time.
type LeadAssignedPayload struct {
	LeadID      string `json:"lead_id"`
	LeadName    string `json:"lead_name"`
	LeadEmail   string `json:"lead_email,omitempty"`
	LeadPhone   string `json:"lead_phone,omitempty"`
	LeadAddress string `json:"lead_address,omitempty"`
	ZipCode     string `json:"zip_code"`
	Source      string `json:"source"`

	OwnerID     string   `json:"owner_id"`
	OwnerEmails []string `json:"owner_emails"`
	OwnerPhones []string `json:"owner_phones"`
	NotifyEmail bool     `json:"notify_email"`
	NotifySMS   bool     `json:"notify_sms"`
}

type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{Conn: conn, Ch: ch}
}

func (p *Producer) PublishLeadAssigned(ctx context.Context, payload LeadAssignedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish lead-assigned: %w", err)
	}

	return nil
}
