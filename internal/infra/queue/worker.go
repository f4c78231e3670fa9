package queue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/homelead/territory-api/internal/infra/notify"
)

// NotifierInterface is implemented by notify.Dispatcher. The worker never
// touches the database; the payload carries the full owner snapshot.
type NotifierInterface interface {
	Dispatch(ctx context.Context, notice notify.LeadNotice, to notify.ProfileSnapshot) notify.Result
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier NotifierInterface
}

func NewWorker(ch *amqp.Channel, notifier NotifierInterface) *Worker {
	return &Worker{Channel: ch, Notifier: notifier}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		zap.L().Fatal("register notification consumer", zap.Error(err))
	}

	forever := make(chan struct{})

	go func() {
		for d := range msgs {
			var payload LeadAssignedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				zap.L().Error("malformed lead-assigned message, dead-lettering", zap.Error(err))
				// Reject without requeue so a poison message cannot wedge the queue.
				d.Nack(false, false)
				continue
			}

			result := w.Notifier.Dispatch(context.Background(), notify.LeadNotice{
				ID:      payload.LeadID,
				Name:    payload.LeadName,
				Email:   payload.LeadEmail,
				Phone:   payload.LeadPhone,
				Address: payload.LeadAddress,
				ZipCode: payload.ZipCode,
				Source:  payload.Source,
			}, notify.ProfileSnapshot{
				UserID:      payload.OwnerID,
				Emails:      payload.OwnerEmails,
				Phones:      payload.OwnerPhones,
				NotifyEmail: payload.NotifyEmail,
				NotifySMS:   payload.NotifySMS,
			})

			// Delivery is best-effort: the assignment already committed, so a
			// failed channel is reported (logs, result) but the message is
			// still acked rather than retried forever.
			zap.L().Info("lead notification processed",
				zap.String("lead_id", payload.LeadID),
				zap.Bool("email", result.Email),
				zap.Bool("sms", result.SMS))
			d.Ack(false)
		}
	}()

	zap.L().Info("notification worker running", zap.String("queue", queueName))
	<-forever
}
