package queue

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// LeadMailer is the contract the worker delivers through. Implemented by
// the smtp sender in infra/mail.
type LeadMailer interface {
	SendLeadNotification(payload NotificationPayload) error
	SendBookingConfirmation(payload NotificationPayload) error
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  LeadMailer
}

func NewWorker(ch *amqp.Channel, mailer LeadMailer) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
	}
}

// Start consumes the notification queue until the channel closes. Runs in
// its own goroutine, acks are manual.
func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ failed to register rabbitmq consumer")
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload NotificationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Error().Err(err).Msg("❌ worker received malformed notification, sending to dlq")
				// Malformed message. Reject without requeue so it cannot
				// wedge the queue.
				d.Nack(false, false)
				continue
			}

			log.Info().
				Str("notification_id", payload.NotificationID).
				Str("kind", string(payload.Kind)).
				Int64("lead_id", payload.LeadID).
				Msg("📥 worker picked up notification")

			if err := w.processMessage(payload); err != nil {
				log.Error().Err(err).Str("notification_id", payload.NotificationID).Msg("❌ notification delivery failed, sending to dlq")
				d.Nack(false, false)
			} else {
				log.Info().Str("notification_id", payload.NotificationID).Msg("✅ notification delivered")
				d.Ack(false)
			}
		}
	}()

	log.Info().Str("queue", queueName).Msg("worker waiting for notifications")
	<-forever
}

func (w *Worker) processMessage(payload NotificationPayload) error {
	switch payload.Kind {
	case KindLeadCaptured:
		return w.Mailer.SendLeadNotification(payload)

	case KindBookingConfirmed:
		return w.Mailer.SendBookingConfirmation(payload)

	default:
		// Unknown kind, probably a newer producer. Ack it away rather than
		// poisoning the queue.
		log.Warn().Str("kind", string(payload.Kind)).Msg("⚠️ unknown notification kind, dropping")
		return nil
	}
}
