package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type NotificationKind string

const (
	KindLeadCaptured     NotificationKind = "lead_captured"
	KindBookingConfirmed NotificationKind = "booking_confirmed"
)

// NotificationPayload is the wire format between the api and the mail
// worker. It carries everything a template needs, the worker never goes
// back to the database.
type NotificationPayload struct {
	NotificationID string           `json:"notification_id"`
	Kind           NotificationKind `json:"kind"`
	To             string           `json:"to"`
	PracticeCode   string           `json:"practice_code"`
	PracticeName   string           `json:"practice_name,omitempty"`
	LeadID         int64            `json:"lead_id"`
	LeadName       string           `json:"lead_name,omitempty"`
	LeadEmail      string           `json:"lead_email,omitempty"`
	LeadPhone      string           `json:"lead_phone,omitempty"`
	LeadGoal       string           `json:"lead_goal,omitempty"`
	ActionURL      string           `json:"action_url,omitempty"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishNotification(ctx context.Context, payload NotificationPayload) error {
	if payload.NotificationID == "" {
		payload.NotificationID = uuid.New().String()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    payload.NotificationID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)

	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	return nil
}
