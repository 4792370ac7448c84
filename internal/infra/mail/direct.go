package mail

import (
	"context"
	"fmt"

	"github.com/fysiofunnel/api/internal/infra/queue"
)

// DirectNotifier sends notification mail inline, for installs that run
// without a broker (AMQP_URL unset). Callers already dispatch from a
// detached goroutine, so blocking on smtp here is fine.
type DirectNotifier struct {
	Sender *EmailSender
}

func NewDirectNotifier(sender *EmailSender) *DirectNotifier {
	return &DirectNotifier{Sender: sender}
}

func (n *DirectNotifier) PublishNotification(ctx context.Context, payload queue.NotificationPayload) error {
	switch payload.Kind {
	case queue.KindLeadCaptured:
		return n.Sender.SendLeadNotification(payload)
	case queue.KindBookingConfirmed:
		return n.Sender.SendBookingConfirmation(payload)
	}
	return fmt.Errorf("unknown notification kind: %s", payload.Kind)
}
