package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bloodbank/domain"
	"bloodbank/internal/logger"
	"bloodbank/internal/metrics"
	"bloodbank/internal/utils/mailing"
)

const (
	EventDonationApproved    = "donation_approved"
	EventDonationRejected    = "donation_rejected"
	EventBloodRequestCreated = "blood_request_created"
	EventBloodRequestUpdated = "blood_request_updated"
)

type Message struct {
	Event   string
	To      string
	Subject string
	Body    string
}

// Notifier delivers messages at most once. Delivery errors never reach the caller.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

type mailNotifier struct {
	mailer  mailing.Mailer
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewNotifier(mailer mailing.Mailer, log *logger.Logger, m *metrics.Metrics) Notifier {
	return &mailNotifier{mailer: mailer, log: log, metrics: m}
}

func (n *mailNotifier) Notify(ctx context.Context, msg Message) {
	fields := map[string]any{"event": msg.Event, "to": msg.To}

	if msg.To == "" {
		n.log.WithFields(fields).Warn("notification skipped: no recipient")
		n.metrics.IncNotificationFailed(msg.Event)
		return
	}
	if n.mailer == nil {
		n.log.WithFields(fields).Debug("notification skipped: mailer disabled")
		return
	}
	if ctx.Err() != nil {
		n.log.WithFields(fields).Error(ctx.Err(), "notification dropped")
		n.metrics.IncNotificationFailed(msg.Event)
		return
	}

	if err := n.mailer.SendMail(msg.To, msg.Subject, msg.Body); err != nil {
		n.log.WithFields(fields).Error(err, "failed to send notification")
		n.metrics.IncNotificationFailed(msg.Event)
		return
	}
	n.metrics.IncNotificationSent(msg.Event)
}

// Nop discards every message.
type Nop struct{}

func (Nop) Notify(context.Context, Message) {}

func DonationApproved(to string, donationDate time.Time) Message {
	return Message{
		Event:   EventDonationApproved,
		To:      to,
		Subject: "Donation Approved",
		Body:    fmt.Sprintf("Your donation on %s has been approved.", donationDate.Format(domain.DateLayout)),
	}
}

func DonationRejected(to string, donationDate time.Time, reason string) Message {
	return Message{
		Event:   EventDonationRejected,
		To:      to,
		Subject: "Donation Rejected",
		Body: fmt.Sprintf("Your donation on %s has been rejected. Reason: %s",
			donationDate.Format(domain.DateLayout), reason),
	}
}

func BloodRequestCreated(to, bloodGroup, requesterUsername string) Message {
	return Message{
		Event:   EventBloodRequestCreated,
		To:      to,
		Subject: "New Blood Request",
		Body:    fmt.Sprintf("A new blood request for %s has been submitted by %s.", bloodGroup, requesterUsername),
	}
}

func BloodRequestStatusChanged(to, bloodGroup, status string) Message {
	display := statusDisplay(status)
	return Message{
		Event:   EventBloodRequestUpdated,
		To:      to,
		Subject: "Blood Request " + display,
		Body:    fmt.Sprintf("Your blood request for %s has been %s.", bloodGroup, strings.ToLower(display)),
	}
}

func statusDisplay(status string) string {
	if status == "" {
		return status
	}
	return strings.ToUpper(status[:1]) + status[1:]
}
