package notify

import (
	"context"                       // Context for mail delivery
	"leave_system/internal/domain"  // Importing domain models
	"leave_system/internal/metrics" // Prometheus counters

	"github.com/sirupsen/logrus" // Logging library
)

// Dispatcher composes and sends decision emails
type Dispatcher struct {
	mailer Mailer
	log    logrus.FieldLogger
}

// NewDispatcher creates a dispatcher. With a nil mailer every notification is skipped.
func NewDispatcher(mailer Mailer, log logrus.FieldLogger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{mailer: mailer, log: log}
}

// NotifyDecision emails the owner of leave. An unconfigured transport is not an error.
func (d *Dispatcher) NotifyDecision(ctx context.Context, leave domain.LeaveWithOwner, status domain.Status, comment *string) error {
	entry := d.log.WithFields(logrus.Fields{"leave_id": leave.ID, "to": leave.Email, "status": status})
	if d.mailer == nil {
		metrics.ObserveNotification(metrics.NotificationSkipped)
		entry.Info("Email notification skipped - SMTP not configured")
		return nil
	}
	msg, err := ComposeDecision(leave, status, comment) // Build text and HTML bodies
	if err != nil {
		metrics.ObserveNotification(metrics.NotificationFailed)
		return err
	}
	// Hand the message to the transport
	if err := d.mailer.Send(ctx, msg); err != nil {
		metrics.ObserveNotification(metrics.NotificationFailed)
		return err
	}
	metrics.ObserveNotification(metrics.NotificationSent)
	entry.Info("Email notification sent")
	return nil
}
