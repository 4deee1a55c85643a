package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Notifier delivers push notifications to users. Delivery is best-effort:
// callers fire notifications in the background and a failed send is logged,
// never surfaced to the originating request.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, body string) error
}

// LogNotifier writes notifications to the application log. It stands in for a
// real push provider in development and keeps the call sites honest.
type LogNotifier struct {
	log *logrus.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, userID uuid.UUID, title, body string) error {
	n.log.WithFields(logrus.Fields{
		"user_id": userID,
		"title":   title,
	}).Info(body)
	return nil
}

// Send dispatches a notification in the background, logging any failure.
func Send(notifier Notifier, log *logrus.Logger, userID uuid.UUID, title, body string) {
	go func() {
		if err := notifier.Notify(context.Background(), userID, title, body); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("notification delivery failed")
		}
	}()
}
