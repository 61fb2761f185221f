package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Notifier is the diagnostics side-channel. It is invoked on unrecoverable
// batch-level pipeline errors, never on ordinary classification rejects or
// dedup skips.
type Notifier interface {
	NotifyFailure(ctx context.Context, subject, body string) error
}

// LogNotifier writes failures to the log only. It is the fallback when no
// alert address is configured.
type LogNotifier struct{}

// NotifyFailure logs the failure at error level.
func (LogNotifier) NotifyFailure(ctx context.Context, subject, body string) error {
	logrus.WithField("alert", subject).Error(body)
	return nil
}
