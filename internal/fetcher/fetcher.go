package fetcher

import (
	"context"

	"prep-checkin-go/internal/models"
)

// EmailFetcher retrieves candidate notification messages and marks handled
// ones so they are not scanned again.
type EmailFetcher interface {
	// FetchNewEmails returns a bounded batch of messages matching the
	// monitored sender and subject keyword, excluding already-handled ones.
	FetchNewEmails(ctx context.Context) ([]models.EmailMessage, error)
	// MarkHandled flags the message so later fetches skip it.
	MarkHandled(ctx context.Context, messageID string) error
	Close() error
}
