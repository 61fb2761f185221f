package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGmailNotifierBuildsPlainTextMessage(t *testing.T) {
	n := &GmailNotifier{userEmail: "bot@example.com", alertEmail: "ops@example.com"}

	raw := n.buildMessage("Check-in fetch failed", "sheet unreachable")

	assert.Contains(t, raw, "From: bot@example.com\r\n")
	assert.Contains(t, raw, "To: ops@example.com\r\n")
	assert.Contains(t, raw, "Subject: Check-in fetch failed\r\n")
	assert.Contains(t, raw, "\r\n\r\nsheet unreachable\r\n")
}

func TestLogNotifierNeverFails(t *testing.T) {
	assert.NoError(t, LogNotifier{}.NotifyFailure(context.Background(), "subject", "body"))
}
