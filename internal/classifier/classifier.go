package classifier

import (
	"strings"

	"github.com/sirupsen/logrus"

	"prep-checkin-go/internal/models"
)

// Classifier decides whether an inbound message comes from the monitored
// sender. Rejection is a normal filter outcome, not an error.
type Classifier struct {
	monitoredSender string
	senderName      string
}

// New creates a classifier for the given monitored address and sender-name
// fragment. Either may be empty; matching is case-insensitive substring.
func New(monitoredSender, senderName string) *Classifier {
	return &Classifier{
		monitoredSender: strings.ToLower(strings.TrimSpace(monitoredSender)),
		senderName:      strings.ToLower(strings.TrimSpace(senderName)),
	}
}

// Accept reports whether the message's sender matches the monitored
// address or sender-name fragment.
func (c *Classifier) Accept(msg models.EmailMessage) bool {
	from := strings.ToLower(msg.From)

	if c.monitoredSender != "" && strings.Contains(from, c.monitoredSender) {
		return true
	}
	if c.senderName != "" && strings.Contains(from, c.senderName) {
		return true
	}

	logrus.Debugf("Message %s from %s does not match monitored sender", msg.ID, msg.From)
	return false
}
