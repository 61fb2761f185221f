package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/sirupsen/logrus"

	"prep-checkin-go/internal/config"
)

// GmailNotifier sends failure notifications via the Gmail API.
type GmailNotifier struct {
	service    *gmail.Service
	userEmail  string
	alertEmail string
}

// NewGmailNotifier creates a Gmail-backed failure notifier addressed to the
// configured alert recipient.
func NewGmailNotifier(gmailCfg *config.GmailConfig, alertEmail string) (*GmailNotifier, error) {
	ctx := context.Background()

	oauth2Config := &oauth2.Config{
		ClientID:     gmailCfg.ClientID,
		ClientSecret: gmailCfg.ClientSecret,
		Scopes:       []string{gmail.GmailSendScope},
		Endpoint:     google.Endpoint,
	}

	token := &oauth2.Token{
		RefreshToken: gmailCfg.RefreshToken,
	}

	tokenSource := oauth2Config.TokenSource(ctx, token)

	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &GmailNotifier{
		service:    service,
		userEmail:  gmailCfg.UserEmail,
		alertEmail: alertEmail,
	}, nil
}

// NotifyFailure sends a failure email with retry on rate limiting.
func (n *GmailNotifier) NotifyFailure(ctx context.Context, subject, body string) error {
	raw := n.buildMessage(subject, body)
	encoded := base64.URLEncoding.EncodeToString([]byte(raw))
	message := &gmail.Message{Raw: encoded}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := n.service.Users.Messages.Send(n.userEmail, message).Context(ctx).Do()
		if err == nil {
			logrus.Infof("Sent failure notification to %s", n.alertEmail)
			return nil
		}

		lastErr = err
		logrus.Warnf("Failed to send notification (attempt %d/%d): %v", attempt, 3, err)

		if strings.Contains(err.Error(), "quota") || strings.Contains(err.Error(), "rate") {
			waitTime := time.Duration(attempt*attempt) * time.Second
			logrus.Infof("Rate limited, waiting %v before retry", waitTime)
			time.Sleep(waitTime)
		} else {
			break
		}
	}

	return fmt.Errorf("failed to send notification after 3 attempts: %w", lastErr)
}

// buildMessage assembles a plain-text RFC 2822 message.
func (n *GmailNotifier) buildMessage(subject, body string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("From: %s\r\n", n.userEmail))
	b.WriteString(fmt.Sprintf("To: %s\r\n", n.alertEmail))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 7bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")

	return b.String()
}
