package fetcher

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
	"prep-checkin-go/internal/models"
)

// GmailAPIFetcher implements EmailFetcher using the Gmail API. Handled
// messages carry a label; the search query excludes it.
type GmailAPIFetcher struct {
	service      *gmail.Service
	userEmail    string
	checkin      *config.CheckinConfig
	maxMessages  int
	handledLabel string
	labelID      string
}

// NewGmailAPIFetcher creates a new Gmail API fetcher
func NewGmailAPIFetcher(gmailCfg *config.GmailConfig, checkinCfg *config.CheckinConfig, maxMessages int) (*GmailAPIFetcher, error) {
	ctx := context.Background()

	oauth2Config := &oauth2.Config{
		ClientID:     gmailCfg.ClientID,
		ClientSecret: gmailCfg.ClientSecret,
		Scopes:       []string{gmail.GmailReadonlyScope, gmail.GmailModifyScope},
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

	return &GmailAPIFetcher{
		service:      service,
		userEmail:    gmailCfg.UserEmail,
		checkin:      checkinCfg,
		maxMessages:  maxMessages,
		handledLabel: checkinCfg.HandledLabel,
	}, nil
}

// buildQuery builds the Gmail search query from the monitored sender, the
// subject keyword, and the handled-label exclusion.
func (f *GmailAPIFetcher) buildQuery() string {
	var parts []string
	if f.checkin.MonitoredSender != "" {
		parts = append(parts, fmt.Sprintf("from:%s", f.checkin.MonitoredSender))
	}
	if f.checkin.SubjectKeyword != "" {
		parts = append(parts, fmt.Sprintf("subject:%s", f.checkin.SubjectKeyword))
	}
	if f.handledLabel != "" {
		parts = append(parts, fmt.Sprintf("-label:%s", f.handledLabel))
	}
	return strings.Join(parts, " ")
}

// FetchNewEmails fetches unhandled notification messages using Gmail API
func (f *GmailAPIFetcher) FetchNewEmails(ctx context.Context) ([]models.EmailMessage, error) {
	call := f.service.Users.Messages.List(f.userEmail).Q(f.buildQuery())
	if f.maxMessages > 0 {
		call = call.MaxResults(int64(f.maxMessages))
	}

	response, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	var emails []models.EmailMessage

	for _, msg := range response.Messages {
		message, err := f.service.Users.Messages.Get(f.userEmail, msg.Id).Format("full").Context(ctx).Do()
		if err != nil {
			logrus.Warnf("Failed to get message %s: %v", msg.Id, err)
			continue
		}

		email, err := f.parseGmailMessage(message)
		if err != nil {
			logrus.Warnf("Failed to parse message %s: %v", msg.Id, err)
			continue
		}

		emails = append(emails, email)
	}

	return emails, nil
}

// MarkHandled applies the handled label to the message so the next query
// skips it. The label is created on first use if it does not exist yet.
func (f *GmailAPIFetcher) MarkHandled(ctx context.Context, messageID string) error {
	labelID, err := f.resolveLabelID(ctx)
	if err != nil {
		return err
	}

	req := &gmail.ModifyMessageRequest{AddLabelIds: []string{labelID}}
	if _, err := f.service.Users.Messages.Modify(f.userEmail, messageID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to label message %s: %w", messageID, err)
	}

	return nil
}

// resolveLabelID looks up the handled label's ID, creating the label when
// missing. The ID is cached after the first lookup.
func (f *GmailAPIFetcher) resolveLabelID(ctx context.Context) (string, error) {
	if f.labelID != "" {
		return f.labelID, nil
	}

	resp, err := f.service.Users.Labels.List(f.userEmail).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to list labels: %w", err)
	}

	for _, label := range resp.Labels {
		if strings.EqualFold(label.Name, f.handledLabel) {
			f.labelID = label.Id
			return f.labelID, nil
		}
	}

	created, err := f.service.Users.Labels.Create(f.userEmail, &gmail.Label{
		Name:                  f.handledLabel,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create label %s: %w", f.handledLabel, err)
	}

	f.labelID = created.Id
	return f.labelID, nil
}

// parseGmailMessage parses a Gmail API message into models.EmailMessage
func (f *GmailAPIFetcher) parseGmailMessage(msg *gmail.Message) (models.EmailMessage, error) {
	email := models.EmailMessage{
		ID:         msg.Id,
		Headers:    make(map[string]string),
		ReceivedAt: time.UnixMilli(msg.InternalDate),
	}

	for _, header := range msg.Payload.Headers {
		email.Headers[header.Name] = header.Value

		switch header.Name {
		case "Subject":
			email.Subject = header.Value
		case "From":
			email.From = header.Value
		case "To":
			email.To = strings.Split(header.Value, ",")
		}
	}

	if err := f.parseGmailBody(msg.Payload, &email); err != nil {
		return email, err
	}

	return email, nil
}

// parseGmailBody recursively parses Gmail message body parts
func (f *GmailAPIFetcher) parseGmailBody(part *gmail.MessagePart, email *models.EmailMessage) error {
	if part.Body != nil && part.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			return fmt.Errorf("failed to decode body data: %w", err)
		}

		content := string(data)

		switch part.MimeType {
		case "text/plain":
			email.Body = content
		case "text/html":
			email.HTMLBody = content
		}
	}

	if part.Parts != nil {
		for _, subPart := range part.Parts {
			if err := f.parseGmailBody(subPart, email); err != nil {
				return err
			}
		}
	}

	return nil
}

// Close closes the Gmail API fetcher
func (f *GmailAPIFetcher) Close() error {
	// Gmail API service doesn't need explicit closing
	return nil
}
