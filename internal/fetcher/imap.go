package fetcher

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message"
	"github.com/sirupsen/logrus"

	"prep-checkin-go/internal/config"
	"prep-checkin-go/internal/models"
)

// IMAPFetcher implements EmailFetcher using IMAP. Handled messages carry a
// keyword flag; the search excludes it. Message IDs are mailbox UIDs.
type IMAPFetcher struct {
	client      *client.Client
	checkin     *config.CheckinConfig
	maxMessages int
	handledFlag string
}

// NewIMAPFetcher creates a new IMAP fetcher
func NewIMAPFetcher(gmailCfg *config.GmailConfig, checkinCfg *config.CheckinConfig, maxMessages int) (*IMAPFetcher, error) {
	c, err := client.DialTLS(fmt.Sprintf("%s:%d", gmailCfg.IMAPHost, gmailCfg.IMAPPort), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IMAP server: %w", err)
	}

	if err := c.Login(gmailCfg.IMAPUser, gmailCfg.IMAPPassword); err != nil {
		c.Logout()
		return nil, fmt.Errorf("failed to login to IMAP server: %w", err)
	}

	return &IMAPFetcher{
		client:      c,
		checkin:     checkinCfg,
		maxMessages: maxMessages,
		handledFlag: checkinCfg.HandledLabel,
	}, nil
}

// FetchNewEmails fetches unhandled notification messages using IMAP
func (f *IMAPFetcher) FetchNewEmails(ctx context.Context) ([]models.EmailMessage, error) {
	if _, err := f.client.Select("INBOX", false); err != nil {
		return nil, fmt.Errorf("failed to select INBOX: %w", err)
	}

	criteria := imap.NewSearchCriteria()
	if f.checkin.MonitoredSender != "" {
		criteria.Header.Add("From", f.checkin.MonitoredSender)
	}
	if f.checkin.SubjectKeyword != "" {
		criteria.Header.Add("Subject", f.checkin.SubjectKeyword)
	}
	if f.handledFlag != "" {
		criteria.WithoutFlags = []string{f.handledFlag}
	}

	uids, err := f.client.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}

	if len(uids) == 0 {
		return []models.EmailMessage{}, nil
	}

	if f.maxMessages > 0 && len(uids) > f.maxMessages {
		uids = uids[:f.maxMessages]
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uids...)

	messages := make(chan *imap.Message, len(uids))
	done := make(chan error, 1)

	go func() {
		done <- f.client.UidFetch(seqset, []imap.FetchItem{imap.FetchEnvelope, imap.FetchBody, imap.FetchUid}, messages)
	}()

	var emails []models.EmailMessage

	for msg := range messages {
		email, err := f.parseIMAPMessage(msg)
		if err != nil {
			logrus.Warnf("Failed to parse IMAP message: %v", err)
			continue
		}
		emails = append(emails, email)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	return emails, nil
}

// MarkHandled adds the handled keyword flag to the message
func (f *IMAPFetcher) MarkHandled(ctx context.Context, messageID string) error {
	uid, err := strconv.ParseUint(messageID, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid IMAP message ID %q: %w", messageID, err)
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uint32(uid))

	item := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{f.handledFlag}

	if err := f.client.UidStore(seqset, item, flags, nil); err != nil {
		return fmt.Errorf("failed to flag message %s: %w", messageID, err)
	}

	return nil
}

// parseIMAPMessage parses an IMAP message into models.EmailMessage
func (f *IMAPFetcher) parseIMAPMessage(msg *imap.Message) (models.EmailMessage, error) {
	email := models.EmailMessage{
		ID:      strconv.FormatUint(uint64(msg.Uid), 10),
		Headers: make(map[string]string),
	}

	if msg.Envelope != nil {
		email.Subject = msg.Envelope.Subject
		email.ReceivedAt = msg.Envelope.Date
		if len(msg.Envelope.From) > 0 {
			email.From = msg.Envelope.From[0].Address()
		}
		for _, addr := range msg.Envelope.To {
			email.To = append(email.To, addr.Address())
		}
	}

	if err := f.parseIMAPBody(msg, &email); err != nil {
		return email, err
	}

	return email, nil
}

// parseIMAPBody parses IMAP message body
func (f *IMAPFetcher) parseIMAPBody(msg *imap.Message, email *models.EmailMessage) error {
	if msg.Body == nil {
		return nil
	}

	section := &imap.BodySectionName{}
	r := msg.GetBody(section)
	if r == nil {
		return fmt.Errorf("failed to get message body")
	}

	entity, err := message.Read(r)
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}

	if mr := entity.MultipartReader(); mr != nil {
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to read part: %w", err)
			}

			content, err := io.ReadAll(p.Body)
			if err != nil {
				return fmt.Errorf("failed to read part body: %w", err)
			}

			contentType := p.Header.Get("Content-Type")
			if strings.Contains(contentType, "text/plain") {
				email.Body = string(content)
			} else if strings.Contains(contentType, "text/html") {
				email.HTMLBody = string(content)
			}
		}
	} else {
		content, err := io.ReadAll(entity.Body)
		if err != nil {
			return fmt.Errorf("failed to read message body: %w", err)
		}

		contentType := entity.Header.Get("Content-Type")
		if strings.Contains(contentType, "text/plain") {
			email.Body = string(content)
		} else if strings.Contains(contentType, "text/html") {
			email.HTMLBody = string(content)
		}
	}

	return nil
}

// Close closes the IMAP fetcher
func (f *IMAPFetcher) Close() error {
	return f.client.Logout()
}
