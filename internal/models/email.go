package models

import "time"

// EmailMessage represents an inbound email message
type EmailMessage struct {
	ID         string            `json:"id"`
	Subject    string            `json:"subject"`
	From       string            `json:"from"`
	To         []string          `json:"to"`
	Body       string            `json:"body"`
	HTMLBody   string            `json:"html_body"`
	Headers    map[string]string `json:"headers"`
	ReceivedAt time.Time         `json:"received_at"`
}
