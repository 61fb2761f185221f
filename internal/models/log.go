package models

import (
	"time"

	"gorm.io/gorm"
)

// Check-in outcome statuses recorded in CheckinLog.
const (
	StatusSuccess   = "success"
	StatusSkipped   = "skipped"
	StatusDuplicate = "duplicate"
	StatusError     = "error"
)

// CheckinLog represents one processed message and its outcome
type CheckinLog struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	MessageID   string         `json:"message_id" gorm:"type:varchar(255);not null;index"`
	OrderNumber string         `json:"order_number" gorm:"type:varchar(255);index"`
	Status      string         `json:"status" gorm:"type:varchar(50);not null"` // success, skipped, duplicate, error
	Appended    int            `json:"appended"`
	ErrorMsg    string         `json:"error_msg" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for CheckinLog
func (CheckinLog) TableName() string {
	return "checkin_logs"
}

// ProcessedMessage represents a handled message to ensure idempotency
type ProcessedMessage struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	MessageID   string         `json:"message_id" gorm:"type:varchar(255);not null;uniqueIndex"`
	ProcessedAt time.Time      `json:"processed_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for ProcessedMessage
func (ProcessedMessage) TableName() string {
	return "processed_messages"
}
