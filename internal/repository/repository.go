package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"prep-checkin-go/internal/models"
)

// Repository persists per-message check-in logs and the local
// processed-message record.
type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// IsMessageProcessed reports whether the message was already handled in an
// earlier run.
func (r *Repository) IsMessageProcessed(messageID string) (bool, error) {
	var processed models.ProcessedMessage
	result := r.db.Where("message_id = ?", messageID).First(&processed)
	if result.Error == nil {
		return true, nil
	}
	if result.Error == gorm.ErrRecordNotFound {
		return false, nil
	}
	return false, fmt.Errorf("database error checking processed message: %w", result.Error)
}

// MarkMessageProcessed records the message as handled.
func (r *Repository) MarkMessageProcessed(messageID string) error {
	processed := models.ProcessedMessage{
		MessageID:   messageID,
		ProcessedAt: time.Now(),
	}
	result := r.db.Create(&processed)
	if result.Error != nil {
		return fmt.Errorf("failed to mark message as processed: %w", result.Error)
	}
	return nil
}

// LogCheckin records the outcome of one processed message.
func (r *Repository) LogCheckin(messageID, orderNumber, status string, appended int, errorMsg string) error {
	entry := models.CheckinLog{
		MessageID:   messageID,
		OrderNumber: orderNumber,
		Status:      status,
		Appended:    appended,
		ErrorMsg:    errorMsg,
		CreatedAt:   time.Now(),
	}
	result := r.db.Create(&entry)
	if result.Error != nil {
		return fmt.Errorf("failed to log check-in attempt: %w", result.Error)
	}
	return nil
}

// GetLogs returns all check-in logs, newest first.
func (r *Repository) GetLogs() ([]models.CheckinLog, error) {
	var logs []models.CheckinLog
	result := r.db.Order("created_at desc").Find(&logs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get check-in logs: %w", result.Error)
	}
	return logs, nil
}

// GetLog returns a single check-in log by ID, or nil when not found.
func (r *Repository) GetLog(id uint) (*models.CheckinLog, error) {
	var entry models.CheckinLog
	result := r.db.First(&entry, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get check-in log: %w", result.Error)
	}
	return &entry, nil
}
