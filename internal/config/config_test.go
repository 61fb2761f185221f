package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
		},
		Database: DatabaseConfig{
			Host:   "localhost",
			User:   "test",
			DBName: "test",
		},
		Gmail: GmailConfig{
			ClientID:     "test",
			ClientSecret: "test",
			RefreshToken: "test",
		},
		Sheets: SheetsConfig{
			SpreadsheetID: "sheet-id",
			SheetName:     "Check-ins",
		},
		Checkin: CheckinConfig{
			MonitoredSender: "notify@prepcenter.example.com",
			SubjectKeyword:  "Inbound",
			HandledLabel:    "checked-in",
		},
		Scheduler: SchedulerConfig{
			IntervalMinutes: 5,
		},
	}
}

func TestConfigValidation(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	invalidConfig := &Config{
		Server: ServerConfig{
			Port: "",
		},
	}
	assert.Error(t, invalidConfig.Validate())
}

func TestConfigValidationRequiresSpreadsheet(t *testing.T) {
	cfg := validConfig()
	cfg.Sheets.SpreadsheetID = ""
	assert.Error(t, cfg.Validate())
}

func TestConfigValidationRequiresSenderFilter(t *testing.T) {
	cfg := validConfig()
	cfg.Checkin.MonitoredSender = ""
	cfg.Checkin.SenderName = ""
	assert.Error(t, cfg.Validate())

	cfg.Checkin.SenderName = "Prep Center"
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidationIMAPCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Gmail = GmailConfig{UseIMAP: true}
	assert.Error(t, cfg.Validate())

	cfg.Gmail.IMAPUser = "user"
	cfg.Gmail.IMAPPassword = "pass"
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	config := DatabaseConfig{
		Host:     "localhost",
		Port:     3306,
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
	}

	dsn := config.GetDSN()
	expected := "testuser:testpass@tcp(localhost:3306)/testdb?charset=utf8mb4&parseTime=True&loc=Local"
	assert.Equal(t, expected, dsn)
}
