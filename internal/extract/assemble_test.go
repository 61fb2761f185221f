package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prep-checkin-go/internal/models"
)

func TestAssembleRecordsSharedHeaderFields(t *testing.T) {
	header := models.ShipmentHeader{
		ShipmentNumber: "P7354920059015303168",
		SecondaryCode:  "FBA15DJ8K2LMQ7R9XW4T",
		DateTimeText:   "6/12/2025, 3:04:05 PM +02:00",
	}
	items := []models.LineItem{
		{ItemName: "On Running Cloud X 3", ASIN: "B0BNC66RPR", Quantity: 1},
		{ItemName: "Hoka Clifton 9", ASIN: "B09XKVZ8TN", Quantity: 2},
	}

	records := AssembleRecords(header, items, time.Now())
	require.Len(t, records, 2)

	for _, r := range records {
		assert.Equal(t, "P7354920059015303168", r.OrderNumber)
		assert.Equal(t, "FBA15DJ8K2LMQ7R9XW4T", r.CorrectOrderNumber)
		assert.Equal(t, "6/12/2025, 3:04:05 PM +02:00", r.Timestamp)
	}
	assert.Equal(t, "B0BNC66RPR", records[0].ASIN)
	assert.Equal(t, 2, records[1].Quantity)
}

func TestAssembleRecordsFallbacks(t *testing.T) {
	header := models.ShipmentHeader{ShipmentNumber: "P7354920059015303168"}
	items := []models.LineItem{{ItemName: "On Running Cloud X 3", ASIN: "B0BNC66RPR", Quantity: 1}}
	received := time.Date(2025, 6, 12, 15, 4, 5, 0, time.UTC)

	records := AssembleRecords(header, items, received)
	require.Len(t, records, 1)

	// No secondary code: the shipment number stands in; no date/time text:
	// the received time is rendered instead.
	assert.Equal(t, "P7354920059015303168", records[0].CorrectOrderNumber)
	assert.Equal(t, "6/12/2025, 3:04:05 PM", records[0].Timestamp)
}

func TestAssembleRecordsNoItems(t *testing.T) {
	header := models.ShipmentHeader{ShipmentNumber: "P7354920059015303168"}
	assert.Empty(t, AssembleRecords(header, nil, time.Now()))
}
