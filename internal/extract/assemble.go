package extract

import (
	"time"

	"prep-checkin-go/internal/models"
)

// FallbackTimeLayout renders the message's own received time when the body
// carried no date/time text. It mirrors the shape of the extracted form.
const FallbackTimeLayout = "1/2/2006, 3:04:05 PM"

// AssembleRecords combines one shipment header with its line items into
// check-in records, one per item. An empty item list yields no records; the
// caller drops such messages.
func AssembleRecords(header models.ShipmentHeader, items []models.LineItem, receivedAt time.Time) []models.CheckinRecord {
	if len(items) == 0 {
		return nil
	}

	timestamp := header.DateTimeText
	if timestamp == "" {
		timestamp = receivedAt.Format(FallbackTimeLayout)
	}

	correct := header.SecondaryCode
	if correct == "" {
		correct = header.ShipmentNumber
	}

	records := make([]models.CheckinRecord, 0, len(items))
	for _, item := range items {
		records = append(records, models.CheckinRecord{
			Timestamp:          timestamp,
			OrderNumber:        header.ShipmentNumber,
			ItemName:           item.ItemName,
			ASIN:               item.ASIN,
			Quantity:           item.Quantity,
			CorrectOrderNumber: correct,
		})
	}

	return records
}
