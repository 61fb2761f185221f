package models

// ShipmentHeader holds the shipment-level fields extracted from one message.
// SecondaryCode and DateTimeText are optional; empty string means not found.
type ShipmentHeader struct {
	ShipmentNumber string `json:"shipment_number"`
	SecondaryCode  string `json:"secondary_code"`
	DateTimeText   string `json:"date_time_text"`
}

// LineItem is one product line found in the message body.
type LineItem struct {
	ItemName string `json:"item_name"`
	ASIN     string `json:"asin"`
	Quantity int    `json:"quantity"`
}

// CheckinRecord is one output row: one line item tied to its shipment's
// header fields. Timestamp is the literal date/time text from the body, or
// a formatted rendering of the message's received time when none was found.
type CheckinRecord struct {
	Timestamp          string `json:"timestamp"`
	OrderNumber        string `json:"order_number"`
	ItemName           string `json:"item_name"`
	ASIN               string `json:"asin"`
	Quantity           int    `json:"quantity"`
	CorrectOrderNumber string `json:"correct_order_number"`
}
