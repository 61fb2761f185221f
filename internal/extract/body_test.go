package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyExtractorSecondaryCodeOwnLine(t *testing.T) {
	e := NewBodyExtractor()

	body := "Shipment received.\nFBA15DJ8K2LMQ7R9XW4T\nThanks."
	code, _ := e.Extract("", body)
	assert.Equal(t, "FBA15DJ8K2LMQ7R9XW4T", code)
}

func TestBodyExtractorSecondaryCodeRejectsShipmentShaped(t *testing.T) {
	e := NewBodyExtractor()

	// Letter P followed only by digits belongs to the shipment number, even
	// when it is positionally a valid candidate.
	body := "P00000000000000000000\nFBA15DJ8K2LMQ7R9XW4T\n"
	code, _ := e.Extract("", body)
	assert.Equal(t, "FBA15DJ8K2LMQ7R9XW4T", code)

	onlyRejected := "P00000000000000000000\n"
	code, _ = e.Extract("", onlyRejected)
	assert.Empty(t, code)
}

func TestBodyExtractorSecondaryCodeBeforeDate(t *testing.T) {
	e := NewBodyExtractor()

	body := "Reference FBA15DJ8K2LMQ7R9XW4T 6/12/2025, 3:04:05 PM done"
	code, _ := e.Extract("", body)
	assert.Equal(t, "FBA15DJ8K2LMQ7R9XW4T", code)
}

func TestBodyExtractorDateTimeWithOffsetFirst(t *testing.T) {
	e := NewBodyExtractor()

	body := "Checked in 6/12/2025, 3:04:05 PM +02:00 at dock"
	_, dt := e.Extract("", body)
	assert.Equal(t, "6/12/2025, 3:04:05 PM +02:00", dt)
}

func TestBodyExtractorDateTimeWithoutOffset(t *testing.T) {
	e := NewBodyExtractor()

	body := "Checked in 6/12/2025 3:04:05 PM at dock"
	_, dt := e.Extract("", body)
	assert.Equal(t, "6/12/2025 3:04:05 PM", dt)
}

func TestBodyExtractorPrefersHTMLBody(t *testing.T) {
	e := NewBodyExtractor()

	html := "<div>FBA15DJ8K2LMQ7R9XW4T</div><div>12/1/2025, 9:00:00 AM -05:00</div>"
	code, dt := e.Extract(html, "nothing useful here")
	assert.Equal(t, "FBA15DJ8K2LMQ7R9XW4T", code)
	assert.Equal(t, "12/1/2025, 9:00:00 AM -05:00", dt)
}

func TestBodyExtractorNothingFound(t *testing.T) {
	e := NewBodyExtractor()

	code, dt := e.Extract("", "short body with no tokens")
	assert.Empty(t, code)
	assert.Empty(t, dt)
}
