package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectExtractorProcessedMarkerWinsFirst(t *testing.T) {
	e := NewSubjectExtractor("Inbound")

	got := e.Extract("Inbound P7354920059015303168 has been processed.", "", "")
	assert.Equal(t, "P7354920059015303168", got)
}

func TestSubjectExtractorFallbackChain(t *testing.T) {
	e := NewSubjectExtractor("Inbound")

	tests := []struct {
		name    string
		subject string
		want    string
	}{
		{"spaced identifier", "Inbound FBA15 DJ8-K2LM received", "FBA15 DJ8-K2LM"},
		{"spaced identifier stops at prose", "Inbound FBA15 DJ8-K2LM received at dock", "FBA15 DJ8-K2LM"},
		{"contiguous token", "Inbound P7354920059015303168", "P7354920059015303168"},
		{"digits only", "Inbound 00123456", "00123456"},
		{"letters then digits", "Inbound FBA123", "FBA123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.subject, "", ""))
		})
	}
}

func TestSubjectExtractorBodyFallback(t *testing.T) {
	e := NewSubjectExtractor("Inbound")

	got := e.Extract("Your shipment update", "", "We received the shipment named P7354920059015303168. Thanks.")
	assert.Equal(t, "P7354920059015303168", got)

	got = e.Extract("Your shipment update", "", "The one named FBA15DJ8K2LM. More text.")
	assert.Equal(t, "FBA15DJ8K2LM", got)
}

func TestSubjectExtractorBodyFallbackPrefersHTML(t *testing.T) {
	e := NewSubjectExtractor("Inbound")

	html := "<p>We processed the shipment named P7354920059015303168.</p>"
	got := e.Extract("no keyword here", html, "")
	assert.Equal(t, "P7354920059015303168", got)
}

func TestSubjectExtractorNoMatch(t *testing.T) {
	e := NewSubjectExtractor("Inbound")

	assert.Empty(t, e.Extract("Completely unrelated subject", "", "and an unrelated body"))
	assert.Empty(t, e.Extract("", "", ""))
}
