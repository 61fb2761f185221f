package extract

import (
	"regexp"

	"github.com/sirupsen/logrus"
)

// shipmentShapedRe matches secondary-code candidates that are really
// shipment numbers (letter P followed only by digits). Such candidates are
// rejected and the chain moves on.
var shipmentShapedRe = regexp.MustCompile(`^P\d+$`)

// BodyExtractor pulls the secondary code and the literal date/time text out
// of a rendered message body. Both extractions degrade to empty strings
// when nothing matches.
type BodyExtractor struct {
	secondary []namedPattern
	dateTime  []namedPattern
}

// NewBodyExtractor builds the body pattern chains.
func NewBodyExtractor() *BodyExtractor {
	return &BodyExtractor{
		secondary: []namedPattern{
			{"own-line", regexp.MustCompile(`(?m)^\s*([A-Za-z0-9]{15,25})\s*$`)},
			{"before-date", regexp.MustCompile(`\b([A-Za-z0-9]{15,25})\b\s+\d{1,2}/\d{1,2}/\d{4}`)},
		},
		dateTime: []namedPattern{
			{"with-offset", regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}, \d{1,2}:\d{2}:\d{2} [AP]M [+-]\d{2}:\d{2}`)},
			{"no-offset", regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4},? \d{1,2}:\d{2}:\d{2} [AP]M`)},
		},
	}
}

// Extract returns the secondary code and date/time text found in the body.
// The HTML body is preferred; the plain-text body is the fallback.
func (e *BodyExtractor) Extract(htmlBody, textBody string) (secondaryCode, dateTimeText string) {
	content := renderedBody(htmlBody, textBody)
	return e.extractSecondary(content), e.extractDateTime(content)
}

func (e *BodyExtractor) extractSecondary(content string) string {
	for _, p := range e.secondary {
		for _, m := range p.re.FindAllStringSubmatch(content, -1) {
			candidate := m[1]
			if shipmentShapedRe.MatchString(candidate) {
				logrus.Debugf("Rejected shipment-shaped secondary code candidate %s", candidate)
				continue
			}
			logrus.Debugf("Secondary code matched pattern %s", p.name)
			return candidate
		}
	}
	return ""
}

func (e *BodyExtractor) extractDateTime(content string) string {
	for _, p := range e.dateTime {
		if m := p.re.FindString(content); m != "" {
			return m
		}
	}
	return ""
}
