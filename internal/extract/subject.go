package extract

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// namedPattern is one strategy in an ordered fallback chain. The first
// pattern whose capture group yields a non-empty trimmed string wins.
type namedPattern struct {
	name string
	re   *regexp.Regexp
}

func (c namedPattern) capture(s string) string {
	m := c.re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// SubjectExtractor pulls the shipment number out of a message subject,
// falling back to body text when the subject yields nothing.
type SubjectExtractor struct {
	subject []namedPattern
	body    []namedPattern
}

// NewSubjectExtractor builds the ordered pattern chains anchored on the
// given subject keyword (e.g. "Inbound"). Chains run most-specific first.
func NewSubjectExtractor(keyword string) *SubjectExtractor {
	k := regexp.QuoteMeta(keyword)
	return &SubjectExtractor{
		subject: []namedPattern{
			{"processed-marker", regexp.MustCompile(k + `\s+([A-Za-z0-9][A-Za-z0-9 \-]*?)\s+has been processed`)},
			// Every token of a spaced identifier carries a digit, so the
			// capture stops before trailing subject words.
			{"spaced-identifier", regexp.MustCompile(k + `\s+([A-Za-z]*\d[A-Za-z0-9\-]*(?: [A-Za-z]*\d[A-Za-z0-9\-]*)*)`)},
			{"contiguous-token", regexp.MustCompile(k + `\s+([A-Za-z0-9]+)`)},
			{"digits-only", regexp.MustCompile(k + `\s+(\d+)`)},
			{"letters-then-digits", regexp.MustCompile(k + `\s+([A-Za-z]+\d+)`)},
		},
		body: []namedPattern{
			{"shipment-named", regexp.MustCompile(`shipment named\s+([^.]+)`)},
			{"named", regexp.MustCompile(`\bnamed\s+([^.]+)`)},
		},
	}
}

// Extract returns the shipment number found in the subject, or in the
// rendered body when no subject pattern matches. An empty result means
// every pattern failed; the caller drops such messages.
func (e *SubjectExtractor) Extract(subject, htmlBody, textBody string) string {
	for _, p := range e.subject {
		if got := p.capture(subject); got != "" {
			logrus.Debugf("Shipment number matched subject pattern %s", p.name)
			return got
		}
	}

	bodyText := renderedBody(htmlBody, textBody)
	for _, p := range e.body {
		if got := p.capture(bodyText); got != "" {
			logrus.Debugf("Shipment number matched body pattern %s", p.name)
			return got
		}
	}

	return ""
}
