package extract

import (
	"regexp"
	"strconv"
	"strings"

	"prep-checkin-go/internal/models"
)

var (
	tableRe = regexp.MustCompile(`(?is)<table[^>]*>.*?</table>`)
	rowRe   = regexp.MustCompile(`(?is)<tr[^>]*>.*?</tr>`)
	asinRe  = regexp.MustCompile(`- ([A-Z0-9]{10})\s`)
	intRe   = regexp.MustCompile(`\b\d+\b`)
	wsRe    = regexp.MustCompile(`\s+`)
)

// ItemParser scans a message body for item lines. Bodies with HTML tables
// are parsed row by row; anything else is scanned line by line.
type ItemParser struct{}

// NewItemParser creates a new item parser.
func NewItemParser() *ItemParser {
	return &ItemParser{}
}

// Parse returns every line item found in the body. HTML table rows are
// tried first; if no row yields an item (or there is no table), the body is
// scanned line by line instead.
func (p *ItemParser) Parse(htmlBody, textBody string) []models.LineItem {
	var items []models.LineItem

	if strings.Contains(strings.ToLower(htmlBody), "<table") {
		for _, table := range tableRe.FindAllString(htmlBody, -1) {
			for _, row := range rowRe.FindAllString(table, -1) {
				text := wsRe.ReplaceAllString(tagRe.ReplaceAllString(row, " "), " ")
				text = strings.TrimSpace(text)
				if isHeaderText(text) {
					continue
				}
				if item, ok := parseItemLine(text); ok {
					items = append(items, item)
				}
			}
		}
	}

	if len(items) > 0 {
		return items
	}

	body := textBody
	if strings.TrimSpace(body) == "" {
		body = htmlToText(htmlBody)
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 10 || isHeaderText(line) {
			continue
		}
		if item, ok := parseItemLine(line); ok {
			items = append(items, item)
		}
	}

	return items
}

// isHeaderText reports whether a row or line is a table header rather than
// an item line.
func isHeaderText(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "item") || strings.Contains(lower, "amount")
}

// parseItemLine extracts one line item from a single line of text. The ASIN
// anchors the parse: ten uppercase alphanumerics preceded by "- " and
// followed by whitespace. Quantity is the first integer after the ASIN,
// defaulting to 1; the item name is everything before the " - <ASIN>"
// marker.
func parseItemLine(line string) (models.LineItem, bool) {
	line = normalizeEntities(line)

	loc := asinRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return models.LineItem{}, false
	}
	asin := line[loc[2]:loc[3]]

	quantity := 1
	if q := intRe.FindString(line[loc[1]:]); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 {
			quantity = v
		}
	}

	name := strings.TrimSpace(line[:loc[0]])
	if name == "" {
		return models.LineItem{}, false
	}

	return models.LineItem{ItemName: name, ASIN: asin, Quantity: quantity}, true
}
