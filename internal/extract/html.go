package extract

import (
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// htmlToText renders an HTML body down to plain text: block-level tags
// become newlines, remaining tags are dropped, entities are decoded.
func htmlToText(html string) string {
	text := html

	replacements := []struct {
		from string
		to   string
	}{
		{"<br>", "\n"},
		{"<br/>", "\n"},
		{"<br />", "\n"},
		{"<p>", "\n"},
		{"</p>", "\n"},
		{"<div>", "\n"},
		{"</div>", "\n"},
		{"</tr>", "\n"},
		{"</li>", "\n"},
	}
	for _, r := range replacements {
		text = strings.ReplaceAll(text, r.from, r.to)
	}

	text = tagRe.ReplaceAllString(text, " ")
	text = normalizeEntities(text)

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	return strings.TrimSpace(text)
}

// normalizeEntities rewrites the handful of markup entities that show up in
// notification bodies to their plain characters.
func normalizeEntities(s string) string {
	replacements := []struct {
		from string
		to   string
	}{
		{"&#39;", "'"},
		{"&quot;", "\""},
		{"&amp;", "&"},
		{"&nbsp;", " "},
		{"&lt;", "<"},
		{"&gt;", ">"},
	}
	for _, r := range replacements {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}

// renderedBody picks the HTML body when present and renders it to text,
// otherwise returns the plain-text body as-is.
func renderedBody(htmlBody, textBody string) string {
	if strings.TrimSpace(htmlBody) != "" {
		return htmlToText(htmlBody)
	}
	return textBody
}
