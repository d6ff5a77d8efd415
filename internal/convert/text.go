package convert

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// htmlToText flattens an HTML fragment to plain text with collapsed
// whitespace. Complete documents go through readability first so page
// chrome around a long-form post is dropped.
func htmlToText(raw, pageURL string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "<") {
		return collapse(raw)
	}

	if isDocument(raw) {
		u, _ := url.Parse(pageURL)
		if article, err := readability.FromReader(strings.NewReader(raw), u); err == nil {
			if text := collapse(article.TextContent); text != "" {
				return text
			}
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return collapse(raw)
	}
	doc.Find("script, style").Remove()
	// Line breaks and paragraphs separate words that would otherwise touch.
	doc.Find("br, p, div, li").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return collapse(doc.Text())
}

func isDocument(raw string) bool {
	head := strings.ToLower(raw)
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
