package loader

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// detectErrorPage spots an HTML error page served where CSV or JSON was
// expected and pulls its title so the failure reads like something a human
// can act on.
func detectErrorPage(payload []byte) (title string, isErrPage bool) {
	head := strings.ToLower(string(payload[:min(len(payload), 512)]))
	if !strings.Contains(head, "<html") && !strings.Contains(head, "<!doctype html") {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return "unparseable html response", true
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		title = "html response"
	}
	return title, true
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
