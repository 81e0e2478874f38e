package steps

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// stepAssertHTMLElement parses the last response body as HTML and asserts
// that at least one node matches the CSS selector. This covers the
// page-shaped checks a browser-facing suite needs without a driver.
func (h *Harness) stepAssertHTMLElement(selector string) error {
	if h.lastResp == nil {
		return fmt.Errorf("no response recorded; issue a call first")
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(h.lastResp.Body()))
	if err != nil {
		return fmt.Errorf("parse response as HTML: %w", err)
	}
	if doc.Find(selector).Length() == 0 {
		return fmt.Errorf("no element matches selector %q", selector)
	}
	return nil
}
