package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// nativeText reads the PDF's embedded text layer page by page. This is
// the fast path for born-digital replies; scanned documents come back
// empty and fall through to the next tier.
func nativeText(path string) (text string, err error) {
	// The pdf package panics on some malformed cross-reference tables;
	// treat a panic as a failed tier, not a crashed batch.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf text layer: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// Keep going; a single unreadable page should not discard the
			// rest of the document.
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(content)
	}
	return builder.String(), nil
}
