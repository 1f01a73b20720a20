package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fumiama/go-docx"
)

// maxHeadingLevel caps heading styles at Word's Heading6; deeper nesting
// reuses the deepest style rather than inventing new ones.
const maxHeadingLevel = 6

// SaveDocx renders the accumulated operations into a .docx file. The
// document is written to a temporary sibling and renamed into place, so a
// failed run never leaves a truncated report behind.
func (r *Report) SaveDocx(path string) error {
	doc := docx.New().WithDefaultTheme()

	for _, op := range r.ops {
		switch op.Kind {
		case KindHeading:
			level := op.Level
			if level < 1 {
				level = 1
			}
			if level > maxHeadingLevel {
				level = maxHeadingLevel
			}
			para := doc.AddParagraph()
			para.Style(fmt.Sprintf("Heading%d", level))
			para.AddText(op.Text)
		case KindParagraph:
			doc.AddParagraph().AddText(op.Text)
		case KindItalic:
			doc.AddParagraph().AddText(op.Text).Italic()
		case KindPageBreak:
			doc.AddParagraph().AddPageBreaks()
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	tmp := path + ".partial"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close report file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalise report: %w", err)
	}
	return nil
}
