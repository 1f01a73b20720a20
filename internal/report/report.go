// Package report accumulates the ordered render operations for one run
// and flushes them to a Word document. The operation model keeps the
// pipeline independent of the document library: components emit headings,
// paragraphs, italic notes and page breaks; only the writer knows about
// OOXML.
package report

// Kind discriminates render operations.
type Kind int

const (
	KindHeading Kind = iota
	KindParagraph
	KindItalic
	KindPageBreak
)

// Op is a single render operation.
type Op struct {
	Kind  Kind
	Level int // heading level, KindHeading only
	Text  string
}

// Report is the accumulated output of a run. It grows monotonically and is
// written out exactly once at the end.
type Report struct {
	ops []Op
}

// New returns an empty report.
func New() *Report {
	return &Report{}
}

// Heading appends a heading at the given level.
func (r *Report) Heading(level int, text string) {
	r.ops = append(r.ops, Op{Kind: KindHeading, Level: level, Text: text})
}

// Paragraph appends a body paragraph.
func (r *Report) Paragraph(text string) {
	r.ops = append(r.ops, Op{Kind: KindParagraph, Text: text})
}

// Italic appends an italicised note paragraph, used for templated
// extracted text so quoted document content is visually distinct.
func (r *Report) Italic(text string) {
	r.ops = append(r.ops, Op{Kind: KindItalic, Text: text})
}

// PageBreak appends a page break.
func (r *Report) PageBreak() {
	r.ops = append(r.ops, Op{Kind: KindPageBreak})
}

// Ops returns the accumulated operations in emission order.
func (r *Report) Ops() []Op {
	return r.ops
}

// Len returns the number of accumulated operations.
func (r *Report) Len() int {
	return len(r.ops)
}
