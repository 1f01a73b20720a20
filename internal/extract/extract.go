// Package extract turns source documents into flat text. PDFs go through
// a three-tier fallback chain: the native text layer, a content-stream
// parse, and finally rasterisation plus OCR. Word documents are a single
// structured read. A file that defeats every tier yields an empty
// Document, never a batch-stopping error.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// Method records which extraction tier produced a document's text.
type Method string

const (
	MethodNative Method = "native" // PDF text layer
	MethodStream Method = "stream" // content-stream parse
	MethodOCR    Method = "ocr"    // rasterise + OCR
	MethodDocx   Method = "docx"   // word-processor paragraph read
	MethodCache  Method = "cache"  // replayed from a side-channel text file
	MethodNone   Method = "none"   // every tier came back empty
)

// Document is the flat-text view of one source file. Immutable after
// creation; empty Text means "no content", not an error.
type Document struct {
	Source string
	Text   string
	Method Method
}

// Config holds the external tool settings for the OCR tier.
type Config struct {
	Pdftoppm      string // binary name or absolute path; default "pdftoppm"
	Tesseract     string // binary name or absolute path; default "tesseract"
	TesseractLang string // default "eng"
	DPI           int    // rasterisation DPI, default 300
	MaxPages      int    // 0 = no limit
	OCRTimeout    time.Duration
}

// Extractor runs the tiered extraction chain.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger

	// Tier functions are fields so tests can prove the fallback order
	// without real PDF fixtures.
	nativeFn func(path string) (string, error)
	streamFn func(path string) (string, error)
	ocrFn    func(ctx context.Context, path string) (string, error)
}

// NewExtractor returns an extractor with defaults applied.
func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	e := &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
	e.nativeFn = nativeText
	e.streamFn = streamText
	e.ocrFn = e.ocrText
	return e
}

// Extract converts one source file into a Document, dispatching on file
// extension. Unsupported extensions are an error for the caller to skip;
// extraction failures inside a supported format are not.
func (e *Extractor) Extract(ctx context.Context, path string) (Document, error) {
	doc := Document{Source: filepath.Base(path), Method: MethodNone}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		doc.Text, doc.Method = e.extractPDF(ctx, path)
	case ".docx":
		text, err := docxText(path)
		if err != nil {
			e.logger.Warn("docx extraction failed", "source", doc.Source, "error", err)
			return doc, nil
		}
		doc.Text, doc.Method = text, MethodDocx
	default:
		return doc, fmt.Errorf("unsupported file type: %s", doc.Source)
	}
	return doc, nil
}

// extractPDF walks the fallback chain in order; the first tier yielding
// non-blank text wins and lower tiers are never invoked.
func (e *Extractor) extractPDF(ctx context.Context, path string) (string, Method) {
	source := filepath.Base(path)

	text, err := e.nativeFn(path)
	if err != nil {
		e.logger.Debug("native text layer failed", "source", source, "error", err)
	}
	if strings.TrimSpace(text) != "" {
		return text, MethodNative
	}

	text, err = e.streamFn(path)
	if err != nil {
		e.logger.Debug("content-stream parse failed", "source", source, "error", err)
	}
	if strings.TrimSpace(text) != "" {
		return text, MethodStream
	}

	// OCR cost is unbounded in page count and resolution; cap it so one
	// scanned document cannot stall the whole batch.
	ocrCtx := ctx
	if e.cfg.OCRTimeout > 0 {
		var cancel context.CancelFunc
		ocrCtx, cancel = context.WithTimeout(ctx, e.cfg.OCRTimeout)
		defer cancel()
	}
	text, err = e.ocrFn(ocrCtx, path)
	if err != nil {
		e.logger.Warn("ocr extraction failed", "source", source, "error", err)
		return "", MethodNone
	}
	if strings.TrimSpace(text) == "" {
		return "", MethodNone
	}
	return text, MethodOCR
}
