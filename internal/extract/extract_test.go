package extract

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// tierSpy wires counting stubs into an extractor's tier chain.
type tierSpy struct {
	nativeCalls, streamCalls, ocrCalls int
}

func spyExtractor(t *testing.T, nativeOut, streamOut, ocrOut string) (*Extractor, *tierSpy) {
	t.Helper()
	spy := &tierSpy{}
	e := NewExtractor(Config{}, testLogger())
	e.nativeFn = func(string) (string, error) {
		spy.nativeCalls++
		return nativeOut, nil
	}
	e.streamFn = func(string) (string, error) {
		spy.streamCalls++
		return streamOut, nil
	}
	e.ocrFn = func(context.Context, string) (string, error) {
		spy.ocrCalls++
		return ocrOut, nil
	}
	return e, spy
}

func TestExtract_NativeLayerShortCircuits(t *testing.T) {
	e, spy := spyExtractor(t, "text layer content", "stream content", "ocr content")

	doc, err := e.Extract(context.Background(), "reply.pdf")
	require.NoError(t, err)
	assert.Equal(t, "text layer content", doc.Text)
	assert.Equal(t, MethodNative, doc.Method)
	assert.Equal(t, 1, spy.nativeCalls)
	assert.Zero(t, spy.streamCalls, "lower tiers must not run when a higher tier succeeds")
	assert.Zero(t, spy.ocrCalls)
}

func TestExtract_FallsBackToStreamParse(t *testing.T) {
	e, spy := spyExtractor(t, "   \n\t", "stream content", "ocr content")

	doc, err := e.Extract(context.Background(), "reply.pdf")
	require.NoError(t, err)
	assert.Equal(t, MethodStream, doc.Method, "blank native output falls through")
	assert.Equal(t, "stream content", doc.Text)
	assert.Zero(t, spy.ocrCalls)
}

func TestExtract_FallsBackToOCR(t *testing.T) {
	e, spy := spyExtractor(t, "", "", "ocr content")

	doc, err := e.Extract(context.Background(), "reply.pdf")
	require.NoError(t, err)
	assert.Equal(t, MethodOCR, doc.Method)
	assert.Equal(t, "ocr content", doc.Text)
	assert.Equal(t, 1, spy.nativeCalls)
	assert.Equal(t, 1, spy.streamCalls)
	assert.Equal(t, 1, spy.ocrCalls)
}

func TestExtract_AllTiersEmptyYieldsEmptyDocument(t *testing.T) {
	e, _ := spyExtractor(t, "", "", "")

	doc, err := e.Extract(context.Background(), "reply.pdf")
	require.NoError(t, err, "total extraction failure is not a batch error")
	assert.Empty(t, doc.Text)
	assert.Equal(t, MethodNone, doc.Method)
}

func TestExtract_TierErrorFallsThrough(t *testing.T) {
	e, _ := spyExtractor(t, "", "", "")
	e.nativeFn = func(string) (string, error) { return "", errors.New("xref table corrupt") }
	e.streamFn = func(string) (string, error) { return "recovered text", nil }

	doc, err := e.Extract(context.Background(), "reply.pdf")
	require.NoError(t, err)
	assert.Equal(t, MethodStream, doc.Method)
	assert.Equal(t, "recovered text", doc.Text)
}

func TestExtract_OCRErrorYieldsEmptyDocument(t *testing.T) {
	e, _ := spyExtractor(t, "", "", "")
	e.ocrFn = func(context.Context, string) (string, error) {
		return "", context.DeadlineExceeded
	}

	doc, err := e.Extract(context.Background(), "reply.pdf")
	require.NoError(t, err, "OCR timeout is an extraction failure, not a batch abort")
	assert.Empty(t, doc.Text)
	assert.Equal(t, MethodNone, doc.Method)
}

func TestExtract_Idempotent(t *testing.T) {
	e, _ := spyExtractor(t, "", "", "deterministic ocr output")

	first, err := e.Extract(context.Background(), "reply.pdf")
	require.NoError(t, err)
	second, err := e.Extract(context.Background(), "reply.pdf")
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Method, second.Method)
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	e, spy := spyExtractor(t, "x", "y", "z")

	_, err := e.Extract(context.Background(), filepath.Join("dir", "notes.xlsx"))
	require.Error(t, err)
	assert.Zero(t, spy.nativeCalls)
}

func TestExtract_SourceIsBaseName(t *testing.T) {
	e, _ := spyExtractor(t, "content", "", "")

	doc, err := e.Extract(context.Background(), filepath.Join("work", "nested", "reply.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "reply.pdf", doc.Source)
}

func TestNewExtractor_Defaults(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	assert.Equal(t, "pdftoppm", e.cfg.Pdftoppm)
	assert.Equal(t, "tesseract", e.cfg.Tesseract)
	assert.Equal(t, "eng", e.cfg.TesseractLang)
	assert.Equal(t, 300, e.cfg.DPI)
}
