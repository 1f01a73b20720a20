package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ocrText is the last-resort tier: rasterise every page to PNG with
// pdftoppm, then run tesseract over each image, concatenating the
// per-page results with newlines.
func (e *Extractor) ocrText(ctx context.Context, path string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "searchreport-ocr-*")
	if err != nil {
		return "", err
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			e.logger.Warn("failed to remove ocr temp dir", "dir", tmpDir, "error", err)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", strconv.Itoa(e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return "", fmt.Errorf("pdftoppm: %w: %s", err, strings.TrimSpace(string(errb)))
	}

	// Rendered pages land as prefix-1.png, prefix-2.png, ...
	pages, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(pages)
	if e.cfg.MaxPages > 0 && len(pages) > e.cfg.MaxPages {
		pages = pages[:e.cfg.MaxPages]
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("pdftoppm rendered no pages")
	}

	var b strings.Builder
	for _, img := range pages {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		// tesseract <img> stdout -l <lang>
		out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, img, "stdout", "-l", e.cfg.TesseractLang)
		if err != nil {
			e.logger.Warn("tesseract failed on page", "image", filepath.Base(img),
				"error", err, "stderr", strings.TrimSpace(string(errb)))
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.Write(out)
	}
	return b.String(), nil
}
