package extract

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Side-channel text outputs. Extracted text is persisted per document so
// a later run can replay the render stage without re-extracting, and so
// the raw text survives for audit.

// CombinedName is the filename of the concatenated text file. It shares
// the cache directory, so the replay path must skip it.
const CombinedName = "combined_text.txt"

// CachePath returns the side-channel text file path for a source name.
func CachePath(dir, source string) string {
	return filepath.Join(dir, source+".txt")
}

// WriteCache persists a document's extracted text next to the working
// directory. Overwrites are idempotent.
func WriteCache(dir string, doc Document) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	if err := os.WriteFile(CachePath(dir, doc.Source), []byte(doc.Text), 0o644); err != nil {
		return fmt.Errorf("write cached text: %w", err)
	}
	return nil
}

// ReadCached loads every cached text file in dir as a Document, in
// lexical order. Used by the replay path.
func ReadCached(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read cache directory: %w", err)
	}
	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") || entry.Name() == CombinedName {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read cached text: %w", err)
		}
		docs = append(docs, Document{
			Source: strings.TrimSuffix(entry.Name(), ".txt"),
			Text:   string(data),
			Method: MethodCache,
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Source < docs[j].Source })
	return docs, nil
}

// WriteCombined concatenates every document's text into a single file,
// separated by source markers.
func WriteCombined(path string, docs []Document) error {
	var b strings.Builder
	for _, doc := range docs {
		fmt.Fprintf(&b, "===== %s =====\n", doc.Source)
		b.WriteString(doc.Text)
		if !strings.HasSuffix(doc.Text, "\n") {
			b.WriteString("\n")
		}
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// WriteArchive bundles every document's extracted text into a companion
// ZIP for audit or reuse.
func WriteArchive(path string, docs []Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create text archive: %w", err)
	}
	zw := zip.NewWriter(f)
	for _, doc := range docs {
		w, err := zw.Create(doc.Source + ".txt")
		if err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("add %s to text archive: %w", doc.Source, err)
		}
		if _, err := w.Write([]byte(doc.Text)); err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("write %s to text archive: %w", doc.Source, err)
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalise text archive: %w", err)
	}
	return f.Close()
}
