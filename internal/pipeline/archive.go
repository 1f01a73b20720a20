package pipeline

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoArchive signals an empty input directory. Callers treat it as a
// clean no-op exit, not a failure.
var ErrNoArchive = errors.New("no zip archive found in input directory")

// FindArchive returns the lexically first .zip file in dir.
func FindArchive(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read input directory: %w", err)
	}
	var zips []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".zip") {
			zips = append(zips, entry.Name())
		}
	}
	if len(zips) == 0 {
		return "", ErrNoArchive
	}
	sort.Strings(zips)
	return filepath.Join(dir, zips[0]), nil
}

// Expand unpacks the archive into destDir. A failure here is fatal for
// the run: without contents there is nothing to process.
func Expand(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", filepath.Base(zipPath), err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return fmt.Errorf("create working directory: %w", err)
	}

	for _, file := range r.File {
		if err := expandEntry(file, destDir); err != nil {
			return fmt.Errorf("expand %s: %w", file.Name, err)
		}
	}
	return nil
}

func expandEntry(file *zip.File, destDir string) error {
	// Reject entries that would escape the working directory.
	dest := filepath.Join(destDir, filepath.Clean(file.Name))
	if !strings.HasPrefix(dest, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal path in archive")
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0o750)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ListDocuments walks dir and returns the paths of every .pdf and .docx
// file in lexical order, so output ordering is reproducible across runs.
// Other extensions are skipped silently.
func ListDocuments(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf", ".docx":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}
