package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.InputDir != DefaultInputDir {
		t.Errorf("Expected default input dir to be '%s', got '%s'", DefaultInputDir, cfg.InputDir)
	}
	if cfg.WorkDir != DefaultWorkDir {
		t.Errorf("Expected default work dir to be '%s', got '%s'", DefaultWorkDir, cfg.WorkDir)
	}
	if cfg.OutputPath != DefaultOutputPath {
		t.Errorf("Expected default output path to be '%s', got '%s'", DefaultOutputPath, cfg.OutputPath)
	}
	if cfg.Pdftoppm != "pdftoppm" {
		t.Errorf("Expected default pdftoppm binary, got '%s'", cfg.Pdftoppm)
	}
	if cfg.Tesseract != "tesseract" {
		t.Errorf("Expected default tesseract binary, got '%s'", cfg.Tesseract)
	}
	if cfg.TesseractLang != "eng" {
		t.Errorf("Expected default OCR language to be 'eng', got '%s'", cfg.TesseractLang)
	}
	if cfg.DPI != DefaultDPI {
		t.Errorf("Expected default DPI to be %d, got %d", DefaultDPI, cfg.DPI)
	}
	if cfg.OCRTimeout != DefaultOCRTimeout {
		t.Errorf("Expected default OCR timeout to be %s, got %s", DefaultOCRTimeout, cfg.OCRTimeout)
	}
	if !cfg.KeepText {
		t.Error("Expected KeepText to default to true")
	}
	if cfg.FromCache {
		t.Error("Expected FromCache to default to false")
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("Expected default log level to be '%s', got '%s'", DefaultLogLevel, cfg.LogLevel)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		t.Helper()
		cfg := DefaultConfig()
		cfg.InputDir = t.TempDir()
		cfg.WorkDir = filepath.Join(t.TempDir(), "work")
		cfg.OutputPath = filepath.Join(t.TempDir(), "report.docx")
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid configuration",
			mutate: func(*Config) {},
		},
		{
			name:    "empty input directory",
			mutate:  func(c *Config) { c.InputDir = "" },
			wantErr: "input directory",
		},
		{
			name:    "empty output path",
			mutate:  func(c *Config) { c.OutputPath = "" },
			wantErr: "output path",
		},
		{
			name:    "empty working directory",
			mutate:  func(c *Config) { c.WorkDir = "" },
			wantErr: "working directory",
		},
		{
			name:    "missing rule schema",
			mutate:  func(c *Config) { c.RulesPath = "/non/existent/rules.yaml" },
			wantErr: "rule schema",
		},
		{
			name:    "zero dpi",
			mutate:  func(c *Config) { c.DPI = 0 },
			wantErr: "dpi",
		},
		{
			name:    "negative max pages",
			mutate:  func(c *Config) { c.MaxPages = -1 },
			wantErr: "maxpages",
		},
		{
			name:    "negative ocr timeout",
			mutate:  func(c *Config) { c.OCRTimeout = -time.Second },
			wantErr: "ocr timeout",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing '%s', got '%s'", tt.wantErr, err.Error())
			}
		})
	}
}

func TestConfigValidateCreatesWorkDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputDir = t.TempDir()
	cfg.WorkDir = filepath.Join(t.TempDir(), "nested", "work")
	cfg.OutputPath = filepath.Join(t.TempDir(), "report.docx")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := os.Stat(cfg.WorkDir); err != nil {
		t.Fatalf("Expected working directory to exist: %v", err)
	}
}

func TestConfigString(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.String()
	if !strings.Contains(s, cfg.InputDir) || !strings.Contains(s, cfg.LogLevel) {
		t.Errorf("String() should include key fields, got '%s'", s)
	}
}

func TestConfigIsDebug(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.IsDebug() {
		t.Error("Info level should not report debug")
	}
	cfg.LogLevel = "debug"
	if !cfg.IsDebug() {
		t.Error("Debug level should report debug")
	}
}
