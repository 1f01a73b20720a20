package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultInputDir   = "input_files"
	DefaultWorkDir    = "work"
	DefaultOutputPath = "output_files/search_report.docx"
	DefaultLogLevel   = "info"
	DefaultDPI        = 300
	DefaultOCRTimeout = 5 * time.Minute

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for a report run.
type Config struct {
	// Input/output layout
	InputDir   string // directory searched for the input ZIP
	WorkDir    string // archive expansion and text cache directory
	OutputPath string // generated .docx report
	RulesPath  string // rule schema YAML; empty means built-in defaults

	// OCR tier
	Pdftoppm      string
	Tesseract     string
	TesseractLang string
	DPI           int
	MaxPages      int
	OCRTimeout    time.Duration

	// Behaviour
	KeepText  bool // persist extracted text (.txt cache, combined file, companion zip)
	FromCache bool // replay render from cached text, skipping extraction

	// Application
	Version  string
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		InputDir:      DefaultInputDir,
		WorkDir:       DefaultWorkDir,
		OutputPath:    DefaultOutputPath,
		Pdftoppm:      "pdftoppm",
		Tesseract:     "tesseract",
		TesseractLang: "eng",
		DPI:           DefaultDPI,
		OCRTimeout:    DefaultOCRTimeout,
		KeepText:      true,
		Version:       "1.0.0",
		LogLevel:      DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()

	pflag.Parse()

	populateConfigFromViper(cfg)

	for _, p := range []*string{&cfg.InputDir, &cfg.WorkDir, &cfg.OutputPath} {
		if *p != "" {
			if expanded, err := filepath.Abs(*p); err == nil {
				*p = expanded
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("SEARCHREPORT")
	viper.AutomaticEnv()

	viper.SetDefault("input", cfg.InputDir)
	viper.SetDefault("workdir", cfg.WorkDir)
	viper.SetDefault("output", cfg.OutputPath)
	viper.SetDefault("rules", cfg.RulesPath)
	viper.SetDefault("pdftoppm", cfg.Pdftoppm)
	viper.SetDefault("tesseract", cfg.Tesseract)
	viper.SetDefault("lang", cfg.TesseractLang)
	viper.SetDefault("dpi", cfg.DPI)
	viper.SetDefault("maxpages", cfg.MaxPages)
	viper.SetDefault("ocrtimeout", cfg.OCRTimeout)
	viper.SetDefault("keeptext", cfg.KeepText)
	viper.SetDefault("fromcache", cfg.FromCache)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("input", cfg.InputDir, "Directory searched for the input ZIP archive")
	pflag.String("workdir", cfg.WorkDir, "Working directory for archive expansion and text cache")
	pflag.String("output", cfg.OutputPath, "Path of the generated report document")
	pflag.String("rules", cfg.RulesPath, "Rule schema YAML file (built-in defaults when empty)")
	pflag.String("pdftoppm", cfg.Pdftoppm, "pdftoppm binary for the OCR tier")
	pflag.String("tesseract", cfg.Tesseract, "tesseract binary for the OCR tier")
	pflag.String("lang", cfg.TesseractLang, "OCR language")
	pflag.Int("dpi", cfg.DPI, "Rasterisation DPI for scanned documents")
	pflag.Int("maxpages", cfg.MaxPages, "Maximum pages to OCR per document (0 = no limit)")
	pflag.Duration("ocrtimeout", cfg.OCRTimeout, "Per-document OCR timeout")
	pflag.Bool("keeptext", cfg.KeepText, "Persist extracted text for audit and replay")
	pflag.Bool("fromcache", cfg.FromCache, "Replay the render stage from cached extracted text")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	for _, name := range []string{
		"input", "workdir", "output", "rules", "pdftoppm", "tesseract",
		"lang", "dpi", "maxpages", "ocrtimeout", "keeptext", "fromcache", "loglevel",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.InputDir = viper.GetString("input")
	cfg.WorkDir = viper.GetString("workdir")
	cfg.OutputPath = viper.GetString("output")
	cfg.RulesPath = viper.GetString("rules")
	cfg.Pdftoppm = viper.GetString("pdftoppm")
	cfg.Tesseract = viper.GetString("tesseract")
	cfg.TesseractLang = viper.GetString("lang")
	cfg.DPI = viper.GetInt("dpi")
	cfg.MaxPages = viper.GetInt("maxpages")
	cfg.OCRTimeout = viper.GetDuration("ocrtimeout")
	cfg.KeepText = viper.GetBool("keeptext")
	cfg.FromCache = viper.GetBool("fromcache")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return errors.New("input directory cannot be empty")
	}
	if c.OutputPath == "" {
		return errors.New("output path cannot be empty")
	}
	if c.WorkDir == "" {
		return errors.New("working directory cannot be empty")
	}

	if _, err := os.Stat(c.WorkDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.WorkDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create working directory %s: %w", c.WorkDir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access working directory %s: %w", c.WorkDir, err)
	}

	if c.RulesPath != "" {
		if _, err := os.Stat(c.RulesPath); err != nil {
			return fmt.Errorf("cannot access rule schema %s: %w", c.RulesPath, err)
		}
	}

	if c.DPI <= 0 {
		return errors.New("dpi must be positive")
	}
	if c.MaxPages < 0 {
		return errors.New("maxpages cannot be negative")
	}
	if c.OCRTimeout < 0 {
		return errors.New("ocr timeout cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{InputDir: %s, WorkDir: %s, OutputPath: %s, RulesPath: %s, LogLevel: %s}",
		c.InputDir, c.WorkDir, c.OutputPath, c.RulesPath, c.LogLevel)
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}
