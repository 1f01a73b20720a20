package extract

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes an external tool and returns its stdout and stderr.
// The OCR tier depends on pdftoppm and tesseract through this interface
// so tests can substitute deterministic output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

// SetRunner replaces the exec runner. Test hook.
func (e *Extractor) SetRunner(r Runner) {
	e.runner = r
}
