package compiler

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// DefaultBinary is the sass executable looked up on PATH.
const DefaultBinary = "sass"

// CLI compiles by running the sass executable and capturing stdout.
type CLI struct {
	binary string
}

// NewCLI returns a CLI compiler. An empty binary means DefaultBinary.
func NewCLI(binary string) *CLI {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CLI{binary: binary}
}

func (c *CLI) args(source string, opts Options) []string {
	args := []string{
		"--no-source-map",
		"--style=" + string(styleOrDefault(opts.OutputStyle)),
	}
	for _, p := range opts.IncludePaths {
		args = append(args, "--load-path="+p)
	}
	return append(args, source)
}

// Compile runs sass on source. A non-zero exit becomes an *Error carrying
// sass's stderr output.
func (c *CLI) Compile(ctx context.Context, source string, opts Options) (Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, c.args(source, opts)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		var exitErr *exec.ExitError
		if msg := strings.TrimSpace(stderr.String()); msg != "" && errors.As(err, &exitErr) {
			return Result{}, &Error{Source: source, Err: errors.New(msg)}
		}
		return Result{}, err
	}
	return Result{CSS: stdout.String()}, nil
}
