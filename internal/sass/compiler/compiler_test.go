package compiler

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bep/godartsass/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuncAdapter(t *testing.T) {
	var got Options
	c := Func(func(_ context.Context, source string, opts Options) (Result, error) {
		got = opts
		return Result{CSS: "/* " + source + " */"}, nil
	})

	res, err := c.Compile(context.Background(), "a.scss", Options{IncludePaths: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, "/* a.scss */", res.CSS)
	assert.Equal(t, []string{"x"}, got.IncludePaths)
}

func TestErrorKeepsCompilerMessage(t *testing.T) {
	cause := errors.New("Undefined variable: $brand")
	err := error(&Error{Source: "a.scss", Err: cause})

	assert.Equal(t, "Undefined variable: $brand", err.Error())
	assert.ErrorIs(t, err, cause)

	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "a.scss", cerr.Source)
}

func TestNew(t *testing.T) {
	c, err := New(BackendEmbedded, "", nil)
	require.NoError(t, err)
	assert.IsType(t, &Embedded{}, c)
	require.NoError(t, Close(c))

	c, err = New(BackendCLI, "", nil)
	require.NoError(t, err)
	assert.IsType(t, &CLI{}, c)
	require.NoError(t, Close(c))

	_, err = New("libsass", "", nil)
	require.Error(t, err)
}

func TestSyntaxOf(t *testing.T) {
	assert.Equal(t, "scss", syntaxOf("styles/app.scss"))
	assert.Equal(t, "sass", syntaxOf("styles/app.SASS"))
	assert.Equal(t, "css", syntaxOf("vendor/reset.css"))
	assert.Equal(t, "scss", syntaxOf("noext"))
}

func TestCLIArgs(t *testing.T) {
	c := NewCLI("")
	assert.Equal(t, DefaultBinary, c.binary)

	args := c.args("main.scss", Options{IncludePaths: []string{"partials", "vendor"}, OutputStyle: OutputStyleCompressed})
	assert.Equal(t, []string{
		"--no-source-map",
		"--style=compressed",
		"--load-path=partials",
		"--load-path=vendor",
		"main.scss",
	}, args)

	assert.Contains(t, c.args("main.scss", Options{}), "--style=expanded")
}

// writeScript creates an executable shell script standing in for sass.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-sass")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestCLICompile_CapturesStdout(t *testing.T) {
	bin := writeScript(t, `for last; do :; done; printf '.from { file: "%s"; }' "$last"`)

	res, err := NewCLI(bin).Compile(context.Background(), "main.scss", Options{})
	require.NoError(t, err)
	assert.Equal(t, `.from { file: "main.scss"; }`, res.CSS)
}

func TestCLICompile_FailureCarriesStderr(t *testing.T) {
	bin := writeScript(t, `echo "Error: expected \"{\"." >&2; exit 65`)

	_, err := NewCLI(bin).Compile(context.Background(), "broken.scss", Options{})
	require.Error(t, err)

	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "broken.scss", cerr.Source)
	assert.Equal(t, `Error: expected "{".`, err.Error())
}

func TestCLICompile_MissingBinary(t *testing.T) {
	_, err := NewCLI(filepath.Join(t.TempDir(), "nope")).Compile(context.Background(), "a.scss", Options{})
	require.Error(t, err)

	var cerr *Error
	assert.False(t, errors.As(err, &cerr))
}

func TestCLICompile_Canceled(t *testing.T) {
	bin := writeScript(t, `sleep 5`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCLI(bin).Compile(ctx, "a.scss", Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestEmbeddedCompile_WithDartSass(t *testing.T) {
	bin, err := exec.LookPath(DefaultBinary)
	if err != nil {
		t.Skip("dart sass not installed")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_vars.scss"), []byte("$brand: #336699;\n"), 0o644))
	src := filepath.Join(dir, "app.scss")
	require.NoError(t, os.WriteFile(src, []byte("@use 'vars';\n.a { color: vars.$brand; }\n"), 0o644))

	e := NewEmbedded(bin, nil)
	t.Cleanup(func() { _ = e.Close() })

	res, err := e.Compile(context.Background(), src, Options{OutputStyle: OutputStyleCompressed})
	if err != nil && strings.Contains(err.Error(), "embedded") {
		t.Skipf("sass on PATH does not support the embedded protocol: %v", err)
	}
	require.NoError(t, err)
	assert.Contains(t, res.CSS, "color:#369")
}

func TestEmbeddedCompile_CanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEmbedded("", nil).Compile(ctx, "a.scss", Options{})
	require.ErrorIs(t, err, context.Canceled)
}

// fakeTranspiler fails with the given errors in order, then succeeds.
type fakeTranspiler struct {
	errs   []error
	closed bool
}

func (f *fakeTranspiler) Execute(godartsass.Args) (godartsass.Result, error) {
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return godartsass.Result{}, err
	}
	return godartsass.Result{CSS: "a{}"}, nil
}

func (f *fakeTranspiler) Close() error {
	f.closed = true
	return nil
}

func TestEmbeddedCompile_RestartsAfterShutdown(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.scss")
	require.NoError(t, os.WriteFile(src, []byte("a{}"), 0o644))

	dead := &fakeTranspiler{errs: []error{godartsass.ErrShutdown}}
	fresh := &fakeTranspiler{}
	started := []transpiler{dead, fresh}
	var starts int

	e := NewEmbedded("", nil)
	e.startFn = func(godartsass.Options) (transpiler, error) {
		next := started[starts]
		starts++
		return next, nil
	}

	_, err := e.Compile(context.Background(), src, Options{})
	require.ErrorIs(t, err, godartsass.ErrShutdown)
	assert.True(t, dead.closed)

	res, err := e.Compile(context.Background(), src, Options{})
	require.NoError(t, err)
	assert.Equal(t, "a{}", res.CSS)
	assert.Equal(t, 2, starts)
}

func TestEmbeddedCompile_KeepsProcessOnCompileError(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.scss")
	require.NoError(t, os.WriteFile(src, []byte("a{"), 0o644))

	tr := &fakeTranspiler{errs: []error{errors.New("expected \"}\".")}}
	var starts int
	e := NewEmbedded("", nil)
	e.startFn = func(godartsass.Options) (transpiler, error) {
		starts++
		return tr, nil
	}

	_, err := e.Compile(context.Background(), src, Options{})
	require.Error(t, err)
	_, err = e.Compile(context.Background(), src, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, starts)
	assert.False(t, tr.closed)
}
