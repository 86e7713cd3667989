// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> extension -> internal package -> chunktype.
//
// Each test runs the real binary in a temporary working directory with HOME
// pointed at a second temporary directory, so global config and the audit
// log never touch the developer's own files.

package cmd

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the pngchunk binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		// Build to a temp location
		tmpDir, err := os.MkdirTemp("", "pngchunk-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "pngchunk"
		if os.PathSeparator == '\\' {
			binaryName = "pngchunk.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string // working directory
	home   string // HOME for global config and the audit log
	binary string
}

// newTestEnv creates a working directory and an isolated home directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home)
	return cmd
}

// run executes pngchunk with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("pngchunk %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes pngchunk and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runJSON executes pngchunk with -o json and decodes stdout into v.
// Returns the process error so callers can assert on the exit status.
func (e *testEnv) runJSON(v any, args ...string) error {
	e.t.Helper()
	var stdout bytes.Buffer
	cmd := e.command(append(args, "-o", "json")...)
	cmd.Stdout = &stdout
	runErr := cmd.Run()
	require.NoError(e.t, json.Unmarshal(stdout.Bytes(), v), "stdout: %s", stdout.String())
	return runErr
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// notContains checks that output does not contain s.
func (e *testEnv) notContains(output, s string) {
	e.t.Helper()
	assert.NotContains(e.t, output, s)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// writePNG encodes a small image into the working directory and returns
// its path relative to it. Paletted images carry a PLTE chunk as well.
func (e *testEnv) writePNG(name string, paletted bool) string {
	e.t.Helper()

	var img image.Image = image.NewGray(image.Rect(0, 0, 4, 4))
	if paletted {
		img = image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White})
	}

	var buf bytes.Buffer
	require.NoError(e.t, png.Encode(&buf, img))
	e.writeFile(name, buf.Bytes())
	return name
}

// writeFile writes raw bytes below the working directory.
func (e *testEnv) writeFile(name string, data []byte) {
	e.t.Helper()
	p := filepath.Join(e.dir, filepath.FromSlash(name))
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(e.t, os.WriteFile(p, data, 0o644))
}
