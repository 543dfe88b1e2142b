package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI runs the command with a config file that does not exist, so every
// test starts from the default configuration.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cfg := filepath.Join(t.TempDir(), "config.toml")
	code := run(append([]string{"-config", cfg, "-color", "never"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunStrings(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
	}{
		{"identical", []string{"-s", "abc", "abc"}, exitIdentical, "Identical.\n"},
		{"insert", []string{"-s", "quickfox", "quickbrownfox"}, exitDifferent, "quick++[brown]fox\n"},
		{"delete", []string{"-s", "quickbrownfox", "quickfox"}, exitDifferent, "quick--[brown]fox\n"},
		{"replace", []string{"-s", "abc", "axc"}, exitDifferent, "a~~[x]c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			assert.Equal(t, tt.code, code, stderr)
			assert.Equal(t, tt.stdout, stdout)
		})
	}
}

func TestRunSummary(t *testing.T) {
	code, stdout, _ := runCLI(t, "-summary", "-s", "quickfox", "quickbrownfox")
	assert.Equal(t, exitDifferent, code)
	assert.Contains(t, stdout, "=== Summary ===")
	assert.Contains(t, stdout, "1 inserted, 0 deleted, 0 replaced (edit distance 5)")
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "old.txt")
	target := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(source, []byte("hello world"), 0644))
	require.NoError(t, os.WriteFile(target, []byte("hello there world"), 0644))

	code, stdout, stderr := runCLI(t, source, target)
	require.Equal(t, exitDifferent, code, stderr)
	assert.Contains(t, stdout, "=== bytediff: "+source+" (")
	assert.Contains(t, stdout, "hello ++[there ]world\n")
}

func TestRunBinary(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "old.bin")
	target := filepath.Join(dir, "new.bin")
	require.NoError(t, os.WriteFile(source, []byte{0x0a, 0xff}, 0644))
	require.NoError(t, os.WriteFile(target, []byte{0x0a, 0xfe}, 0644))

	code, stdout, _ := runCLI(t, "-b", source, target)
	assert.Equal(t, exitDifferent, code)
	assert.Contains(t, stdout, `\a ~~[\fe ]`)

	code, stdout, _ = runCLI(t, "-b", "-radix", "10", source, target)
	assert.Equal(t, exitDifferent, code)
	assert.Contains(t, stdout, `\10 ~~[\254 ]`)
}

func TestRunVerboseOnly(t *testing.T) {
	code, stdout, _ := runCLI(t, "-v", "-only", "delete", "-s", "abcdef", "xbcdeg")
	assert.Equal(t, exitDifferent, code)
	assert.Empty(t, stdout)

	code, stdout, _ = runCLI(t, "-v", "-only", "replace", "-s", "abcdef", "abXdef")
	assert.Equal(t, exitDifferent, code)
	assert.Contains(t, stdout, "~~[X]")
}

func TestRunUTF16(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-utf16", "-s", "a😉", "a🨉")
	require.Equal(t, exitDifferent, code, stderr)
	assert.Equal(t, "a~~[🨉]\n", stdout)
}

func TestRunUTF16Files(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "old.txt")
	target := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(source, []byte{'a', 0, 'b', 0}, 0644))
	require.NoError(t, os.WriteFile(target, []byte{'a', 0, 'c', 0}, 0644))

	code, stdout, stderr := runCLI(t, "-utf16", "-charset", "utf-16le", source, target)
	require.Equal(t, exitDifferent, code, stderr)
	assert.Contains(t, stdout, "a~~[c]\n")

	// a lone high surrogate is not text
	require.NoError(t, os.WriteFile(target, []byte{'a', 0, 0x3d, 0xd8}, 0644))
	code, _, stderr = runCLI(t, "-utf16", "-charset", "utf-16le", source, target)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "failed to decode target")
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"missing args", []string{"-s", "only-one"}, "Usage: bytediff"},
		{"missing file", []string{"/nonexistent/a", "/nonexistent/b"}, "failed to read source"},
		{"bad kind", []string{"-only", "bogus", "-s", "a", "b"}, "unknown span kind"},
		{"bad charset", []string{"-charset", "no-such-charset", "-s", "a", "b"}, "failed to decode source"},
		{"edit cap", []string{"-max-d", "1", "-s", "abc", "xyz"}, "edit distance limit exceeded"},
		{"bad flag", []string{"-nope"}, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			assert.Equal(t, exitError, code)
			assert.Contains(t, stderr, tt.stderr)
		})
	}
}

func TestWantColor(t *testing.T) {
	var buf bytes.Buffer

	on, err := wantColor("always", &buf)
	require.NoError(t, err)
	assert.True(t, on)

	on, err = wantColor("auto", &buf)
	require.NoError(t, err)
	assert.False(t, on, "a buffer is never a terminal")

	_, err = wantColor("sometimes", &buf)
	assert.Error(t, err)
}

func TestRunColorAlways(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := filepath.Join(t.TempDir(), "config.toml")
	code := run([]string{"-config", cfg, "-color", "always", "-theme", "default", "-s", "ab", "b"}, &stdout, &stderr)
	require.Equal(t, exitDifferent, code, stderr.String())
	assert.Equal(t, "\x1b[2;30;41ma\x1b[0mb\n", stdout.String())
}

func TestRunContext(t *testing.T) {
	code, stdout, _ := runCLI(t, "-v", "-context", "0", "-s", "quickbrownfox", "quickfox")
	assert.Equal(t, exitDifferent, code)
	assert.Equal(t, "*> ...--[brown]...\n", stdout)

	code, stdout, _ = runCLI(t, "-v", "-context", "2", "-s", "quickbrownfox", "quickfox")
	assert.Equal(t, exitDifferent, code)
	assert.Equal(t, "*> ...ck--[brown]fo...\n", stdout)

	code, stdout, _ = runCLI(t, "-v", "-s", "quickbrownfox", "quickfox")
	assert.Equal(t, exitDifferent, code)
	assert.Equal(t, "*> quick--[brown]fox\n", stdout)
}

func TestRunConfigZeroContext(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "zero.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("context_left = 0\n"), 0644))

	code, stdout, stderr := runCLI(t, "-config", cfg, "-v", "-s", "quickbrownfox", "quickfox")
	require.Equal(t, exitDifferent, code, stderr)
	assert.Equal(t, "*> ...--[brown]fox\n", stdout)
}
