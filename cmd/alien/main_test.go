package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRunVerdicts(t *testing.T) {
	var out bytes.Buffer
	err := run(options{pattern: "(0|1)*1", format: "none", graph: "dfa", outFile: "-", words: []string{"01", "10", "", "2"}}, &out, quiet)
	require.NoError(t, err)
	assert.Equal(t, "01\taccept\n10\treject\n\treject\n2\treject\n", out.String())
}

func TestRunFormats(t *testing.T) {
	tests := []struct {
		graph, format, want string
	}{
		{"dfa", "rules", "DFA start="},
		{"rawdfa", "yaml", "start: true"},
		{"dfa", "dot", "digraph G {"},
		{"nfa", "dot", `label="ε"`},
		{"nfa", "rules", "NFA start="},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		err := run(options{pattern: "0|1", minimize: true, graph: tt.graph, format: tt.format, outFile: "-"}, &out, quiet)
		require.NoError(t, err, "%s/%s", tt.graph, tt.format)
		assert.Contains(t, out.String(), tt.want, "%s/%s", tt.graph, tt.format)
	}
}

func TestRunErrors(t *testing.T) {
	err := run(options{}, io.Discard, quiet)
	assert.True(t, errors.Is(err, errUsage))

	err = run(options{pattern: "0|", format: "rules", graph: "dfa", outFile: "-"}, io.Discard, quiet)
	assert.Error(t, err)

	err = run(options{pattern: "0", format: "yaml", graph: "nfa", outFile: "-"}, io.Discard, quiet)
	assert.Error(t, err)

	err = run(options{pattern: "0", format: "rules", graph: "tree", outFile: "-"}, io.Discard, quiet)
	assert.Error(t, err)
}

func TestRunWordsFileAndOutput(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("00\r\n11\n010\n"), 0o644))
	dot := filepath.Join(dir, "g.dot")

	var out bytes.Buffer
	err := run(options{pattern: "(00|11)*", format: "dot", graph: "dfa", outFile: dot, wordsFile: words}, &out, quiet)
	require.NoError(t, err)
	assert.Equal(t, "00\taccept\n11\taccept\n010\treject\n", out.String())

	data, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph G {")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("loud"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ALIEN_FORMAT", "yaml")
	assert.Equal(t, "yaml", getEnv("ALIEN_FORMAT", "rules"))
	assert.Equal(t, "rules", getEnv("ALIEN_UNSET_FOR_TEST", "rules"))
}

func TestRunLogsThroughGivenLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	dot := filepath.Join(t.TempDir(), "g.dot")

	err := run(options{pattern: "0", format: "dot", graph: "dfa", outFile: dot}, io.Discard, logger)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "msg=\"output written\"")
	assert.Contains(t, logs.String(), "file="+dot)
}
