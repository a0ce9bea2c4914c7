package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func writeCorpus(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unigram_freq.csv")
	content := "word,count\nthe,1000\nthere,500\nthen,300\nher,200\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGramsCmd(t *testing.T) {
	out, err := run(t, "grams", "test", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "^t\nte\nes\nst\nt$\n", out)

	out, err = run(t, "grams", "a", "-n", "4")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "grams", "a", "-n", "0")
	assert.Error(t, err)
}

func TestTopCmd(t *testing.T) {
	corpus := writeCorpus(t)
	out, err := run(t, "top", "--corpus", corpus, "-n", "2", "-k", "2")
	require.NoError(t, err)
	// "he" appears in all four words, "th" and "^t" in three.
	assert.Equal(t, "he\t2000\n^t\t1800\n", out)
}

func TestScoreCmd(t *testing.T) {
	corpus := writeCorpus(t)
	out, err := run(t, "score", "--corpus", corpus, "the", "vvvv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "the\t"), lines[0])
	assert.Contains(t, lines[0], "(in corpus)")
	assert.Contains(t, lines[0], "n=2:")
	assert.Contains(t, lines[0], "n=3:")
	assert.Equal(t, "vvvv\t0.0000\tn=2:0/5 n=3:0/4", lines[1])
}

func TestRankCmd(t *testing.T) {
	corpus := writeCorpus(t)
	out, err := run(t, "rank", "--corpus", corpus, "vvvv", "here", "thee")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "\tthee"))
	assert.True(t, strings.HasSuffix(lines[1], "\there"))
	assert.Equal(t, "0.0000\tvvvv", lines[2])
}

func TestRankCmd_Text(t *testing.T) {
	corpus := writeCorpus(t)
	text := filepath.Join(t.TempDir(), "text.txt")
	require.NoError(t, os.WriteFile(text, []byte("Vvvv, THEE! here. thee"), 0644))

	out, err := run(t, "rank", "--corpus", corpus, "--text", text, "--limit", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "\tthee"), out)
}

func TestRankCmd_NoWords(t *testing.T) {
	_, err := run(t, "rank", "--corpus", writeCorpus(t))
	assert.Error(t, err)
}

func TestRankCmd_MissingCorpus(t *testing.T) {
	_, err := run(t, "rank", "--corpus", filepath.Join(t.TempDir(), "missing.csv"), "word")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInvalidLengths(t *testing.T) {
	_, err := run(t, "rank", "--corpus", writeCorpus(t), "--lengths", "2,2", "word")
	assert.Error(t, err)
}

func TestConfigCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordlike.yaml")
	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	out, err = run(t, "config", "show", "--lengths", "2,4")
	require.NoError(t, err)
	assert.Contains(t, out, "- 4")
}

func TestExtractCmd(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "text.txt")
	require.NoError(t, os.WriteFile(text, []byte("The cat. the hat, the cat!\n"), 0644))
	corpus := filepath.Join(dir, "corpus.csv")

	_, err := run(t, "extract", text, "-o", corpus)
	require.NoError(t, err)
	data, err := os.ReadFile(corpus)
	require.NoError(t, err)
	assert.Equal(t, "word,count\nthe,3\ncat,2\nhat,1\n", string(data))

	out, err := run(t, "rank", "--corpus", corpus, "that", "zzz")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "\tthat"), lines[0])
	assert.Equal(t, "0.0000\tzzz", lines[1])
}

func TestServeCmd_BadAddr(t *testing.T) {
	_, err := run(t, "serve", "--corpus", writeCorpus(t), "--addr", "127.0.0.1:-1")
	assert.Error(t, err)
}

func TestServeCmd_MissingCorpus(t *testing.T) {
	_, err := run(t, "serve", "--corpus", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
