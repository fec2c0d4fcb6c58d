package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/konorm/internal/model"
)

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, mainE(args, strings.NewReader(stdin), &out, io.Discard))
	return out.String()
}

func TestCLIText(t *testing.T) {
	assert.Equal(t, "안돼ㅋㅋㅋ 버스인가\n", run(t, "안됔ㅋㅋㅋㅋ 버슨가"))
	assert.Equal(t, "예뻐ㅠㅠ\n", run(t, "예뿌ㅠㅠ\n"))
}

func TestCLILinesLogsToConfiguredLogger(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	var out, errOut bytes.Buffer
	err := mainE([]string{"--lines", "--log-level", "debug"}, strings.NewReader("버슨가\nhello\n"), &out, &errOut)
	require.NoError(t, err)

	assert.Equal(t, "버스인가\nhello\n", out.String())
	assert.Contains(t, errOut.String(), `"msg":"normalized lines"`)
	assert.Contains(t, errOut.String(), `"count":2`)
}

func TestCLIJSON(t *testing.T) {
	out := run(t, "버슨가", "--json")

	var res model.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "버스인가", res.Normalized)
	assert.Equal(t, 1, res.RewriteCount)
}

func TestCLILines(t *testing.T) {
	out := run(t, "안됔ㅋㅋㅋㅋ\nhello\n보슨지\n", "--lines")
	assert.Equal(t, "안돼ㅋㅋㅋ\nhello\n보스인지\n", out)

	out = run(t, "버슨가\n예뿌ㅠㅠ\n", "--lines", "--json")
	recs := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, recs, 2)
	var res model.Result
	require.NoError(t, json.Unmarshal([]byte(recs[1]), &res))
	assert.Equal(t, "예뻐ㅠㅠ", res.Normalized)
}

func TestCLIUserDictAndFile(t *testing.T) {
	dir := t.TempDir()
	dictPath := filepath.Join(dir, "dict.json")
	require.NoError(t, os.WriteFile(dictPath, []byte(`{"nouns": ["쵸키"]}`), 0o644))
	input := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(input, []byte("쵸킨데"), 0o644))

	assert.Equal(t, "쵸키인데\n", run(t, "", "-f", input, "-d", dictPath))
	assert.Equal(t, "쵸킨데\n", run(t, "", "-f", input))
}

func TestCLIConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "konorm.conf")
	require.NoError(t, os.WriteFile(cfg, []byte("json true\n"), 0o644))

	out := run(t, "버슨가", "--config", cfg)
	assert.Contains(t, out, `"normalized": "버스인가"`)
}

func TestCLIErrors(t *testing.T) {
	var out bytes.Buffer
	err := mainE([]string{"--dict", "/does/not/exist.json"}, strings.NewReader("x"), &out, io.Discard)
	require.Error(t, err)

	err = mainE([]string{"--no-such-flag"}, strings.NewReader("x"), &out, io.Discard)
	require.Error(t, err)
}
