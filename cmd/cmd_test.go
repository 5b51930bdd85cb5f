package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/kamusis/smartfind/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resultRow struct {
	Path     string  `json:"path"`
	Filename string  `json:"filename"`
	Modified string  `json:"modified"`
	Score    float64 `json:"score"`
}

// resetFlags undoes flag state left behind by a previous Execute.
func resetFlags() {
	flagConfig, flagDebug = "", false
	flagLimit, flagTimeout, flagFormat, flagStdin = config.MaxLimit, config.DefaultTimeout, "json", false
	flagInitForce = false
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		c.PersistentFlags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(routeArgs(args))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// sandbox isolates HOME and returns it.
func sandbox(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SMARTFIND_CONFIG", "")
	t.Setenv("SMARTFIND_INDEX_TOOL", "")
	return home
}

func writeConfig(t *testing.T, home, body string) string {
	t.Helper()
	p := filepath.Join(home, ".smartfind", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

// fakeIndexTool writes a script that records its arguments and prints lines.
func fakeIndexTool(t *testing.T, dir string, lines ...string) (tool, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake index tool is a POSIX shell script")
	}
	argsFile = filepath.Join(dir, "args.txt")
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("printf '%s\\n' \"$@\" > '" + argsFile + "'\n")
	for _, l := range lines {
		b.WriteString("echo '" + l + "'\n")
	}
	tool = filepath.Join(dir, "fake-mdfind")
	require.NoError(t, os.WriteFile(tool, []byte(b.String()), 0o755))
	return tool, argsFile
}

func decode(t *testing.T, out string) []resultRow {
	t.Helper()
	var rows []resultRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows), "output: %s", out)
	return rows
}

func TestRoot_NoArgsPrintsEmptyArray(t *testing.T) {
	sandbox(t)
	out, _, err := execute(t, "")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestRouteArgs(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{nil, []string{"search", "--"}},
		{[]string{"init"}, []string{"search", "--", "init"}},
		{[]string{"search"}, []string{"search", "--", "search"}},
		{[]string{"-draft", "notes"}, []string{"search", "--", "-draft", "notes"}},
		{[]string{"report", "pdf"}, []string{"search", "--", "report", "pdf"}},
		{[]string{"search", "--stdin", "pdf"}, []string{"search", "--stdin", "pdf"}},
		{[]string{"admin", "doctor"}, []string{"admin", "doctor"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, routeArgs(c.in), "%q", c.in)
	}
}

func TestRoot_CommandLikeQueriesAreSearched(t *testing.T) {
	cases := []struct {
		args []string
		expr string
	}{
		{[]string{"init"}, "init"},
		{[]string{"version"}, "version"},
		{[]string{"doctor"}, "doctor"},
		{[]string{"help"}, "help"},
		{[]string{"open"}, "open"},
		{[]string{"admin"}, "admin"},
		{[]string{"--help"}, "--help"},
		{[]string{"-draft", "notes"}, "-draft | notes"},
		{[]string{"--format", "xml"}, "--format | xml"},
	}
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			home := sandbox(t)
			docs := filepath.Join(home, "Documents")
			require.NoError(t, os.MkdirAll(docs, 0o755))
			hit := filepath.Join(docs, "hit.txt")
			require.NoError(t, os.WriteFile(hit, []byte("x"), 0o644))

			tool, argsFile := fakeIndexTool(t, t.TempDir(), hit)
			cfgPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(cfgPath, []byte("index_tool: "+tool+"\n"), 0o644))
			t.Setenv("SMARTFIND_CONFIG", cfgPath)

			out, _, err := execute(t, "", c.args...)
			require.NoError(t, err)
			rows := decode(t, out)
			require.Len(t, rows, 1)
			assert.Equal(t, hit, rows[0].Path)

			args, err := os.ReadFile(argsFile)
			require.NoError(t, err)
			assert.Equal(t, "-onlyin\n"+docs+"\n"+c.expr+"\n", string(args))

			_, err = os.Stat(filepath.Join(home, ".smartfind", "config.yaml"))
			assert.True(t, os.IsNotExist(err), "a search must not write a config")
		})
	}
}

func TestSearch_ShortQuerySkipsIndex(t *testing.T) {
	sandbox(t)
	out, _, err := execute(t, "", "search", " a ")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestSearch_EndToEnd(t *testing.T) {
	home := sandbox(t)
	docs := filepath.Join(home, "Documents")
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "site-packages"), 0o755))
	report := filepath.Join(docs, "report.pdf")
	noise := filepath.Join(docs, "site-packages", "readme.md")
	store := filepath.Join(docs, ".DS_Store")
	for _, p := range []string{report, noise, store} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	tool, argsFile := fakeIndexTool(t, t.TempDir(), noise, store, report)
	writeConfig(t, home, ""+
		"include_directories: [\"~/Documents\", \"~/Missing\"]\n"+
		"exclude_patterns: [\"*/site-packages/*\"]\n"+
		"exclude_filenames: [\".DS_Store\"]\n"+
		"index_tool: "+tool+"\n")

	out, _, err := execute(t, "", "report", "pdf")
	require.NoError(t, err)
	rows := decode(t, out)
	require.Len(t, rows, 1)
	assert.Equal(t, report, rows[0].Path)
	assert.Equal(t, "report.pdf", rows[0].Filename)
	assert.NotEmpty(t, rows[0].Modified)
	assert.InDelta(t, 1.0, rows[0].Score, 0.01)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "-onlyin\n"+docs+"\nreport | pdf\n", string(args))
}

func TestSearch_ToolFailurePrintsEmptyArray(t *testing.T) {
	home := sandbox(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "Documents"), 0o755))
	writeConfig(t, home, "index_tool: "+filepath.Join(home, "no-such-tool")+"\n")

	out, _, err := execute(t, "", "search", "--debug", "anything")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestSearch_MalformedConfigFails(t *testing.T) {
	home := sandbox(t)
	writeConfig(t, home, "exclude_patterns: [\"[oops\"]\n")

	out, _, err := execute(t, "", "search", "anything")
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestSearch_MissingExplicitConfigFails(t *testing.T) {
	sandbox(t)
	_, _, err := execute(t, "", "search", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "anything")
	require.Error(t, err)
}

func TestSearch_StdinAndTextFormat(t *testing.T) {
	home := sandbox(t)
	docs := filepath.Join(home, "Documents")
	require.NoError(t, os.MkdirAll(docs, 0o755))
	a := filepath.Join(docs, "alpha.txt")
	b := filepath.Join(docs, "beta.txt")
	for _, p := range []string{a, b} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	stdin := strings.Join([]string{a, "/outside/scope.txt", b}, "\n") + "\n"

	out, _, err := execute(t, stdin, "search", "--stdin", "--limit", "1", "txt")
	require.NoError(t, err)
	rows := decode(t, out)
	require.Len(t, rows, 1)
	assert.Equal(t, a, rows[0].Path)

	out, _, err = execute(t, stdin, "search", "--stdin", "--format", "text", "txt")
	require.NoError(t, err)
	assert.Contains(t, out, "1.")
	assert.Contains(t, out, "alpha.txt")
	assert.Contains(t, out, "beta.txt")
	assert.NotContains(t, out, "scope.txt")
}

func TestSearch_BadFormat(t *testing.T) {
	sandbox(t)
	_, _, err := execute(t, "", "search", "--format", "xml", "anything")
	assert.Error(t, err)
}

func TestInit_WritesOnceThenSkips(t *testing.T) {
	home := sandbox(t)

	out, _, err := execute(t, "", "admin", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "config written")

	p := filepath.Join(home, ".smartfind", "config.yaml")
	cfg, err := config.Load(p)
	require.NoError(t, err)
	assert.Contains(t, cfg.ExcludePatterns, "*/node_modules/*")

	out, _, err = execute(t, "", "admin", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	out, _, err = execute(t, "", "admin", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "config written")
}

func TestDoctor(t *testing.T) {
	home := sandbox(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "Documents"), 0o755))

	tool, _ := fakeIndexTool(t, t.TempDir())
	writeConfig(t, home, "index_tool: "+tool+"\n")
	out, _, err := execute(t, "", "admin", "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "All checks passed")
	assert.Contains(t, out, "0 path pattern(s), 0 filename pattern(s)\n")
	assert.Contains(t, out, filepath.Join(home, "Downloads"))

	writeConfig(t, home, "index_tool: "+filepath.Join(home, "missing-tool")+"\n")
	_, errOut, err := execute(t, "", "admin", "doctor")
	require.Error(t, err)
	assert.Contains(t, errOut, "not found on PATH")
}

func TestOpenerCommand(t *testing.T) {
	cases := []struct {
		goos   string
		reveal bool
		name   string
		args   []string
	}{
		{"darwin", false, "open", []string{"/x/a.pdf"}},
		{"darwin", true, "open", []string{"-R", "/x/a.pdf"}},
		{"linux", false, "xdg-open", []string{"/x/a.pdf"}},
		{"linux", true, "xdg-open", []string{"/x"}},
		{"windows", true, "explorer", []string{"/select,/x/a.pdf"}},
	}
	for _, c := range cases {
		name, args := openerCommand(c.goos, "/x/a.pdf", c.reveal)
		assert.Equal(t, c.name, name, "%s reveal=%v", c.goos, c.reveal)
		assert.Equal(t, c.args, args, "%s reveal=%v", c.goos, c.reveal)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	sandbox(t)
	_, errOut, err := execute(t, "", "admin", "open", filepath.Join(t.TempDir(), "gone.pdf"))
	require.Error(t, err)
	assert.Contains(t, errOut, "cannot open")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "admin", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "smartfind dev")
}
