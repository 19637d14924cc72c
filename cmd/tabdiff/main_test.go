package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TABDIFF_CONFIG", "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeLayouts(t *testing.T) (from, to string) {
	t.Helper()
	dir := t.TempDir()
	from = filepath.Join(dir, "from.tabs")
	to = filepath.Join(dir, "to.yaml")
	require.NoError(t, os.WriteFile(from, []byte("# Before\nhome = Home\nsearch = Search\ninbox = Inbox\nprofile = Profile\n"), 0o644))
	require.NoError(t, os.WriteFile(to, []byte(`title: After
items:
  - {id: home, title: Home}
  - {id: inbox, title: Inbox}
  - {id: search, title: Search}
  - {id: profile, title: Profile}
  - {id: settings, title: Settings}
`), 0o644))
	return from, to
}

func TestDiffText(t *testing.T) {
	from, to := writeLayouts(t)
	for _, engine := range []string{"myers", "znkr"} {
		t.Run(engine, func(t *testing.T) {
			out, _, err := run(t, "diff", "--engine", engine, from, to)
			require.NoError(t, err)
			require.Contains(t, out, "After: Before → After\n")
			require.Contains(t, out, "+ 4 Settings (settings)\n")
			if engine == "myers" {
				want := "After: Before → After\n" +
					"- 1 Search (search)\n" +
					"+ 2 Search (search)\n" +
					"+ 4 Settings (settings)\n" +
					"3 changes (1 removals, 2 insertions)\n"
				if diff := cmp.Diff(want, out); diff != "" {
					t.Errorf("diff output (-want, +got):\n%s", diff)
				}
			}
		})
	}
}

func TestDiffJSON(t *testing.T) {
	from, to := writeLayouts(t)
	out, _, err := run(t, "diff", "--format", "json", from, to)
	require.NoError(t, err)

	var got struct {
		Distance int
		Changes  []struct{ Op string }
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 3, got.Distance)
	require.Len(t, got.Changes, 3)
	require.Equal(t, "remove", got.Changes[0].Op)
}

func TestDiffMarkdown(t *testing.T) {
	from, to := writeLayouts(t)
	t.Setenv("TABDIFF_OUTPUT_STYLE", "notty")
	out, _, err := run(t, "diff", "-f", "markdown", from, to)
	require.NoError(t, err)
	require.Contains(t, out, "Settings")
	require.Contains(t, out, "Final order")
}

func TestDiffErrors(t *testing.T) {
	from, to := writeLayouts(t)

	_, _, err := run(t, "diff", from)
	require.Error(t, err)

	_, _, err = run(t, "diff", "--format", "xml", from, to)
	require.ErrorContains(t, err, `unknown output format "xml"`)

	_, _, err = run(t, "diff", "--engine", "patience", from, to)
	require.ErrorContains(t, err, "Config.Engine")

	_, _, err = run(t, "diff", from, filepath.Join(t.TempDir(), "missing.tabs"))
	require.ErrorContains(t, err, "loading layout")
}

func TestPack(t *testing.T) {
	from, to := writeLayouts(t)
	out := filepath.Join(t.TempDir(), "report.tar")
	_, stderr, err := run(t, "--log-format", "json", "pack", from, to, out)
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
	require.True(t, strings.Contains(stderr, `"message":"packed report"`), "stderr: %s", stderr)
}

func TestLogFile(t *testing.T) {
	from, to := writeLayouts(t)
	logFile := filepath.Join(t.TempDir(), "tabdiff.log")
	_, _, err := run(t, "--log-level", "debug", "--log-file", logFile, "diff", from, to)
	require.NoError(t, err)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "diffed layouts")
}
