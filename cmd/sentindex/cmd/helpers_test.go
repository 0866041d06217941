package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// workspace isolates a CLI run: home, user config and working directory
// all point into a temp dir.
type workspace struct {
	root    string
	dataDir string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, ".config"))
	for _, key := range []string{
		"SENTINDEX_BACKEND", "SENTINDEX_DRIVER", "SENTINDEX_DSN", "SENTINDEX_COMMIT",
		"SENTINDEX_LOG_LEVEL", "SENTINDEX_READ_AHEAD", "SENTINDEX_METRICS_TEXTFILE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Chdir(root)
	return &workspace{root: root, dataDir: filepath.Join(root, "data")}
}

// run executes the CLI with the workspace data dir and plain output.
func (w *workspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--data-dir", w.dataDir, "--no-tui"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

// mustRun is run that fails the test on error.
func (w *workspace) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := w.run(t, args...)
	require.NoError(t, err, out)
	return out
}

// writeFile creates rel under the workspace and returns its path.
func (w *workspace) writeFile(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(w.root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const lighthouseDoc = "The lighthouse stood tall. Ships passed the lighthouse.\n\nStorms came at night.\n"

const harborDoc = "The harbor was quiet. A lighthouse keeper waved.\n"
