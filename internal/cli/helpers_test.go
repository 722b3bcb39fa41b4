package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

const basicSource = `const App = () => <view id="root"><text>Hello</text></view>;`

// project is a temporary source tree with its own config, cache and
// output directory.
type project struct {
	dir    string
	src    string
	config string
	cache  string
	dist   string
}

func newProject(t *testing.T, extraConfig string) *project {
	t.Helper()
	dir := t.TempDir()
	p := &project{
		dir:    dir,
		src:    filepath.Join(dir, "src"),
		config: filepath.Join(dir, "snapc.yaml"),
		cache:  filepath.Join(dir, ".snapc", "cache.db"),
		dist:   filepath.Join(dir, "dist"),
	}
	cfg := fmt.Sprintf("cache: %q\nout_dir: %q\nfilename_prefix: %q\n%s",
		p.cache, p.dist, p.src+string(filepath.Separator), extraConfig)
	writeFile(t, p.config, cfg)
	return p
}

func (p *project) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(p.src, rel)
	writeFile(t, path, content)
	return path
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
