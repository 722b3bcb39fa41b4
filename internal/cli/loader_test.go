package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/snapc/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFindSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "App.jsx"), "")
	writeFile(t, filepath.Join(dir, "pages", "Home.tsx"), "")
	writeFile(t, filepath.Join(dir, "util.js"), "")
	writeFile(t, filepath.Join(dir, "node_modules", "dep", "x.jsx"), "")
	writeFile(t, filepath.Join(dir, ".cache", "y.jsx"), "")

	sources, err := FindSources([]string{dir}, config.Default())
	require.NoError(t, err)

	require.Len(t, sources, 2)
	assert.Equal(t, Source{Path: filepath.Join(dir, "App.jsx"), Rel: "App.jsx"}, sources[0])
	assert.Equal(t, Source{Path: filepath.Join(dir, "pages", "Home.tsx"), Rel: filepath.Join("pages", "Home.tsx")}, sources[1])
}

func TestFindSources_ExplicitFileAlwaysIncluded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.js")
	writeFile(t, path, "")

	sources, err := FindSources([]string{path, path}, config.Default())
	require.NoError(t, err)
	assert.Equal(t, []Source{{Path: path, Rel: "legacy.js"}}, sources)
}

func TestFindSources_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := FindSources([]string{filepath.Join(dir, "missing")}, config.Default())
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeNotFound, le.Code)

	_, err = FindSources([]string{dir}, config.Default())
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeNoFiles, le.Code)
	assert.Contains(t, le.Message, ".jsx, .tsx")
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("dist", "pages", "Home.js"), OutputPath("dist", Source{Rel: filepath.Join("pages", "Home.tsx")}))
	assert.Equal(t, filepath.Join("out", "App.js"), OutputPath("out", Source{Rel: "App.jsx"}))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	_, err := loadConfig(&RootOptions{Config: filepath.Join(dir, "none.yaml")})
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeNotFound, le.Code)

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "target: WEB\n")
	_, err = loadConfig(&RootOptions{Config: bad})
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeConfigInvalid, le.Code)

	good := filepath.Join(dir, "good.yaml")
	writeFile(t, good, "target: js\n")
	cfg, err := loadConfig(&RootOptions{Config: good})
	require.NoError(t, err)
	assert.Equal(t, "JS", cfg.Target)
}
