package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstyle/pkg/runner"
)

// writeTree creates files (relative, slash-separated) under dir.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func abs(dir string, names ...string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = filepath.Join(dir, filepath.FromSlash(name))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"README.md":               "# a\n",
		"docs/guide.md":           "# b\n",
		"docs/api.markdown":       "# c\n",
		"docs/old/legacy.md":      "# d\n",
		"vendor/lib/notes.md":     "# e\n",
		".github/issue.md":        "# f\n",
		".hidden.md":              "# g\n",
		"src/main.go":             "package main\n",
		"notes.txt":               "text\n",
		"docs/CHANGELOG.MARKDOWN": "# h\n",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "walks working directory by default",
			want: []string{"README.md", "docs/CHANGELOG.MARKDOWN", "docs/api.markdown", "docs/guide.md", "docs/old/legacy.md", "vendor/lib/notes.md"},
		},
		{
			name: "exclude prunes directories",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**", "docs/old"}},
			want: []string{"README.md", "docs/CHANGELOG.MARKDOWN", "docs/api.markdown", "docs/guide.md"},
		},
		{
			name: "exclude by base name",
			opts: runner.Options{ExcludeGlobs: []string{"*.markdown"}},
			want: []string{"README.md", "docs/CHANGELOG.MARKDOWN", "docs/guide.md", "docs/old/legacy.md", "vendor/lib/notes.md"},
		},
		{
			name: "include restricts",
			opts: runner.Options{IncludeGlobs: []string{"docs/**/*.md"}},
			want: []string{"docs/guide.md", "docs/old/legacy.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".txt"}},
			want: []string{"notes.txt"},
		},
		{
			name: "multiple paths are deduplicated",
			opts: runner.Options{Paths: []string{"docs", "docs/guide.md", "README.md"}},
			want: []string{"README.md", "docs/CHANGELOG.MARKDOWN", "docs/api.markdown", "docs/guide.md", "docs/old/legacy.md"},
		},
		{
			name: "explicit hidden file is kept",
			opts: runner.Options{Paths: []string{".hidden.md"}},
			want: []string{".hidden.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tree)

			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, abs(dir, tt.want...), files)
		})
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.md"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": "a\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, map[string]string{"local.md": "a\n"})
	writeTree(t, outside, map[string]string{"linked.md": "b\n"})
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "link")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "local.md"), files)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)

	realOutside, err := filepath.EvalSymlinks(outside)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "local.md"), filepath.Join(realOutside, "linked.md")}, files)
}
