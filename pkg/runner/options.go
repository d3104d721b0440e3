// Package runner lints many Markdown files concurrently.
package runner

// Options controls which files a run visits and how many are linted at once.
type Options struct {
	// Paths are files or directories to lint. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative Paths and globs. Empty means os.Getwd.
	WorkingDir string

	// Extensions are the lowercase file extensions treated as Markdown.
	Extensions []string

	// IncludeGlobs restrict discovered files when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skip files and whole directories.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs bounds concurrent passes. 0 or less means runtime.NumCPU.
	Jobs int
}

// DefaultExtensions returns the extensions used when Options.Extensions is empty.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".mdown", ".mkd"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
