package config

import (
	"strings"
)

const (
	// EnvSearchPath is the environment variable overriding the search path.
	EnvSearchPath = "CLISHELL_PATH"

	// DefaultSearchPath is used when EnvSearchPath is unset: a system-wide
	// directory followed by a per-user directory.
	DefaultSearchPath = "/etc/clishell;~/.clishell"

	// DefaultExtension is the suffix a file must carry (case-sensitive) to be
	// considered a command-definition document.
	DefaultExtension = ".xml"

	// PathSeparator delimits directories within a search-path string.
	PathSeparator = ";"

	homeToken = "~"
)

// ExpandHome replaces every occurrence of the home token in path with home,
// preserving all other characters verbatim. Tokens may appear anywhere within
// a segment, adjacent to each other or at segment boundaries; each occurrence
// is replaced independently. An empty home drops the token.
func ExpandHome(path, home string) string {
	return strings.ReplaceAll(path, homeToken, home)
}

// ResolveSearchPath builds the ordered list of directories to scan for
// command-definition documents. The getenv function supplies both the
// search-path override and the home directory (typically os.Getenv). An unset
// or empty override falls back to DefaultSearchPath; empty segments are
// skipped. The result is never empty.
func ResolveSearchPath(getenv func(string) string) []string {
	raw := getenv(EnvSearchPath)
	if raw == "" {
		raw = DefaultSearchPath
	}

	dirs := splitPath(ExpandHome(raw, getenv("HOME")))
	if len(dirs) == 0 {
		// An override of only separators or bare home tokens with no home
		// directory resolves to nothing usable; fall back to the default.
		dirs = splitPath(ExpandHome(DefaultSearchPath, getenv("HOME")))
	}
	return dirs
}

func splitPath(path string) []string {
	var dirs []string
	for _, dir := range strings.Split(path, PathSeparator) {
		if dir == "" {
			continue
		}
		dirs = append(dirs, dir)
	}
	return dirs
}
