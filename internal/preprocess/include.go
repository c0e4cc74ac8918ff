package preprocess

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var includePattern = regexp.MustCompile(`\\(?:include|input)\{([^}]+)\}`)

// ResolveIncludes recursively inlines \input and \include targets. Each
// target resolves relative to the directory of the file that references it,
// gets a .tex extension when it has none, and is spliced in place of the
// directive line with its own includes already resolved. A missing or
// already-visited target leaves the directive line unmodified and adds a
// warning; the visited set guarantees termination on include cycles.
func ResolveIncludes(content, baseDir string) (string, []string) {
	var warnings []string
	resolved := resolveIncludes(content, baseDir, map[string]bool{}, &warnings)
	return resolved, warnings
}

func resolveIncludes(content, baseDir string, visited map[string]bool, warnings *[]string) string {
	lines := strings.Split(content, "\n")
	resolved := make([]string, 0, len(lines))

	for _, line := range lines {
		m := includePattern.FindStringSubmatch(line)
		if m == nil {
			resolved = append(resolved, line)
			continue
		}

		name := m[1]
		if !strings.HasSuffix(name, ".tex") {
			name += ".tex"
		}
		path := filepath.Join(baseDir, name)

		key := path
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
		if visited[key] {
			*warnings = append(*warnings, fmt.Sprintf("include cycle detected at %s, keeping directive", name))
			resolved = append(resolved, line)
			continue
		}

		included, err := os.ReadFile(path) // #nosec G304 -- path comes from the document being converted
		if err != nil {
			*warnings = append(*warnings, fmt.Sprintf("could not find include file: %s", name))
			resolved = append(resolved, line)
			continue
		}

		visited[key] = true
		// Nested includes resolve relative to the included file's own
		// directory, not the original base.
		resolved = append(resolved, resolveIncludes(string(included), filepath.Dir(path), visited, warnings))
		delete(visited, key)
	}

	return strings.Join(resolved, "\n")
}
