package scanner

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPattern is the directory-mode glob. mysqldump writes one
// <table>-schema.sql file per table, so this catches a full dump directory.
const DefaultPattern = "*schema.sql"

// Resolve expands an input path into the list of schema files to scan. A
// regular file is returned as-is; a directory is globbed with pattern. An
// unresolvable path or an empty glob is an error — the caller exits non-zero
// without producing output.
func Resolve(path, pattern string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%s is not a valid file or directory: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := filepath.Glob(filepath.Join(path, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid filename pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files matched pattern %q in %s", pattern, path)
	}
	return matches, nil
}
