package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir checks every .sql file in dir for goose conventions:
// versioned filenames, no duplicate versions, and Up/Down markers.
func ValidateDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := make(map[string]string)
	var problems []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		name := entry.Name()
		match := sqlFileRe.FindStringSubmatch(name)
		if match == nil {
			problems = append(problems, fmt.Sprintf("%s: filename must match <14-digit version>_<snake_case_name>.sql", name))
			continue
		}

		version := match[1]
		if prev, ok := seen[version]; ok {
			problems = append(problems, fmt.Sprintf("%s: duplicate version %s (also used by %s)", name, version, prev))
		} else {
			seen[version] = name
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		content := string(data)
		if !strings.Contains(content, "-- +goose Up") {
			problems = append(problems, fmt.Sprintf("%s: missing '-- +goose Up' marker", name))
		}
		if !strings.Contains(content, "-- +goose Down") {
			problems = append(problems, fmt.Sprintf("%s: missing '-- +goose Down' marker", name))
		}
	}

	if len(seen) == 0 && len(problems) == 0 {
		return fmt.Errorf("no migration files found in %q", dir)
	}
	if len(problems) > 0 {
		return fmt.Errorf("migration validation failed:\n  %s", strings.Join(problems, "\n  "))
	}

	return nil
}
