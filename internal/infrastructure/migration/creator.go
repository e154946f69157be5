package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

// Stub content for freshly created migration pairs. The description
// line is omitted when none was given.
const upStub = `-- {{.Name}}
-- created {{.Timestamp}}
{{- if .Description}}
-- {{.Description}}
{{- end}}
`

const downStub = `-- revert: {{.Name}}
-- created {{.Timestamp}}
`

// MigrationFile is a created up/down migration pair
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down migration pair into dir,
// versioned with the current timestamp so files sort in creation order
func CreateMigration(dir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	mf := &MigrationFile{
		Version:     now.Format("20060102150405"),
		Name:        name,
		Description: description,
		Timestamp:   now.Format(time.RFC3339),
	}

	base := mf.Version + "_" + slugify(name)
	mf.UpPath = filepath.Join(dir, base+".up.sql")
	mf.DownPath = filepath.Join(dir, base+".down.sql")

	if err := writeStub(mf.UpPath, upStub, mf); err != nil {
		return nil, err
	}
	if err := writeStub(mf.DownPath, downStub, mf); err != nil {
		// don't leave a half-created pair behind
		_ = os.Remove(mf.UpPath)
		return nil, err
	}

	return mf, nil
}

func writeStub(path, stub string, mf *MigrationFile) error {
	tmpl, err := template.New(filepath.Base(path)).Parse(stub)
	if err != nil {
		return fmt.Errorf("parse stub template: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, mf); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

// slugify lowercases a migration name and collapses every run of
// characters outside [a-z0-9] into a single underscore
func slugify(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}

// ListMigrations returns the base names of the migration pairs in dir,
// in file order. A missing directory lists as empty.
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries)/2)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok {
			names = append(names, base)
		}
	}
	return names, nil
}
