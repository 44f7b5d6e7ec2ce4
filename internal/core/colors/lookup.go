package colors

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StaticLookup is a fixed name to color table.
type StaticLookup map[string]string

func (s StaticLookup) Colors(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out, nil
}

// File is the on-disk layout of a colors file:
//
//	instructors:
//	  huber: "#ff0000"
//	  maier: "#00ff00"
type File struct {
	Instructors map[string]string `yaml:"instructors"`
}

// LoadYAML reads a colors file into a static lookup.
func LoadYAML(path string) (StaticLookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read colors file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse colors file %s: %w", path, err)
	}
	if f.Instructors == nil {
		return StaticLookup{}, nil
	}
	for name, color := range f.Instructors {
		if err := ValidateColor(color); err != nil {
			return nil, fmt.Errorf("colors file %s, instructor %s: %w", path, name, err)
		}
	}
	return StaticLookup(f.Instructors), nil
}

// SQLStore reads the instructor colors from a plain database/sql handle
// (postgres via lib/pq or sqlite via modernc).
type SQLStore struct {
	db     *sql.DB
	driver string
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Colors(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT family_name, color FROM instructors`)
	if err != nil {
		return nil, fmt.Errorf("failed to query instructors: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var name string
		var color sql.NullString
		if err := rows.Scan(&name, &color); err != nil {
			return nil, fmt.Errorf("failed to scan instructor: %w", err)
		}
		out[name] = color.String
	}
	return out, rows.Err()
}

// Upsert stores the color of one instructor.
func (s *SQLStore) Upsert(ctx context.Context, name, color string) error {
	query := `INSERT INTO instructors (family_name, color) VALUES ($1, $2)
		ON CONFLICT (family_name) DO UPDATE SET color = excluded.color`
	if s.driver == "sqlite" {
		query = `INSERT INTO instructors (family_name, color) VALUES (?, ?)
		ON CONFLICT (family_name) DO UPDATE SET color = excluded.color`
	}
	if _, err := s.db.ExecContext(ctx, query, name, color); err != nil {
		return fmt.Errorf("failed to upsert instructor %s: %w", name, err)
	}
	return nil
}

var (
	_ Lookup = StaticLookup(nil)
	_ Lookup = (*SQLStore)(nil)
)
