package store

import (
    "context"
    "fmt"
    "io/fs"
    "os"
    "path/filepath"
    "sort"
    "strings"
)

// RunMigrations executes all SQL files in the given directory in lexicographic order.
// Each file may contain multiple statements separated by ';'.
func (s *Store) RunMigrations(ctx context.Context, dir string) error {
    entries := make([]string, 0)
    walkFn := func(path string, d fs.DirEntry, err error) error {
        if err != nil { return err }
        if d.IsDir() { return nil }
        if strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
            entries = append(entries, path)
        }
        return nil
    }
    if err := filepath.WalkDir(dir, walkFn); err != nil { return err }
    sort.Strings(entries)
    for _, p := range entries {
        b, err := os.ReadFile(p)
        if err != nil { return fmt.Errorf("read migration %s: %w", p, err) }
        // naive split by ';' keeping it simple; ignore empty tail chunks
        for _, c := range strings.Split(string(b), ";") {
            stmt := strings.TrimSpace(c)
            if stmt == "" { continue }
            if _, err := s.db.ExecContext(ctx, stmt); err != nil {
                return fmt.Errorf("exec migration %s: %w", p, err)
            }
        }
    }
    return nil
}
