package filterfile

import (
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/PhucNguyen204/proteofilter/pkg/filter"
)

func isYAML(p string) bool {
	l := strings.ToLower(p)
	return strings.HasSuffix(l, ".yml") || strings.HasSuffix(l, ".yaml")
}

// LoadDir walks root and loads every .yml/.yaml filter file it finds.
// A file that fails to parse is logged and skipped so one bad definition
// does not take down the whole directory.
func LoadDir(root string, reg *filter.Registry) ([]*Definition, error) {
	var out []*Definition
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(p) {
			return nil
		}
		def, err := Load(p, reg)
		if err != nil {
			log.Printf("filterfile: skipping %s: %v", p, err)
			return nil
		}
		out = append(out, def)
		return nil
	})
	return out, err
}
