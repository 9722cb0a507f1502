package importer

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/curatorhq/curator/pkg/types"
)

// ImportDirectory walks root recursively, parses every .md file, and returns
// the resulting items. Files that fail to parse are skipped with a logged
// warning rather than aborting the whole import. Hidden directories
// (dot-prefixed) are skipped.
func ImportDirectory(root string) ([]*types.Item, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("importer: cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("importer: %s is not a directory", root)
	}

	var items []*types.Item
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("importer: failed to read %s: %v", path, err)
			return nil
		}

		parsed, err := ParseMarkdownFile(content, path)
		if err != nil {
			log.Printf("importer: skipping %s: %v", path, err)
			return nil
		}

		items = append(items, parsed.Item(uuid.NewString()))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importer: walk failed: %w", err)
	}

	return items, nil
}
