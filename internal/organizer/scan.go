package organizer

import (
	"errors"
	"io/fs"
	"os"

	"tagtree/internal/services"
)

// listFiles returns the names of the regular files directly inside source.
// Subdirectories, symlinks, and other non-regular entries are skipped. Order
// is whatever os.ReadDir yields (lexical); callers must not rely on it.
func listFiles(source string) ([]string, error) {
	entries, err := os.ReadDir(source)
	if err != nil {
		marker := services.ErrTransient
		if errors.Is(err, fs.ErrNotExist) {
			marker = services.ErrNotFound
		}
		return nil, services.Wrap(marker, "organizing", "list source directory", "", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
