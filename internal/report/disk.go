package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiskStore writes result files into a flat directory.
type DiskStore struct {
	Dir string
}

// NewDiskStore creates a DiskStore rooted at dir. The directory must exist
// before the first Save.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{Dir: dir}
}

// Save writes the file atomically and returns its path. A concurrent reader
// sees either the previous content or the complete new content.
func (s *DiskStore) Save(file ResultFile) (string, error) {
	if err := validName(file.Name); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	path := filepath.Join(s.Dir, file.Name)

	tmp, err := os.CreateTemp(s.Dir, ".ftpilot-*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrPersistence, file.Name, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(file.Content); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("%w %s: %w", ErrPersistence, file.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrPersistence, file.Name, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrPersistence, file.Name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrPersistence, file.Name, err)
	}
	return path, nil
}

// Load reads a result file from disk.
func (s *DiskStore) Load(name string) (ResultFile, error) {
	if err := validName(name); err != nil {
		return ResultFile{}, err
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ResultFile{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return ResultFile{}, fmt.Errorf("reading result %s: %w", name, err)
	}
	return ResultFile{Name: name, Content: string(data)}, nil
}

// List returns the names of stored results starting with prefix, sorted.
// A missing directory yields an empty list.
func (s *DiskStore) List(prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing results: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
