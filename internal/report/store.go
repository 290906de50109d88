// Package report names, persists and retrieves the captured output of runner
// invocations. Each result is a flat text file under the results directory.
package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPersistence wraps failures to write a result file.
var ErrPersistence = errors.New("persisting result")

// ErrNotFound is returned when a result file does not exist.
var ErrNotFound = errors.New("result not found")

// ResultFile is a persisted result: its file name and captured text.
type ResultFile struct {
	Name    string
	Content string
}

// Store persists and retrieves result files.
type Store interface {
	Save(file ResultFile) (string, error)
	Load(name string) (ResultFile, error)
}

// validName rejects names that would escape the results directory.
func validName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("invalid result name %q", name)
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("invalid result name %q: contains a path separator", name)
	}
	return nil
}
