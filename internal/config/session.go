package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Session is the immutable per-run configuration threaded through command
// building and execution. Derive modified copies with the With* methods.
type Session struct {
	Program       string
	Root          string
	StrategiesDir string
	ConfigDir     string
	ResultsDir    string
	StrategyExt   string
	ConfigExt     string
	ConfigFile    string // selected runner config, relative to ConfigDir
	Timeout       time.Duration
	TaskTimeout   time.Duration
	Workers       int
	MaxOutput     int
	MaxNameLength int
	MinVersion    string
}

// Session resolves the configuration against root into a Session.
func (c *Config) Session(root string) Session {
	return Session{
		Program:       orString(c.Program, DefaultProgram),
		Root:          root,
		StrategiesDir: resolve(root, orString(c.StrategiesDir, DefaultStrategiesDir)),
		ConfigDir:     resolve(root, orString(c.ConfigDir, DefaultConfigDir)),
		ResultsDir:    resolve(root, orString(c.ResultsDir, DefaultResultsDir)),
		StrategyExt:   orString(c.StrategyExt, DefaultStrategyExt),
		ConfigExt:     orString(c.ConfigExt, DefaultConfigExt),
		Timeout:       c.Timeout(),
		TaskTimeout:   c.TaskTimeout(),
		Workers:       c.WorkerCount(),
		MaxOutput:     c.MaxOutputBytes(),
		MaxNameLength: c.NameLength(),
		MinVersion:    c.MinVersion,
	}
}

// WithConfigFile returns a copy of s using the given runner config file.
func (s Session) WithConfigFile(name string) Session {
	s.ConfigFile = name
	return s
}

// WithWorkers returns a copy of s with the given batch parallelism, ignoring n <= 0.
func (s Session) WithWorkers(n int) Session {
	if n > 0 {
		s.Workers = n
	}
	return s
}

// WithTaskTimeout returns a copy of s with the given per-task timeout, ignoring d <= 0.
func (s Session) WithTaskTimeout(d time.Duration) Session {
	if d > 0 {
		s.TaskTimeout = d
	}
	return s
}

// ConfigPath returns the path of the selected runner config file as passed to
// the runner's --config flag.
func (s Session) ConfigPath() string {
	if s.ConfigFile == "" || filepath.IsAbs(s.ConfigFile) {
		return s.ConfigFile
	}
	return filepath.Join(s.ConfigDir, s.ConfigFile)
}

// Dir identifies one of the session directories.
type Dir int

const (
	Strategies Dir = iota
	Configs
	Results
)

func (d Dir) String() string {
	switch d {
	case Strategies:
		return "strategies"
	case Configs:
		return "config"
	case Results:
		return "results"
	}
	return "unknown"
}

func (s Session) path(d Dir) string {
	switch d {
	case Strategies:
		return s.StrategiesDir
	case Configs:
		return s.ConfigDir
	case Results:
		return s.ResultsDir
	}
	return ""
}

// Require returns ErrConfigurationMissing if any of the given directories does not exist.
func (s Session) Require(dirs ...Dir) error {
	for _, d := range dirs {
		p := s.path(d)
		fi, err := os.Stat(p)
		if err != nil || !fi.IsDir() {
			return fmt.Errorf("%w: %s directory %q does not exist", ErrConfigurationMissing, d, p)
		}
	}
	return nil
}

func orString(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
