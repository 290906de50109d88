// Package config loads and validates the optional .ftpilot YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file looked up at the project root.
const FileName = ".ftpilot"

// Default values mirror the layout freqtrade creates with `create-userdir`.
const (
	DefaultProgram       = "freqtrade"
	DefaultStrategiesDir = "user_data/strategies"
	DefaultConfigDir     = "user_data"
	DefaultResultsDir    = "user_data/results"
	DefaultStrategyExt   = ".py"
	DefaultConfigExt     = ".json"
	DefaultTimeout       = 10 * time.Minute
	DefaultTaskTimeout   = 5 * time.Minute
	DefaultWorkers       = 4
	DefaultMaxOutput     = 16 << 20 // 16 MB
	DefaultMaxNameLength = 180
	DefaultAnalyzePrefix = "Test"
	DefaultAnalyzeLimit  = 10
)

// Environment variables that take precedence over the file.
const (
	EnvProgram    = "FTPILOT_PROGRAM"
	EnvResultsDir = "FTPILOT_RESULTS_DIR"
)

// ErrConfigurationMissing is returned when a directory the run depends on does not exist.
var ErrConfigurationMissing = errors.New("configuration missing")

// Config holds the parsed .ftpilot configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version        int           `yaml:"version" jsonschema:"description=Configuration format version"`
	Program        string        `yaml:"program" jsonschema:"description=Trading runner binary,default=freqtrade"`
	StrategiesDir  string        `yaml:"strategies_dir" jsonschema:"description=Directory holding strategy source files"`
	ConfigDir      string        `yaml:"config_dir" jsonschema:"description=Directory holding runner configuration files"`
	ResultsDir     string        `yaml:"results_dir" jsonschema:"description=Directory where captured output is archived"`
	StrategyExt    string        `yaml:"strategy_ext" jsonschema:"default=.py"`
	ConfigExt      string        `yaml:"config_ext" jsonschema:"default=.json"`
	RawTimeout     string        `yaml:"timeout" jsonschema:"description=Wall-clock limit for a single run (e.g. 10m)"`
	RawTaskTimeout string        `yaml:"task_timeout" jsonschema:"description=Per-task limit inside a batch (e.g. 5m)"`
	Workers        int           `yaml:"workers" jsonschema:"minimum=1,default=4"`
	RawMaxOutput   int           `yaml:"max_output" jsonschema:"description=Captured output cap in bytes"`
	MaxNameLength  int           `yaml:"max_name_length" jsonschema:"minimum=16,default=180"`
	MinVersion     string        `yaml:"min_version" jsonschema:"description=Minimum accepted runner version (semver constraint)"`
	Options        OptionsConfig `yaml:"options"`
	Analyze        AnalyzeConfig `yaml:"analyze"`
	Log            LogConfig     `yaml:"log"`
}

// OptionsConfig lists the choices offered by the menu. Each list may be extended with
// a custom value at prompt time.
type OptionsConfig struct {
	Timeframes         []string `yaml:"timeframes"`
	DownloadTimeframes []string `yaml:"download_timeframes"` // multi-value entries are space separated
	Timeranges         []string `yaml:"timeranges"`
	Spaces             []string `yaml:"spaces"`
	LossFunctions      []string `yaml:"loss_functions"`
}

// AnalyzeConfig controls result ranking.
type AnalyzeConfig struct {
	Prefix string `yaml:"prefix"` // result files considered by analyze (default: Test)
	Limit  int    `yaml:"limit"`  // number of ranked records (default: 10)
}

// LogConfig controls the logger.
type LogConfig struct {
	Format string `yaml:"format" jsonschema:"enum=json,enum=console"`
	Level  string `yaml:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

// Default option lists.
var (
	DefaultTimeframes = []string{"1m", "5m", "15m", "30m", "1h", "4h", "8h", "1d"}
	DefaultTimeranges = []string{
		"20240601-20240825", "20240701-20240825", "20240601-",
		"20240810-20240825", "20240820-20240825",
		"20240824-20240825", "20240725-20240825",
	}
	DefaultSpaces = []string{
		"roi stoploss", "roi stoploss trailing", "buy sell",
		"buy sell roi", "buy sell roi stoploss", "stoploss roi",
		"roi", "buy", "sell", "all",
	}
	DefaultLossFunctions = []string{
		"ShortTradeDurHyperOptLoss", "OnlyProfitHyperOptLoss",
		"SharpeHyperOptLoss", "SortinoHyperOptLoss",
	}
	DefaultDownloadExtras = []string{"1m 5m 15m 30m 1h 4h 8h 1d", "30m 1h 4h 8h 1d", "1m 5m 15m"}
)

// Timeout returns the configured single-run timeout or the default.
func (c *Config) Timeout() time.Duration {
	return parseDuration(c.RawTimeout, DefaultTimeout)
}

// TaskTimeout returns the configured per-task batch timeout or the default.
func (c *Config) TaskTimeout() time.Duration {
	return parseDuration(c.RawTaskTimeout, DefaultTaskTimeout)
}

func parseDuration(raw string, def time.Duration) time.Duration {
	if raw != "" {
		d, err := time.ParseDuration(raw)
		if err == nil && d > 0 {
			return d
		}
	}
	return def
}

// MaxOutputBytes returns the configured max output size or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// WorkerCount returns the configured batch parallelism or the default.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return DefaultWorkers
}

// NameLength returns the maximum result file name length.
func (c *Config) NameLength() int {
	if c.MaxNameLength > 0 {
		return c.MaxNameLength
	}
	return DefaultMaxNameLength
}

// AnalyzePrefix returns the result file prefix considered by analyze.
func (c *Config) AnalyzePrefix() string {
	if c.Analyze.Prefix != "" {
		return c.Analyze.Prefix
	}
	return DefaultAnalyzePrefix
}

// AnalyzeLimit returns how many ranked records analyze keeps.
func (c *Config) AnalyzeLimit() int {
	if c.Analyze.Limit > 0 {
		return c.Analyze.Limit
	}
	return DefaultAnalyzeLimit
}

// Timeframes returns the timeframe choices, falling back to defaults.
func (c *Config) Timeframes() []string {
	return orDefault(c.Options.Timeframes, DefaultTimeframes)
}

// DownloadTimeframes returns the timeframe choices for download-data. The defaults
// extend the plain timeframes with a few multi-value presets.
func (c *Config) DownloadTimeframes() []string {
	if len(c.Options.DownloadTimeframes) > 0 {
		return c.Options.DownloadTimeframes
	}
	out := append([]string(nil), c.Timeframes()...)
	return append(out, DefaultDownloadExtras...)
}

// Timeranges returns the timerange choices, falling back to defaults.
func (c *Config) Timeranges() []string {
	return orDefault(c.Options.Timeranges, DefaultTimeranges)
}

// Spaces returns the hyperopt space choices, falling back to defaults.
func (c *Config) Spaces() []string {
	return orDefault(c.Options.Spaces, DefaultSpaces)
}

// LossFunctions returns the hyperopt loss choices, falling back to defaults.
func (c *Config) LossFunctions() []string {
	return orDefault(c.Options.LossFunctions, DefaultLossFunctions)
}

func orDefault(v, def []string) []string {
	if len(v) > 0 {
		return v
	}
	return def
}

// LoadResult holds the parsed config and the discovered project root.
type LoadResult struct {
	Config *Config
	Root   string // directory containing user_data or .ftpilot; falls back to workspace
}

// Load reads the .ftpilot file from the project root.
// The project root is discovered by walking upward from workspace looking for a
// .ftpilot file or a user_data directory. A .env file next to it is loaded into the
// environment before overrides are applied. If no .ftpilot file exists, a default
// Config is returned.
func Load(workspace string) (*LoadResult, error) {
	root, err := findRoot(workspace)
	if err != nil {
		root = workspace
	}

	if err := loadDotEnv(filepath.Join(root, ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{}
	data, err := os.ReadFile(filepath.Join(root, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", FileName, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	if v, ok := os.LookupEnv(EnvProgram); ok && v != "" {
		cfg.Program = v
	}
	if v, ok := os.LookupEnv(EnvResultsDir); ok && v != "" {
		cfg.ResultsDir = v
	}
	return &LoadResult{Config: cfg, Root: root}, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// findRoot walks upward from dir looking for a .ftpilot file or user_data directory.
func findRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}
		if fi, err := os.Stat(filepath.Join(dir, "user_data")); err == nil && fi.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("project root not found")
		}
		dir = parent
	}
}
