package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FromRoot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("version: 1\ntimeout: 20m\nworkers: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Root != dir {
		t.Errorf("Root = %q, want %q", res.Root, dir)
	}
	if res.Config.Version != 1 {
		t.Errorf("Config.Version = %d, want 1", res.Config.Version)
	}
	if got := res.Config.Timeout(); got != 20*time.Minute {
		t.Errorf("Timeout() = %v, want 20m", got)
	}
	if got := res.Config.WorkerCount(); got != 2 {
		t.Errorf("WorkerCount() = %d, want 2", got)
	}
}

func TestLoad_FromSubdirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "user_data", "strategies"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Load(filepath.Join(root, "user_data", "strategies"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Root != root {
		t.Errorf("Root = %q, want %q", res.Root, root)
	}
}

func TestLoad_NoRoot(t *testing.T) {
	dir := t.TempDir()

	res, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Root != dir {
		t.Errorf("Root = %q, want %q (fallback to workspace)", res.Root, dir)
	}
	if res.Config.RawTimeout != "" {
		t.Errorf("expected default config, got RawTimeout = %q", res.Config.RawTimeout)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("workers: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("program: freqtrade\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvProgram, "/opt/ft/bin/freqtrade")

	res, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Config.Program != "/opt/ft/bin/freqtrade" {
		t.Errorf("Program = %q, want env override", res.Config.Program)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "user_data"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvResultsDir+"=/var/ft/results\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Registers cleanup that restores the unset state after godotenv sets it.
	t.Setenv(EnvResultsDir, "")
	os.Unsetenv(EnvResultsDir)

	res, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Config.ResultsDir != "/var/ft/results" {
		t.Errorf("ResultsDir = %q, want value from .env", res.Config.ResultsDir)
	}
}

func TestDefaults(t *testing.T) {
	c := &Config{}
	if c.Timeout() != DefaultTimeout {
		t.Errorf("Timeout() = %v, want %v", c.Timeout(), DefaultTimeout)
	}
	if c.TaskTimeout() != DefaultTaskTimeout {
		t.Errorf("TaskTimeout() = %v, want %v", c.TaskTimeout(), DefaultTaskTimeout)
	}
	if c.NameLength() != 180 {
		t.Errorf("NameLength() = %d, want 180", c.NameLength())
	}
	if len(c.DownloadTimeframes()) != len(DefaultTimeframes)+len(DefaultDownloadExtras) {
		t.Errorf("DownloadTimeframes() = %v", c.DownloadTimeframes())
	}
	c.RawTimeout = "not-a-duration"
	if c.Timeout() != DefaultTimeout {
		t.Errorf("invalid timeout should fall back to default, got %v", c.Timeout())
	}
}

func TestSession(t *testing.T) {
	c := &Config{ResultsDir: "/abs/results"}
	s := c.Session("/project")
	if s.StrategiesDir != filepath.Join("/project", DefaultStrategiesDir) {
		t.Errorf("StrategiesDir = %q", s.StrategiesDir)
	}
	if s.ResultsDir != "/abs/results" {
		t.Errorf("ResultsDir = %q, want /abs/results", s.ResultsDir)
	}
	if s.Program != DefaultProgram {
		t.Errorf("Program = %q", s.Program)
	}

	s2 := s.WithConfigFile("config.json")
	if s.ConfigFile != "" {
		t.Error("WithConfigFile mutated the receiver")
	}
	if got, want := s2.ConfigPath(), filepath.Join("/project", "user_data", "config.json"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
	if s2.WithWorkers(0).Workers != DefaultWorkers {
		t.Error("WithWorkers(0) should keep the current value")
	}
}

func TestSession_Require(t *testing.T) {
	root := t.TempDir()
	s := (&Config{}).Session(root)
	err := s.Require(Strategies)
	if !errors.Is(err, ErrConfigurationMissing) {
		t.Fatalf("Require() = %v, want ErrConfigurationMissing", err)
	}
	if err := os.MkdirAll(s.StrategiesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := s.Require(Strategies, Configs); err != nil {
		t.Errorf("Require() = %v, want nil", err)
	}
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	props, ok := doc["properties"].(map[string]any)
	if !ok {
		t.Fatalf("schema has no properties: %s", data)
	}
	if _, ok := props["task_timeout"]; !ok {
		t.Errorf("schema should use yaml field names, got keys %v", props)
	}
}
