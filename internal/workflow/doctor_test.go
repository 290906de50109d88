package workflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestVersionCheck(t *testing.T) {
	var testCases = []struct {
		scenario string
		output   string
		min      string
		ok       bool
		detail   string
	}{
		{"no minimum", "freqtrade 2024.7.1\n", "", true, "2024.7.1"},
		{"satisfied", "freqtrade 2024.7.1\n", "2024.1", true, "2024.7.1"},
		{"short version", "2024.7\n", "2024.7.0", true, "2024.7.0"},
		{"too old", "freqtrade 2023.12\n", "2024.1", false, "2023.12.0 is older than 2024.1"},
		{"no version", "command not found\n", "", false, `no version in "command not found\n"`},
	}
	for _, tt := range testCases {
		t.Run(tt.scenario, func(t *testing.T) {
			c := versionCheck(tt.output, tt.min)
			if c.OK != tt.ok || c.Detail != tt.detail {
				t.Errorf("versionCheck(%q, %q) = %+v, want ok=%v detail=%q", tt.output, tt.min, c, tt.ok, tt.detail)
			}
		})
	}
}

func TestDoctor(t *testing.T) {
	s := newSession(t)
	program := filepath.Join(t.TempDir(), "freqtrade")
	if err := os.WriteFile(program, []byte("#!/bin/sh\necho freqtrade 2024.7.1\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	s.Program = program
	s.MinVersion = "2024.1"

	checks := (&Engine{Session: s}).Doctor(context.Background())
	if len(checks) != 5 {
		t.Fatalf("len(checks) = %d, want 5: %+v", len(checks), checks)
	}
	for _, c := range checks {
		if !c.OK {
			t.Errorf("check %s failed: %s", c.Name, c.Detail)
		}
	}
}

func TestDoctor_MissingProgram(t *testing.T) {
	s := newSession(t)
	s.Program = "nonexistent-binary-xyz-123"
	if err := os.Remove(s.ResultsDir); err != nil {
		t.Fatal(err)
	}

	checks := (&Engine{Session: s}).Doctor(context.Background())
	if len(checks) != 4 {
		t.Fatalf("len(checks) = %d, want 4: %+v", len(checks), checks)
	}
	if checks[2].OK {
		t.Error("results directory check should fail")
	}
	if checks[3].Name != "program" || checks[3].OK {
		t.Errorf("program check = %+v", checks[3])
	}
}
