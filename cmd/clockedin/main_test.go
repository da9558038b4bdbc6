package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/clocked-in/internal/games/clockedin/levels"
)

// execute runs the root command with args and restores the global flags
// afterwards.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		flagLevel = levels.DefaultID
		flagLogLevel = "info"
		flagLogFile = ""
		flagFrames = 0
		flagScript = ""
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs(args)
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	return rootCmd.Execute()
}

func TestSimulateReturnsLevelError(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")

	err := execute(t, "simulate", "--level", "missing", "--log-file", logPath)
	if !errors.Is(err, levels.ErrNotFound) {
		t.Fatalf("Execute() error = %v, want %v", err, levels.ErrNotFound)
	}
	if _, statErr := os.Stat(logPath); statErr != nil {
		t.Errorf("log file not created: %v", statErr)
	}
}

func TestSimulateWritesLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")

	if err := execute(t, "simulate", "--frames", "1", "--log-file", logPath); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, want := range []string{"level loaded", "run="} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file missing %q:\n%s", want, data)
		}
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad log level", []string{"simulate", "--log-level", "loud"}, "log level"},
		{"validate without files", []string{"levels", "validate"}, "no level files given"},
		{"play unknown level", []string{"play", "--mute", "--level", "missing"}, "level not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Execute(%v) error = %v, want %q", tt.args, err, tt.want)
			}
		})
	}
}
