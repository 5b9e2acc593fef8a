package main

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// TestMainBinary re-runs the test binary as docgen. The command-line
// arguments travel in BE_MAIN_ARGS so the test flag parser never sees them.
func TestMainBinary(t *testing.T) {
	if os.Getenv("BE_MAIN") == "1" {
		os.Args = append([]string{"docgen"}, strings.Fields(os.Getenv("BE_MAIN_ARGS"))...)
		main()
		return
	}

	tests := []struct {
		name     string
		args     []string
		wantExit int
	}{
		{name: "help command", args: []string{"--help"}, wantExit: 0},
		{name: "version command", args: []string{"version"}, wantExit: 0},
		{name: "invalid flag", args: []string{"--invalid-flag"}, wantExit: 1},
		{name: "missing input directory", args: []string{"-d", "does-not-exist"}, wantExit: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestMainBinary$")
			cmd.Env = append(os.Environ(), "BE_MAIN=1", "BE_MAIN_ARGS="+strings.Join(tt.args, " "))
			cmd.Dir = t.TempDir()

			err := cmd.Run()

			if tt.wantExit == 0 && err != nil {
				t.Errorf("Expected success but got error: %v", err)
			}
			if tt.wantExit == 1 {
				var exitErr *exec.ExitError
				if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
					t.Errorf("Expected exit code 1, got %v", err)
				}
			}
		})
	}
}
