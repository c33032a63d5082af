package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"perch/internal/testsupport"
)

// writeTestConfig writes a minimal config file pointing all state at temp
// directories and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "perch.toml")
	content := fmt.Sprintf(`[paths]
log_dir = %q
state_dir = %q
`,
		filepath.Join(base, "logs"),
		filepath.Join(base, "state"),
	)
	testsupport.WriteFile(t, path, []byte(content))
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
