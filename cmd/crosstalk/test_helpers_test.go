package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"crosstalk/internal/timing"
	"crosstalk/internal/wavio"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	tracksDir  string
	outputDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		tracksDir:  filepath.Join(base, "tracks"),
		outputDir:  filepath.Join(base, "out"),
	}
	if err := os.MkdirAll(env.tracksDir, 0o755); err != nil {
		t.Fatalf("mkdir tracks: %v", err)
	}

	content := fmt.Sprintf(`[paths]
audiotracks_dir = %q
output_dir = %q
log_dir = %q

[history]
enabled = true
path = %q

[logging]
format = "json"
level = "error"
`,
		env.tracksDir,
		env.outputDir,
		filepath.Join(base, "logs"),
		filepath.Join(base, "history.db"),
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return env
}

func (env *cliTestEnv) writeTrack(t *testing.T, name string, sampleRate, numSamples int) {
	t.Helper()
	writer, err := wavio.NewWriter(filepath.Join(env.tracksDir, name), sampleRate, 1)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	samples := make([]int16, numSamples)
	for i := range samples {
		samples[i] = 250
	}
	if err := writer.WriteInt16(samples); err != nil {
		t.Fatalf("write samples: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
}

func (env *cliTestEnv) writeTiming(t *testing.T, name string, turns []timing.Turn) string {
	t.Helper()
	path := filepath.Join(env.baseDir, name)
	if err := timing.Save(path, turns); err != nil {
		t.Fatalf("save timing: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
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
