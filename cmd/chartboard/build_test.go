package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunBuild_WritesDist(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "dist")

	configPath := writeConfig(t, fmt.Sprintf(`
title: Wigest
root: %s
build:
  out_dir: %s
  minify: true
`, filepath.Join(tmpDir, "no-sources"), outDir))

	output, err := executeCmd(t, "build", "-c", configPath)
	if err != nil {
		t.Fatalf("build command error = %v", err)
	}

	if !strings.Contains(output, "Built 2 files") {
		t.Errorf("output missing file count\nGot: %s", output)
	}

	for _, name := range []string{"index.html", filepath.Join("assets", "main.js")} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s in build output: %v", name, err)
		}
	}
}

func TestRunBuild_EnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "from-env")

	envPath := filepath.Join(tmpDir, ".env")
	if err := os.WriteFile(envPath, []byte("CHARTBOARD_TEST_OUT="+outDir+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Unsetenv("CHARTBOARD_TEST_OUT")
		_ = rootCmd.PersistentFlags().Set("env-file", "")
	})

	configPath := writeConfig(t, fmt.Sprintf(`
root: %s
build:
  out_dir: ${CHARTBOARD_TEST_OUT}
`, filepath.Join(tmpDir, "no-sources")))

	if _, err := executeCmd(t, "build", "-c", configPath, "--env-file", envPath); err != nil {
		t.Fatalf("build command error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "index.html")); err != nil {
		t.Errorf("expected index.html in %s: %v", outDir, err)
	}
}

func TestRunBuild_MissingEnvFile(t *testing.T) {
	t.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("env-file", "")
	})

	configPath := writeConfig(t, "title: Wigest\n")

	_, err := executeCmd(t, "build", "-c", configPath, "--env-file", "/nonexistent/.env")
	if err == nil || !strings.Contains(err.Error(), "failed to load env file") {
		t.Fatalf("build command error = %v, want env file error", err)
	}
}
