package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sourceplane/udpublish/internal/model"
)

const testSites = `apiVersion: udpublish.sourceplane.io/v1
kind: SiteRegistry
sites:
  - name: prod
    url: https://ucd.example.com
    user: admin
    adminUser: true
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func resetRunFile(t *testing.T) {
	runFile = ""
	t.Cleanup(func() { runFile = "" })
}

func TestValidateCommand(t *testing.T) {
	resetRunFile(t)
	dir := t.TempDir()
	sites := writeFile(t, dir, "sites.yaml", testSites)
	run := writeFile(t, dir, "run.yaml", `apiVersion: udpublish.sourceplane.io/v1
kind: PublishRun
metadata:
  name: web
spec:
  component: web
  version: "1.0"
`)
	bad := writeFile(t, dir, "bad.yaml", `apiVersion: udpublish.sourceplane.io/v1
kind: PublishRun
spec:
  version: "1.0"
`)

	rootCmd.SetArgs([]string{"validate", "-f", run, "--sites", sites})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	rootCmd.SetArgs([]string{"validate", "-f", bad, "--sites", sites})
	if err := rootCmd.Execute(); !errors.Is(err, model.ErrInvalidConfig) {
		t.Fatalf("validate bad file err = %v, want ErrInvalidConfig", err)
	}
}

func TestRunCommandDryRun(t *testing.T) {
	resetRunFile(t)
	dir := t.TempDir()
	sites := writeFile(t, dir, "sites.yaml", testSites)
	summary := filepath.Join(dir, "out", "summary.yaml")

	rootCmd.SetArgs([]string{
		"run", "--dry-run",
		"--sites", sites,
		"--component", "web",
		"--version", "1.0.1",
		"--base-dir", dir,
		"--summary", summary,
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("run --dry-run: %v", err)
	}
	if _, err := os.Stat(summary); err != nil {
		t.Fatalf("summary not written: %v", err)
	}
}

func TestLoadRunConfigFlagOverrides(t *testing.T) {
	resetRunFile(t)
	dir := t.TempDir()
	runFile = writeFile(t, dir, "run.yaml", `apiVersion: udpublish.sourceplane.io/v1
kind: PublishRun
metadata:
  name: web
spec:
  component: web
  version: "1.0"
  baseDir: `+dir+`
  deploy:
    enabled: true
    application: shop
    environment: qa
    process: deploy
`)
	flags := planCmd.Flags()
	if err := flags.Set("version", "2.0"); err != nil {
		t.Fatal(err)
	}
	if err := flags.Set("environment", "prod"); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadRunConfig(planCmd)
	if err != nil {
		t.Fatalf("loadRunConfig: %v", err)
	}
	if cfg.Version != "2.0" || cfg.DeployEnv != "prod" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Component != "web" || cfg.DeployApp != "shop" {
		t.Errorf("run file values lost: %+v", cfg)
	}
}
