package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/f4ah6o/devserve/internal/config"
	"github.com/jessevdk/go-flags"
)

func parseArgs(t *testing.T, args ...string) *options {
	t.Helper()
	var opts options
	if _, err := flags.NewParser(&opts, flags.None).ParseArgs(args); err != nil {
		t.Fatalf("ParseArgs(%v) error = %v", args, err)
	}
	return &opts
}

func TestBuildConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	siteA := filepath.Join(dir, "a")
	siteB := filepath.Join(dir, "b")
	for _, d := range []string{siteA, siteB} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	cfgFile := filepath.Join(dir, "devserve.toml")
	content := "port = 9000\nroot = \"" + filepath.ToSlash(siteA) + "\"\ntitle = \"From File\"\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	noEnv := filepath.Join(dir, "absent.env")

	tests := []struct {
		name      string
		args      []string
		env       map[string]string
		wantPort  int
		wantRoot  string
		wantTitle string
	}{
		{
			name:      "Config file",
			args:      []string{"-c", cfgFile, "--env-file", noEnv},
			wantPort:  9000,
			wantRoot:  siteA,
			wantTitle: "From File",
		},
		{
			name:      "Environment over config file",
			args:      []string{"-c", cfgFile, "--env-file", noEnv},
			env:       map[string]string{config.EnvPort: "9100"},
			wantPort:  9100,
			wantRoot:  siteA,
			wantTitle: "From File",
		},
		{
			name:      "Flags over everything",
			args:      []string{"-c", cfgFile, "--env-file", noEnv, "-p", "9200", "-d", siteB, "--title", "Flag"},
			env:       map[string]string{config.EnvPort: "9100"},
			wantPort:  9200,
			wantRoot:  siteB,
			wantTitle: "Flag",
		},
		{
			name:      "Defaults with dir flag",
			args:      []string{"--env-file", noEnv, "--dir", siteB},
			wantPort:  config.DefaultPort,
			wantRoot:  siteB,
			wantTitle: config.DefaultTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := buildConfig(parseArgs(t, tt.args...))
			if err != nil {
				t.Fatalf("buildConfig() error = %v", err)
			}
			if cfg.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", cfg.Port, tt.wantPort)
			}
			if cfg.Root != tt.wantRoot {
				t.Errorf("Root = %q, want %q", cfg.Root, tt.wantRoot)
			}
			if cfg.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", cfg.Title, tt.wantTitle)
			}
		})
	}
}

func TestBuildConfigRejectsMissingRoot(t *testing.T) {
	dir := t.TempDir()
	opts := parseArgs(t, "--env-file", filepath.Join(dir, "absent.env"), "-d", filepath.Join(dir, "nope"))
	if _, err := buildConfig(opts); err == nil {
		t.Error("buildConfig() should fail for a missing root")
	}
}
