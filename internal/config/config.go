// Package config holds the startup configuration of the dev server.
//
// A Config is assembled once at process start (defaults, then an optional
// config file, then environment, then command-line flags) and is never
// modified after it has been handed to the server.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default values used when nothing else is configured.
const (
	DefaultPort  = 8000
	DefaultRoot  = "public"
	DefaultIndex = "index.html"
	DefaultTitle = "Dev Server Started!"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvPort = "DEVSERVE_PORT"
	EnvRoot = "DEVSERVE_ROOT"
	EnvHost = "DEVSERVE_HOST"
)

// ErrInvalidPort is returned by Resolve when the port is outside 1-65535.
var ErrInvalidPort = errors.New("invalid port")

// Config is the server configuration.
type Config struct {
	// Port is the TCP port to listen on.
	Port int `toml:"port" yaml:"port"`
	// Host is the interface to bind. Empty means all interfaces.
	Host string `toml:"host" yaml:"host"`
	// Root is the directory files are served from. Resolve makes it absolute.
	Root string `toml:"root" yaml:"root"`
	// Index is the file served for a request to "/".
	Index string `toml:"index" yaml:"index"`
	// Title is printed in the startup banner.
	Title string `toml:"title" yaml:"title"`
	// MaxConns caps simultaneously accepted connections. Zero means no cap.
	MaxConns int `toml:"max_conns" yaml:"max_conns"`
	// RateLimit is the allowed requests per second per client. Zero disables limiting.
	RateLimit float64 `toml:"rate_limit" yaml:"rate_limit"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:  DefaultPort,
		Root:  DefaultRoot,
		Index: DefaultIndex,
		Title: DefaultTitle,
	}
}

// Load reads a TOML or YAML config file over the defaults.
// The format is chosen by file extension.
func Load(path string) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}

	return cfg, nil
}

// ApplyEnv overrides cfg from DEVSERVE_* variables.
//
// Values are taken from envFile first (a dotenv file, skipped if it does not
// exist) and then from the process environment, which wins.
func (c *Config) ApplyEnv(envFile string) error {
	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, key := range []string{EnvPort, EnvRoot, EnvHost} {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}

	if v, ok := vars[EnvPort]; ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvPort, v, ErrInvalidPort)
		}
		c.Port = port
	}
	if v, ok := vars[EnvRoot]; ok && v != "" {
		c.Root = v
	}
	if v, ok := vars[EnvHost]; ok {
		c.Host = v
	}
	return nil
}

// Resolve validates the configuration and makes Root absolute.
func (c *Config) Resolve() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d: %w", c.Port, ErrInvalidPort)
	}
	if c.MaxConns < 0 {
		return fmt.Errorf("max_conns must not be negative: %d", c.MaxConns)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative: %g", c.RateLimit)
	}
	if c.Index == "" {
		c.Index = DefaultIndex
	}
	if strings.ContainsAny(c.Index, `/\`) {
		return fmt.Errorf("index must be a file name, got %q", c.Index)
	}

	absRoot, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root %s: %w", c.Root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return fmt.Errorf("root directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root is not a directory: %s", absRoot)
	}
	c.Root = absRoot
	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
