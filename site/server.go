// Package main provides a simple static file server for local development.
package main

import (
	"errors"
	"log"
	"os"

	"github.com/f4ah6o/devserve/internal/config"
	"github.com/f4ah6o/devserve/internal/server"
	"github.com/jessevdk/go-flags"
)

type options struct {
	Port      *int     `short:"p" long:"port" description:"Port to serve on (default 8000)"`
	Dir       *string  `short:"d" long:"dir" description:"Directory to serve (default ./public)"`
	Host      *string  `long:"host" description:"Interface to bind, all interfaces if empty"`
	Index     *string  `long:"index" description:"File served for /"`
	Title     *string  `long:"title" description:"Title shown in the startup banner"`
	MaxConns  *int     `long:"max-conns" description:"Maximum simultaneous connections, 0 for no limit"`
	RateLimit *float64 `long:"rate-limit" description:"Requests per second allowed per client, 0 to disable"`
	Config    string   `short:"c" long:"config" description:"TOML or YAML config file"`
	EnvFile   string   `long:"env-file" default:".env" description:"dotenv file with DEVSERVE_* settings"`
}

// buildConfig layers defaults, config file, environment and flags, in that order.
func buildConfig(opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(opts.EnvFile); err != nil {
		return nil, err
	}

	if opts.Port != nil {
		cfg.Port = *opts.Port
	}
	if opts.Dir != nil {
		cfg.Root = *opts.Dir
	}
	if opts.Host != nil {
		cfg.Host = *opts.Host
	}
	if opts.Index != nil {
		cfg.Index = *opts.Index
	}
	if opts.Title != nil {
		cfg.Title = *opts.Title
	}
	if opts.MaxConns != nil {
		cfg.MaxConns = *opts.MaxConns
	}
	if opts.RateLimit != nil {
		cfg.RateLimit = *opts.RateLimit
	}

	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := buildConfig(&opts)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	srv := server.New(cfg, os.Stdout)
	if err := srv.ListenAndServe(); err != nil {
		var bindErr *server.BindError
		if errors.As(err, &bindErr) {
			log.Fatalf("Failed to start server: %v", bindErr)
		}
		log.Fatalf("Server error: %v", err)
	}
}
