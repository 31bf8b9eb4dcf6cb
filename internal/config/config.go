// Package config centralizes process configuration. All tunables are sourced
// from command-line flags with environment-variable fallbacks, so `-help`
// shows every knob and container deployments can set everything through the
// environment.
//
// Typical usage:
//
//	cfg := config.Load() // reads os.Args and os.Environ
//
// For tests, prefer LoadFromArgs to keep them hermetic:
//
//	fs := flag.NewFlagSet("test", flag.ContinueOnError)
//	getenv := func(k string) string { return testEnv[k] }
//	cfg := config.LoadFromArgs(fs, getenv, []string{"-port=8080"})
package config

import (
	"flag"
	"fmt"
	"os"
)

// Config holds all process configuration. Fields are plain values, so the
// struct can be copied freely after construction.
type Config struct {
	// Env is the deployment mode. "production" selects the networked
	// backend; anything else runs on the embedded one.
	Env string

	// DBDriver overrides the backend chosen by Env ("sqlite", "postgres",
	// "mysql", "mssql"). Empty means "derive from Env".
	DBDriver string

	// DSN is the full connection string for networked backends. For
	// Postgres it may be left empty and assembled from the discrete parts
	// below.
	DSN        string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// SQLitePath is the embedded database file.
	SQLitePath string

	// Port is the HTTP listen port.
	Port string

	// StaticDir optionally serves an on-disk front end instead of the
	// embedded page.
	StaticDir string
}

// LoadFromArgs builds a Config by defining flags on fs, seeding each flag's
// default from getenv, and then parsing args. Environment values seed the
// defaults; explicit CLI flags override them.
func LoadFromArgs(fs *flag.FlagSet, getenv func(string) string, args []string) *Config {
	cfg := &Config{}

	envOr := func(k, d string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return d
	}

	fs.StringVar(&cfg.Env, "env", envOr("APP_ENV", "development"), "Deployment mode: 'production' uses the networked database")
	fs.StringVar(&cfg.DBDriver, "db_driver", getenv("DB_DRIVER"), "Storage backend override: sqlite, postgres, mysql, or mssql")
	fs.StringVar(&cfg.DSN, "dsn", getenv("DB_DSN"), "Full DSN for networked backends")
	fs.StringVar(&cfg.DBUser, "db_user", envOr("DB_USER", "user"), "DB user (Postgres convenience)")
	fs.StringVar(&cfg.DBPassword, "db_password", envOr("DB_PASSWORD", "password"), "DB password (Postgres convenience)")
	fs.StringVar(&cfg.DBHost, "db_host", envOr("DB_HOST", "localhost"), "DB host (Postgres convenience)")
	fs.StringVar(&cfg.DBPort, "db_port", envOr("DB_PORT", "5432"), "DB port (Postgres convenience)")
	fs.StringVar(&cfg.DBName, "db_name", envOr("DB_NAME", "vehicles"), "DB name (Postgres convenience)")
	fs.StringVar(&cfg.SQLitePath, "sqlite_path", envOr("SQLITE_PATH", "vehicles.db"), "SQLite database file")
	fs.StringVar(&cfg.Port, "port", envOr("PORT", "3001"), "HTTP listen port")
	fs.StringVar(&cfg.StaticDir, "static_dir", getenv("STATIC_DIR"), "Optional directory of static front-end files")

	if args == nil {
		args = []string{}
	}
	_ = fs.Parse(args)
	return cfg
}

// Load is the production entry point: process flags, real environment.
func Load() *Config {
	return LoadFromArgs(flag.CommandLine, os.Getenv, os.Args[1:])
}

// Driver resolves the storage backend: an explicit override wins, otherwise
// production means Postgres and everything else means the embedded file.
func (c *Config) Driver() string {
	if c.DBDriver != "" {
		return c.DBDriver
	}
	if c.Env == "production" {
		return "postgres"
	}
	return "sqlite"
}

// StoreDSN resolves the connection string for the selected backend.
func (c *Config) StoreDSN() string {
	switch c.Driver() {
	case "sqlite":
		return c.SQLitePath
	case "postgres":
		if c.DSN != "" {
			return c.DSN
		}
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	default:
		return c.DSN
	}
}

// Addr is the HTTP listen address derived from Port.
func (c *Config) Addr() string { return ":" + c.Port }
