// Package config loads settings from the environment and command-line flags.
// Flags override environment variables, which override defaults.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
)

// Config holds the settings shared by the CLI and the HTTP server.
type Config struct {
	HTTPAddr    string
	LogLevel    string
	LogFormat   string
	FontDirs    []string
	SystemFonts bool
	DefaultTape string
}

// Load reads the TM2_* environment variables.
func Load() *Config {
	return &Config{
		HTTPAddr:    getEnv("TM2_HTTP_ADDR", ":8080"),
		LogLevel:    getEnv("TM2_LOG_LEVEL", "info"),
		LogFormat:   getEnv("TM2_LOG_FORMAT", "json"),
		FontDirs:    splitList(getEnv("TM2_FONT_DIR", "")),
		SystemFonts: parseBool(getEnv("TM2_SYSTEM_FONTS", "true"), true),
		DefaultTape: getEnv("TM2_DEFAULT_TAPE", "SV36KN"),
	}
}

// RegisterFlags binds the common flags to c; current values become defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: json or console")
	fs.Var((*listValue)(&c.FontDirs), "font-dir", "comma-separated font directories for previews")
	fs.BoolVar(&c.SystemFonts, "system-fonts", c.SystemFonts, "also search platform font directories")
	fs.StringVar(&c.DefaultTape, "tape", c.DefaultTape, "tape profile name")
}

// ParseServerFlags loads the environment and applies server flags from args.
func ParseServerFlags(args []string) (*Config, error) {
	cfg := Load()
	fs := flag.NewFlagSet("tm2label-server", flag.ContinueOnError)
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

type listValue []string

func (l *listValue) String() string { return strings.Join(*l, ",") }

func (l *listValue) Set(v string) error {
	*l = splitList(v)
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(v string, def bool) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
