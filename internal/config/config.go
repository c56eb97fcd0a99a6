package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

// Config holds the server settings. Flags win over environment variables,
// which win over defaults.
type Config struct {
	Addr         string
	AllowOrigins string
	LogLevel     log.Level
	WSBufferSize int
}

var ErrInvalidConfig = errors.New("invalid configuration")

// Load parses args (without the program name).
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", getenv("MOVEGEN_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", getenv("MOVEGEN_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	level := fs.String("log-level", getenv("MOVEGEN_LOG_LEVEL", "info"), "trace, debug, info, warn or error")
	buffer := fs.Int("ws-buffer", getenvInt("MOVEGEN_WS_BUFFER", 1024), "websocket read/write buffer size")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	lvl, err := ParseLevel(*level)
	if err != nil {
		return Config{}, err
	}
	if *buffer <= 0 {
		return Config{}, fmt.Errorf("%w: ws-buffer must be positive, got %d", ErrInvalidConfig, *buffer)
	}

	return Config{
		Addr:         *addr,
		AllowOrigins: *origins,
		LogLevel:     lvl,
		WSBufferSize: *buffer,
	}, nil
}

// Origins splits AllowOrigins into trimmed, non-empty entries.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}
