package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config contains runtime settings shared by the todo and storebench commands.
type Config struct {
	TodoFile string

	LogLevel  string
	LogFormat string

	BenchIterations       int
	BenchNameBytes        int
	BenchDB               string
	BenchMetricsOut       string
	BenchMetricsNamespace string
	BenchFormats          []string
}

// Load reads environment variables and applies defaults.
func Load() (Config, error) {
	cfg := Config{
		TodoFile:              envOrDefault("TODO_FILE", "todos.bin"),
		LogLevel:              envOrDefault("LOG_LEVEL", "info"),
		LogFormat:             envOrDefault("LOG_FORMAT", "console"),
		BenchDB:               strings.TrimSpace(os.Getenv("BENCH_DB")),
		BenchMetricsOut:       strings.TrimSpace(os.Getenv("BENCH_METRICS_OUT")),
		BenchMetricsNamespace: envOrDefault("BENCH_METRICS_NAMESPACE", "storebench"),
		BenchFormats:          splitList(envOrDefault("BENCH_FORMATS", "borsh,wire,json")),
	}

	var err error
	// 368 bytes matches a 23-byte payload name repeated 16 times.
	if cfg.BenchIterations, err = positiveInt("BENCH_ITERATIONS", 1000); err != nil {
		return Config{}, err
	}
	if cfg.BenchNameBytes, err = positiveInt("BENCH_NAME_BYTES", 368); err != nil {
		return Config{}, err
	}

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return Config{}, fmt.Errorf("LOG_FORMAT must be console or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func positiveInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %d", key, n)
	}
	return n, nil
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
