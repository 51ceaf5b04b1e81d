package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Runtime holds process settings that are not model parameters.
type Runtime struct {
	ParamsFile string
	RatesDir   string
	Seed       int64 // 0 = use the params' favourite seed, else the clock
	DBPath     string
	Resume     bool
	Logging    LoggingConfig
	API        APIConfig
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string
	Format string // "text" or "json"
}

// APIConfig configures the read-only observation API. Port 0 disables it.
type APIConfig struct {
	Port           int
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadRuntime reads runtime settings from the environment, after loading an
// optional .env file from the working directory.
func LoadRuntime() (Runtime, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	seed, err := strconv.ParseInt(getEnv("LIVES_SEED", "0"), 10, 64)
	if err != nil {
		return Runtime{}, fmt.Errorf("LIVES_SEED: %w", err)
	}
	port, err := strconv.Atoi(getEnv("LIVES_API_PORT", "0"))
	if err != nil {
		return Runtime{}, fmt.Errorf("LIVES_API_PORT: %w", err)
	}
	rps, err := strconv.ParseFloat(getEnv("LIVES_RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return Runtime{}, fmt.Errorf("LIVES_RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("LIVES_RATE_LIMIT_BURST", "20"))
	if err != nil {
		return Runtime{}, fmt.Errorf("LIVES_RATE_LIMIT_BURST: %w", err)
	}

	return Runtime{
		ParamsFile: getEnv("LIVES_PARAMS_FILE", ""),
		RatesDir:   getEnv("LIVES_RATES_DIR", ""),
		Seed:       seed,
		DBPath:     getEnv("LIVES_DB_PATH", "data/lives.db"),
		Resume:     getEnv("LIVES_RESUME", "false") == "true",
		Logging: LoggingConfig{
			Level:  getEnv("LIVES_LOG_LEVEL", "info"),
			Format: getEnv("LIVES_LOG_FORMAT", "text"),
		},
		API: APIConfig{
			Port:           port,
			CORSOrigins:    splitList(getEnv("LIVES_CORS_ORIGINS", "http://localhost:3000")),
			RateLimitRPS:   rps,
			RateLimitBurst: burst,
		},
	}, nil
}

// LoadParams returns the defaults, or the named parameter file overlaid on them.
func (r Runtime) LoadParams() (Params, error) {
	if r.ParamsFile == "" {
		p := Defaults()
		return p, p.Validate()
	}
	return LoadFile(r.ParamsFile)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
