// Package config loads the service configuration from environment variables.
// Every key has a default; malformed values and failed checks are collected
// and reported together by Load.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported DB_DRIVER values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string // empty allows every origin
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry tracing settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT, host:port
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	GinMode           string // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // console writer instead of JSON
	LogRedact      bool   // scrub PII and tokens from access logs
	SwaggerEnabled bool
	APIBasePath    string

	// Storage
	DBDriver string // sqlite|postgres
	DBPath   string // sqlite file
	DBDSN    string // postgres DSN

	// Catalog seeding
	FixturesPath string // JSON or YAML dog list
	SeedOnStart  bool

	// Accounts
	BcryptCost int

	// Rate limiting
	RateRPS   float64
	RateBurst int

	CORS     CORSConfig
	Security SecurityConfig

	// IdempotencyTTL is how long an Idempotency-Key replays its first result.
	IdempotencyTTL time.Duration

	OTEL OTELConfig
}

// DBTarget returns the driver-specific connection target: the file path for
// sqlite, the DSN for postgres.
func (c Config) DBTarget() string {
	if c.DBDriver == DriverPostgres {
		return c.DBDSN
	}
	return c.DBPath
}

// MustLoad loads the configuration and panics if it is invalid.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the environment, applies defaults and normalization, and
// validates the result. The returned error joins every problem found.
func Load() (Config, error) {
	var env envReader
	cfg := Config{
		Port:              env.str("PORT", "8080"),
		ReadTimeout:       env.dur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: env.dur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      env.dur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       env.dur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    env.int("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(env.str("GIN_MODE", "release")),

		LogLevel:       strings.ToLower(env.str("LOG_LEVEL", "info")),
		LogPretty:      env.bool("LOG_PRETTY", false),
		LogRedact:      env.bool("LOG_REDACT", true),
		SwaggerEnabled: env.bool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(env.str("API_BASE_PATH", "/api")),

		DBDriver: strings.ToLower(env.str("DB_DRIVER", DriverSQLite)),
		DBPath:   env.str("DB_PATH", "pugorugh.db"),
		DBDSN:    env.str("DB_DSN", ""),

		FixturesPath: env.str("FIXTURES_PATH", "data/dog_details.json"),
		SeedOnStart:  env.bool("SEED_ON_START", false),

		BcryptCost: env.int("BCRYPT_COST", 10),

		RateRPS:   env.float("RATE_RPS", 5.0),
		RateBurst: env.int("RATE_BURST", 10),

		CORS: CORSConfig{
			AllowedOrigins: splitCSV(env.str("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: env.bool("ENABLE_HSTS", false),
			HSTSMaxAge: env.dur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		IdempotencyTTL: env.dur("IDEMPOTENCY_TTL", 24*time.Hour),

		OTEL: OTELConfig{
			Enabled:     env.bool("OTEL_ENABLED", false),
			Endpoint:    env.str("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    env.bool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: env.str("OTEL_SERVICE_NAME", "pugorugh-api"),
			SampleRatio: env.float("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	return cfg, errors.Join(append(env.errs, cfg.validate()...)...)
}

func (c Config) validate() []error {
	var errs []error
	check := func(ok bool, msg string) {
		if !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		check(false, "LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	check(strings.TrimSpace(c.Port) != "", "PORT must not be empty")
	check(c.ReadTimeout > 0 && c.ReadHeaderTimeout > 0 && c.WriteTimeout > 0 && c.IdleTimeout > 0,
		"timeouts must be positive durations")
	check(c.MaxHeaderBytes > 0, "MAX_HEADER_BYTES must be > 0")

	switch c.DBDriver {
	case DriverSQLite:
		check(strings.TrimSpace(c.DBPath) != "", "DB_PATH must not be empty")
	case DriverPostgres:
		check(strings.TrimSpace(c.DBDSN) != "", "DB_DSN is required when DB_DRIVER=postgres")
	default:
		check(false, "DB_DRIVER must be one of: sqlite, postgres")
	}

	check(!c.SeedOnStart || strings.TrimSpace(c.FixturesPath) != "",
		"FIXTURES_PATH must be set when SEED_ON_START is enabled")
	check(c.BcryptCost >= 4 && c.BcryptCost <= 31, "BCRYPT_COST must be in [4,31]")
	check(c.RateRPS >= 0, "RATE_RPS must be >= 0")
	check(c.RateBurst >= 1, "RATE_BURST must be >= 1")
	check(c.Security.HSTSMaxAge >= 0, "HSTS_MAX_AGE must be >= 0")
	check(c.IdempotencyTTL > 0, "IDEMPOTENCY_TTL must be > 0")
	check(c.OTEL.SampleRatio >= 0 && c.OTEL.SampleRatio <= 1, "OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	return errs
}

// envReader reads typed variables. Unset or empty variables take the
// default; unparsable ones take the default and record an error.
type envReader struct {
	errs []error
}

func (r *envReader) lookup(k string) (string, bool) {
	v, ok := os.LookupEnv(k)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r *envReader) fail(k, v, kind string) {
	r.errs = append(r.errs, fmt.Errorf("%s: %q is not a valid %s", k, v, kind))
}

func (r *envReader) str(k, def string) string {
	if v, ok := r.lookup(k); ok {
		return v
	}
	return def
}

func (r *envReader) int(k string, def int) int {
	v, ok := r.lookup(k)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		r.fail(k, v, "integer")
		return def
	}
	return i
}

func (r *envReader) float(k string, def float64) float64 {
	v, ok := r.lookup(k)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		r.fail(k, v, "number")
		return def
	}
	return f
}

func (r *envReader) bool(k string, def bool) bool {
	v, ok := r.lookup(k)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	r.fail(k, v, "boolean")
	return def
}

func (r *envReader) dur(k string, def time.Duration) time.Duration {
	v, ok := r.lookup(k)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		r.fail(k, v, "duration")
		return def
	}
	return d
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures a leading '/' and strips trailing ones; blank
// means root.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	return "/" + p
}
