package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port             int
	LogLevel         string
	DB               DB
	OperationTimeout time.Duration
	MigrateOnStart   bool
	RateLimit        RateLimit
	Kafka            Kafka
	CORS             CORS
	Pprof            Pprof
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres connection URL.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// RateLimit stores per-client rate limiting settings.
type RateLimit struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// Kafka stores driver change feed settings. Publishing is off when Brokers is empty.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether the change feed has enough settings to run.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0 && strings.TrimSpace(k.Topic) != ""
}

// CORS stores allowed browser origins. Empty disables the CORS middleware.
type CORS struct {
	AllowedOrigins []string
}

// Pprof stores debug profiling server settings.
type Pprof struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:             defaultPort,
		LogLevel:         envOr("LOG_LEVEL", defaultLogLevel),
		DB:               defaultDB,
		OperationTimeout: defaultOperationTimeout,
		MigrateOnStart:   true,
		RateLimit:        defaultRateLimit,
		Kafka:            Kafka{Topic: defaultDriverEventsTopic},
		Pprof:            Pprof{Addr: defaultPprofAddr},
	}

	if err := loadEnv(cfg); err != nil {
		return nil, err
	}

	fs := pflag.CommandLine
	if fs.Lookup("port") == nil {
		fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	if f := fs.Lookup("port"); f != nil && f.Changed {
		p, err := strconv.Atoi(f.Value.String())
		if err != nil {
			return nil, fmt.Errorf("parse flags: invalid port %q", f.Value.String())
		}
		cfg.Port = p
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	return cfg, nil
}

func loadEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = p
	}

	cfg.DB.Host = envOr("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envOr("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envOr("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envOr("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envOr("POSTGRES_DB", cfg.DB.Name)
	if p, err := strconv.Atoi(cfg.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid POSTGRES_PORT %q", cfg.DB.Port)
	}

	if v := strings.TrimSpace(os.Getenv("DB_OPERATION_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid DB_OPERATION_TIMEOUT %q", v)
		}
		cfg.OperationTimeout = d
	}

	if v := strings.TrimSpace(os.Getenv("MIGRATE_ON_START")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid MIGRATE_ON_START %q: %w", v, err)
		}
		cfg.MigrateOnStart = b
	}

	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_ENABLED %q: %w", v, err)
		}
		cfg.RateLimit.Enabled = b
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid RATE_LIMIT_RPS %q", v)
		}
		cfg.RateLimit.RPS = f
	}
	if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid RATE_LIMIT_BURST %q", v)
		}
		cfg.RateLimit.Burst = n
	}

	cfg.Kafka.Brokers = splitList(os.Getenv("KAFKA_BROKERS"))
	cfg.Kafka.Topic = envOr("KAFKA_DRIVER_EVENTS_TOPIC", cfg.Kafka.Topic)
	cfg.CORS.AllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	if v := strings.TrimSpace(os.Getenv("PPROF_ENABLED")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid PPROF_ENABLED %q: %w", v, err)
		}
		cfg.Pprof.Enabled = b
	}
	cfg.Pprof.Addr = envOr("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envOr("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envOr("PPROF_PASS", cfg.Pprof.Pass)
	return nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
