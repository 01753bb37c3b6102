package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/polkiloo/couponhub/internal/domain/model"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress             string
	DatabaseURI            string
	JWTSecret              string
	TokenTTL               time.Duration
	ExternalTokenTTL       time.Duration
	GoogleClientID         string
	GoogleTokenInfoURL     string
	RedeemableCouponStatus model.CouponStatus
	ExpirySweepInterval    time.Duration
	ExpiryBatchSize        int
	ShutdownTimeout        time.Duration
	LogLevel               string
}

const (
	defaultRunAddress          = ":8080"
	defaultJWTSecret           = "change-me-in-production"
	defaultTokenTTL            = time.Hour
	defaultExternalTokenTTL    = 7 * 24 * time.Hour
	defaultGoogleTokenInfoURL  = "https://oauth2.googleapis.com/tokeninfo"
	defaultRedeemableStatus    = string(model.CouponStatusAvailable)
	defaultExpirySweepInterval = time.Minute
	defaultExpiryBatchSize     = 100
	defaultShutdownTimeout     = 10 * time.Second
	defaultLogLevel            = "info"
	defaultDBPort              = "5432"
	defaultDBSSLMode           = "disable"
)

// dotEnvFile is read on startup when present; real environment wins over it.
var dotEnvFile = ".env"

// Load parses configuration from flags, environment variables and an optional .env file.
func Load() (*Config, error) {
	lookup, err := withDotEnv(os.LookupEnv, dotEnvFile)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], lookup)
}

// UsesFallbackSecret reports whether tokens are signed with the built-in secret.
func (c *Config) UsesFallbackSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

type envLookup func(string) (string, bool)

func withDotEnv(lookup envLookup, path string) (envLookup, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          runAddress(lookup),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		JWTSecret:           getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:            getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ExternalTokenTTL:    getDuration(lookup, "EXTERNAL_TOKEN_TTL", defaultExternalTokenTTL),
		GoogleClientID:      getString(lookup, "GOOGLE_CLIENT_ID", ""),
		GoogleTokenInfoURL:  getString(lookup, "GOOGLE_TOKENINFO_URL", defaultGoogleTokenInfoURL),
		ExpirySweepInterval: getDuration(lookup, "EXPIRY_SWEEP_INTERVAL", defaultExpirySweepInterval),
		ExpiryBatchSize:     getInt(lookup, "EXPIRY_BATCH_SIZE", defaultExpiryBatchSize),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:            getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	flags := flag.NewFlagSet("couponhub", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		redeemableStr       = getString(lookup, "REDEEMABLE_COUPON_STATUS", defaultRedeemableStatus)
		tokenTTLStr         = cfg.TokenTTL.String()
		externalTokenTTLStr = cfg.ExternalTokenTTL.String()
		sweepIntervalStr    = cfg.ExpirySweepInterval.String()
		shutdownTimeoutStr  = cfg.ShutdownTimeout.String()
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	flags.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of tokens issued by password login")
	flags.StringVar(&externalTokenTTLStr, "external-token-ttl", externalTokenTTLStr, "Lifetime of tokens issued by Google login")
	flags.StringVar(&cfg.GoogleClientID, "google-client-id", cfg.GoogleClientID, "Expected audience of Google ID tokens")
	flags.StringVar(&redeemableStr, "redeemable-status", redeemableStr, "Coupon status listed as redeemable")
	flags.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between coupon expiry sweeps")
	flags.IntVar(&cfg.ExpiryBatchSize, "sweep-batch", cfg.ExpiryBatchSize, "Maximum coupons expired per statement")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ExternalTokenTTL, err = time.ParseDuration(externalTokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid external token ttl: %w", err)
	}

	if cfg.ExpirySweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg.RedeemableCouponStatus = model.CouponStatus(strings.ToLower(strings.TrimSpace(redeemableStr)))
	if !cfg.RedeemableCouponStatus.Valid() {
		return nil, fmt.Errorf("invalid redeemable coupon status %q", redeemableStr)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ExternalTokenTTL <= 0 {
		cfg.ExternalTokenTTL = defaultExternalTokenTTL
	}

	if cfg.ExpirySweepInterval <= 0 {
		cfg.ExpirySweepInterval = defaultExpirySweepInterval
	}

	if cfg.ExpiryBatchSize <= 0 {
		cfg.ExpiryBatchSize = defaultExpiryBatchSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		if cfg.DatabaseURI, err = databaseURIFromParts(lookup); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func runAddress(lookup envLookup) string {
	if v, ok := lookup("RUN_ADDRESS"); ok && v != "" {
		return v
	}
	if port, ok := lookup("PORT"); ok && port != "" {
		return ":" + port
	}
	return defaultRunAddress
}

// databaseURIFromParts assembles a DSN from DB_* variables.
func databaseURIFromParts(lookup envLookup) (string, error) {
	host := getString(lookup, "DB_HOST", "")
	name := getString(lookup, "DB_NAME", "")
	user := getString(lookup, "DB_USER", "")
	if host == "" || name == "" || user == "" {
		return "", fmt.Errorf("database URI must be provided")
	}

	dsn := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, getString(lookup, "DB_PORT", defaultDBPort)),
		Path:   "/" + name,
	}
	if password, ok := lookup("DB_PASSWORD"); ok && password != "" {
		dsn.User = url.UserPassword(user, password)
	} else {
		dsn.User = url.User(user)
	}
	dsn.RawQuery = url.Values{"sslmode": {getString(lookup, "DB_SSLMODE", defaultDBSSLMode)}}.Encode()

	return dsn.String(), nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
