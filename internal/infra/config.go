package infra

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	AssetsDir        string
	ContentFile      string
	ProcessingDelay  time.Duration
	ResetDelay       time.Duration
	ScrollThreshold  int
	VisitorIdleTTL   time.Duration
	VisitorSweep     time.Duration
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		AssetsDir:        getEnv("ASSETS_DIR", "./public"),
		ContentFile:      os.Getenv("CONTENT_FILE"),
		ProcessingDelay:  time.Millisecond * time.Duration(getEnvInt("DONATION_PROCESSING_DELAY_MS", 1500)),
		ResetDelay:       time.Millisecond * time.Duration(getEnvInt("DONATION_RESET_DELAY_MS", 300)),
		ScrollThreshold:  getEnvInt("NAV_SCROLL_THRESHOLD_PX", 50),
		VisitorIdleTTL:   time.Minute * time.Duration(getEnvInt("VISITOR_IDLE_TTL_MINUTES", 30)),
		VisitorSweep:     time.Second * time.Duration(getEnvInt("VISITOR_SWEEP_INTERVAL_SECONDS", 60)),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Production reports whether the service runs with production settings.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

func (c *Config) validate() error {
	var errs []error
	if c.ProcessingDelay <= 0 {
		errs = append(errs, errors.New("DONATION_PROCESSING_DELAY_MS must be positive"))
	}
	if c.ResetDelay <= 0 {
		errs = append(errs, errors.New("DONATION_RESET_DELAY_MS must be positive"))
	}
	if c.ScrollThreshold <= 0 {
		errs = append(errs, errors.New("NAV_SCROLL_THRESHOLD_PX must be positive"))
	}
	if c.VisitorSweep <= 0 {
		errs = append(errs, errors.New("VISITOR_SWEEP_INTERVAL_SECONDS must be positive"))
	}
	if c.RateLimitPerMin < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must not be negative"))
	}
	if c.ContentFile != "" {
		if _, err := os.Stat(c.ContentFile); err != nil {
			errs = append(errs, fmt.Errorf("CONTENT_FILE: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
