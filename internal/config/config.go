// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// DefaultCron runs one cycle nightly at 01:00.
const DefaultCron = "0 1 * * *"

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Source        SourceConfig        `yaml:"source"`
	Worker        WorkerConfig        `yaml:"worker"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Tracing       TracingConfig       `yaml:"tracing"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the operational HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s pool_max_conns=%d",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode, d.PoolSize,
	)
}

// SourceConfig defines the catalog price source endpoints and client policy.
type SourceConfig struct {
	BaseURL   string          `yaml:"base_url"`
	PinURL    string          `yaml:"pin_url"`
	PriceURL  string          `yaml:"price_url"`
	UserAgent string          `yaml:"user_agent"`
	Timeout   time.Duration   `yaml:"timeout"`
	Retries   int             `yaml:"retries"`    // transient failures only; default 0
	RetryWait time.Duration   `yaml:"retry_wait"` // initial backoff between retries
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines outbound request pacing.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// WorkerConfig defines cycle fan-out and budget refill settings.
type WorkerConfig struct {
	Concurrency  int           `yaml:"concurrency"`
	RefillBudget int           `yaml:"refill_budget"` // 0 disables refills
	CycleTimeout time.Duration `yaml:"cycle_timeout"`
}

// ScheduleConfig defines when cycles run. Cron wins when both are set.
type ScheduleConfig struct {
	Cron     string        `yaml:"cron"`
	Interval time.Duration `yaml:"interval"`
}

// Spec returns the robfig/cron schedule expression.
func (s *ScheduleConfig) Spec() string {
	if s.Cron != "" {
		return s.Cron
	}
	return "@every " + s.Interval.String()
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Email   EmailConfig   `yaml:"email"`
	Discord DiscordConfig `yaml:"discord"`
	AMQP    AMQPConfig    `yaml:"amqp"`
}

// EmailConfig defines SMTP delivery settings.
type EmailConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	From     string        `yaml:"from"`
	Subject  string        `yaml:"subject"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// AMQPConfig defines the message broker alerts are published to.
type AMQPConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
	Queue    string `yaml:"queue"`
}

// TracingConfig defines OpenTelemetry export settings.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. A .env file next to the config is loaded
// first; variables already set in the environment take precedence.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applySourceDefaults(&cfg.Source)
	applyWorkerDefaults(&cfg.Worker)
	applyScheduleDefaults(&cfg.Schedule)
	applyNotificationDefaults(&cfg.Notifications)
	applyTracingDefaults(&cfg.Tracing)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 25
	}
}

func applySourceDefaults(s *SourceConfig) {
	if s.BaseURL == "" {
		s.BaseURL = "https://www.jiomart.com"
	}
	if s.PinURL == "" {
		s.PinURL = s.BaseURL + "/mst/rest/v1/5/pin/"
	}
	if s.PriceURL == "" {
		s.PriceURL = s.BaseURL + "/catalog/productdetails/get/"
	}
	if s.UserAgent == "" {
		s.UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
			"(KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if s.RetryWait == 0 {
		s.RetryWait = time.Second
	}
	if s.RateLimit.PerSecond == 0 {
		s.RateLimit.PerSecond = 10
	}
	if s.RateLimit.Burst == 0 {
		s.RateLimit.Burst = 20
	}
}

func applyWorkerDefaults(w *WorkerConfig) {
	if w.Concurrency == 0 {
		w.Concurrency = 20
	}
	if w.CycleTimeout == 0 {
		w.CycleTimeout = 2 * time.Hour
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.Cron == "" && s.Interval == 0 {
		s.Cron = DefaultCron
	}
}

func applyNotificationDefaults(n *NotificationsConfig) {
	if n.Email.Host == "" {
		n.Email.Host = "smtp.gmail.com"
	}
	if n.Email.Port == 0 {
		n.Email.Port = 587
	}
	if n.Email.Subject == "" {
		n.Email.Subject = "Price Drop Alert From JioMart"
	}
	if n.Email.Timeout == 0 {
		n.Email.Timeout = 20 * time.Second
	}
	if n.Email.From == "" {
		n.Email.From = n.Email.Username
	}
	if n.AMQP.Queue == "" {
		n.AMQP.Queue = "price.alerts"
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "pricewatch"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	if cfg.Source.Timeout < 0 {
		errs = append(errs, fmt.Errorf("source.timeout must be positive"))
	}
	if cfg.Source.Retries < 0 {
		errs = append(errs, fmt.Errorf("source.retries must not be negative"))
	}

	if cfg.Worker.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("worker.concurrency must be at least 1"))
	}
	if cfg.Worker.RefillBudget < 0 {
		errs = append(errs, fmt.Errorf("worker.refill_budget must not be negative"))
	}

	if cfg.Schedule.Cron != "" {
		if _, err := cron.ParseStandard(cfg.Schedule.Cron); err != nil {
			errs = append(errs, fmt.Errorf("schedule.cron %q is invalid: %w", cfg.Schedule.Cron, err))
		}
	} else if cfg.Schedule.Interval < time.Minute {
		errs = append(errs, fmt.Errorf("schedule.interval must be at least 1m"))
	}

	n := &cfg.Notifications
	if n.Email.Enabled && n.Email.From == "" {
		errs = append(errs, fmt.Errorf("notifications.email.from or username is required when email is enabled"))
	}
	if n.Discord.Enabled && n.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"))
	}
	if n.AMQP.Enabled && n.AMQP.URL == "" {
		errs = append(errs, fmt.Errorf("notifications.amqp.url is required when amqp is enabled"))
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be between 0 and 1"))
	}

	return errors.Join(errs...)
}
