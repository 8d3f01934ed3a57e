package config

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

const (
	// MinJWTSecretLength минимальная длина HMAC ключа (256 бит для HS256)
	MinJWTSecretLength = 32

	placeholderJWTSecret = "change-me"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Clinic    ClinicConfig    `toml:"clinic"`
	Lifecycle LifecycleConfig `toml:"lifecycle"`
	Mailer    MailerConfig    `toml:"mailer"`
	Redis     RedisConfig     `toml:"redis"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения для golang-migrate
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ClinicConfig календарь и брендирование клиники
type ClinicConfig struct {
	Name               string   `toml:"name"`
	Address            string   `toml:"address"`
	Phone              string   `toml:"phone"`
	Email              string   `toml:"email"`
	WebsiteURL         string   `toml:"website_url"`
	Timezone           string   `toml:"timezone"`
	TimeSlots          []string `toml:"time_slots"`
	ClosedWeekdays     []string `toml:"closed_weekdays"`
	AdvanceBookingDays int      `toml:"advance_booking_days"`

	location *time.Location
	closed   []time.Weekday
}

// Location часовой пояс клиники (заполняется в Validate)
func (c ClinicConfig) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// Weekdays дни недели, в которые клиника закрыта (заполняется в Validate)
func (c ClinicConfig) Weekdays() []time.Weekday {
	return c.closed
}

type LifecycleConfig struct {
	RequireCancellationReason bool   `toml:"require_cancellation_reason"`
	DefaultCancellationReason string `toml:"default_cancellation_reason"`
}

type MailerConfig struct {
	// Provider sendgrid, ses или log
	Provider       string `toml:"provider"`
	FromEmail      string `toml:"from_email"`
	FromName       string `toml:"from_name"`
	SendGridAPIKey string `toml:"sendgrid_api_key"`
	SendGridHost   string `toml:"sendgrid_host"`
	SESRegion      string `toml:"ses_region"`
	Timeout        int    `toml:"timeout"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Channel  string `toml:"channel"`
}

type AuthConfig struct {
	JWTSecret      string   `toml:"jwt_secret"`
	Issuer         string   `toml:"issuer"`
	OperatorEmails []string `toml:"operator_emails"`
	TokenTTLHours  int      `toml:"token_ttl_hours"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerMinute float64 `toml:"requests_per_minute"`
	Burst             int     `toml:"burst"`
	// TrustedProxies CIDR балансировщиков, чьему X-Forwarded-For можно верить
	TrustedProxies []string `toml:"trusted_proxies"`

	proxies []netip.Prefix
}

// Proxies разобранные trusted_proxies (заполняется в Validate)
func (c RateLimitConfig) Proxies() []netip.Prefix {
	return c.proxies
}

// Load читает .env (если есть), затем TOML файл, применяет значения
// по умолчанию и переопределения из окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("SENDGRID_API_KEY"); v != "" {
		c.Mailer.SendGridAPIKey = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("OPERATOR_EMAILS"); v != "" {
		c.Auth.OperatorEmails = splitList(v)
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate проверяет конфигурацию и вычисляет производные поля
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if len(c.Clinic.TimeSlots) == 0 {
		return fmt.Errorf("%w: clinic.time_slots must not be empty", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.Clinic.TimeSlots))
	for _, slot := range c.Clinic.TimeSlots {
		if strings.TrimSpace(slot) == "" {
			return fmt.Errorf("%w: clinic.time_slots contains an empty label", ErrInvalidConfig)
		}
		if _, dup := seen[slot]; dup {
			return fmt.Errorf("%w: clinic.time_slots contains duplicate %q", ErrInvalidConfig, slot)
		}
		seen[slot] = struct{}{}
	}
	if c.Clinic.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: clinic.advance_booking_days must not be negative", ErrInvalidConfig)
	}

	loc, err := time.LoadLocation(c.Clinic.Timezone)
	if err != nil {
		return fmt.Errorf("%w: clinic.timezone %q: %v", ErrInvalidConfig, c.Clinic.Timezone, err)
	}
	c.Clinic.location = loc

	c.Clinic.closed = c.Clinic.closed[:0]
	for _, name := range c.Clinic.ClosedWeekdays {
		day, ok := parseWeekday(name)
		if !ok {
			return fmt.Errorf("%w: clinic.closed_weekdays: unknown day %q", ErrInvalidConfig, name)
		}
		c.Clinic.closed = append(c.Clinic.closed, day)
	}

	if !c.Lifecycle.RequireCancellationReason && strings.TrimSpace(c.Lifecycle.DefaultCancellationReason) == "" {
		return fmt.Errorf("%w: lifecycle.default_cancellation_reason is required when reasons are optional", ErrInvalidConfig)
	}

	switch c.Mailer.Provider {
	case "log":
	case "sendgrid":
		if c.Mailer.SendGridAPIKey == "" {
			return fmt.Errorf("%w: mailer.sendgrid_api_key is required for sendgrid", ErrInvalidConfig)
		}
	case "ses":
		if c.Mailer.SESRegion == "" {
			return fmt.Errorf("%w: mailer.ses_region is required for ses", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: mailer.provider %q is not supported", ErrInvalidConfig, c.Mailer.Provider)
	}
	if c.Mailer.Provider != "log" && c.Mailer.FromEmail == "" {
		return fmt.Errorf("%w: mailer.from_email is required", ErrInvalidConfig)
	}

	switch {
	case c.Auth.JWTSecret == "":
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	case c.Auth.JWTSecret == placeholderJWTSecret:
		return fmt.Errorf("%w: auth.jwt_secret still has the sample value", ErrInvalidConfig)
	case len(c.Auth.JWTSecret) < MinJWTSecretLength:
		return fmt.Errorf("%w: auth.jwt_secret must be at least %d bytes", ErrInvalidConfig, MinJWTSecretLength)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: ratelimit values must be positive", ErrInvalidConfig)
	}
	c.RateLimit.proxies = c.RateLimit.proxies[:0]
	for _, cidr := range c.RateLimit.TrustedProxies {
		prefix, err := parseProxy(cidr)
		if err != nil {
			return fmt.Errorf("%w: ratelimit.trusted_proxies: %v", ErrInvalidConfig, err)
		}
		c.RateLimit.proxies = append(c.RateLimit.proxies, prefix)
	}

	return nil
}

// parseProxy принимает CIDR или одиночный адрес
func parseProxy(value string) (netip.Prefix, error) {
	value = strings.TrimSpace(value)
	if strings.Contains(value, "/") {
		prefix, err := netip.ParsePrefix(value)
		return prefix.Masked(), err
	}
	addr, err := netip.ParseAddr(value)
	if err != nil {
		return netip.Prefix{}, err
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func parseWeekday(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(name)) {
			return d, true
		}
	}
	return 0, false
}
