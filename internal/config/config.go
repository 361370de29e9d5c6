package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	bcryptMinCost = 4
	bcryptMaxCost = 31

	// reportMonths is the fixed width of the monthly report window.
	reportMonths = 6
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Security  SecurityConfig
	Reporting ReportingConfig
	Messaging MessagingConfig
	Admin     AdminSeedConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	SeedData        bool
	MigrationsPath  string
	SeedsPath       string
}

type JWTConfig struct {
	AccessTokenDuration time.Duration
	PrivateKey          *rsa.PrivateKey
	PublicKey           *rsa.PublicKey
	Issuer              string
}

type SecurityConfig struct {
	BCryptCost         int
	RateLimitPerSecond int
	RateLimitBurst     int
	PasswordMinLength  int
	TokenPurgeInterval time.Duration

	// TrustedProxies lists CIDR ranges or IPs whose X-Forwarded-For header is
	// believed. Empty means the socket peer is the client.
	TrustedProxies []string
}

// ReportingConfig drives the financial report engine. Month boundaries are
// computed in Location for every view.
type ReportingConfig struct {
	Timezone      string
	Location      *time.Location
	Months        int
	TimelineLimit int
}

// MessagingConfig configures donation event publishing. An empty URL disables
// the broker and events are only logged.
type MessagingConfig struct {
	AMQPURL  string
	Exchange string

	// zero values fall back to the event breaker defaults
	BreakerMaxFailures  int
	BreakerResetTimeout time.Duration
}

type AdminSeedConfig struct {
	Email    string
	Password string
	Name     string
}

// Load reads the configuration from the environment. It only fails when the
// JWT keys cannot be loaded; Validate reports the remaining problems.
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "charity_user"),
			Password:        getEnv("DB_PASSWORD", "charity_password"),
			Name:            getEnv("DB_NAME", "charity_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			AutoMigrate:     getBoolEnv("AUTO_MIGRATE", false),
			SeedData:        getBoolEnv("SEED_DATABASE", false),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "db/migrations"),
			SeedsPath:       getEnv("SEEDS_PATH", "db/seeds"),
		},
		Security: SecurityConfig{
			BCryptCost:         getIntEnv("BCRYPT_COST", 12),
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 5),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 10),
			PasswordMinLength:  getIntEnv("PASSWORD_MIN_LENGTH", 12),
			TokenPurgeInterval: getDurationEnv("TOKEN_PURGE_INTERVAL", time.Hour),
		},
		JWT: JWTConfig{
			AccessTokenDuration: getDurationEnv("JWT_ACCESS_TOKEN_DURATION", 8*time.Hour),
			Issuer:              getEnv("JWT_ISSUER", "charity-transparency"),
		},
		Reporting: ReportingConfig{
			Timezone:      getEnv("REPORT_TIMEZONE", "UTC"),
			Months:        reportMonths,
			TimelineLimit: getIntEnv("REPORT_TIMELINE_LIMIT", 50),
		},
		Messaging: MessagingConfig{
			AMQPURL:  getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "charity.donations"),

			BreakerMaxFailures:  getIntEnv("AMQP_BREAKER_MAX_FAILURES", 5),
			BreakerResetTimeout: getDurationEnv("AMQP_BREAKER_RESET_TIMEOUT", 30*time.Second),
		},
		Admin: AdminSeedConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
			Name:     getEnv("ADMIN_NAME", "Administrator"),
		},
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()
	config.Security.TrustedProxies = splitList(os.Getenv("TRUSTED_PROXIES"))

	if loc, err := time.LoadLocation(config.Reporting.Timezone); err == nil {
		config.Reporting.Location = loc
	}

	var err error
	config.JWT.PrivateKey, config.JWT.PublicKey, err = config.loadJWTKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to load RSA keys: %w", err)
	}

	return config, nil
}

// Validate returns an error listing every impossible setting
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Server.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.Reporting.Location == nil {
		problems = append(problems, fmt.Sprintf("invalid report timezone '%s'", c.Reporting.Timezone))
	}
	if c.Reporting.Months != reportMonths {
		problems = append(problems, fmt.Sprintf("invalid report window %d: must be %d months", c.Reporting.Months, reportMonths))
	}
	if c.Reporting.TimelineLimit < 0 {
		problems = append(problems, fmt.Sprintf("invalid timeline limit %d: must not be negative", c.Reporting.TimelineLimit))
	}

	if c.Security.BCryptCost < bcryptMinCost || c.Security.BCryptCost > bcryptMaxCost {
		problems = append(problems, fmt.Sprintf("invalid bcrypt cost %d: must be between %d and %d", c.Security.BCryptCost, bcryptMinCost, bcryptMaxCost))
	}
	if c.Security.RateLimitPerSecond < 1 || c.Security.RateLimitBurst < 1 {
		problems = append(problems, "rate limit and burst must be positive")
	}
	for _, proxy := range c.Security.TrustedProxies {
		if !validProxy(proxy) {
			problems = append(problems, fmt.Sprintf("invalid trusted proxy '%s': must be an IP or CIDR range", proxy))
		}
	}

	if c.Messaging.AMQPURL != "" {
		if parsed, err := url.Parse(c.Messaging.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.Messaging.Exchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if c.Admin.Email != "" && len(c.Admin.Password) < c.Security.PasswordMinLength {
		problems = append(problems, fmt.Sprintf("admin seed password must be at least %d characters", c.Security.PasswordMinLength))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL returns the connection string in the form golang-migrate expects
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadJWTKeys reads base64 PEM keys from JWT_PRIVATE_KEY and JWT_PUBLIC_KEY.
// Outside production a throwaway keypair is generated when they are missing.
func (c *Config) loadJWTKeys() (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privateKeyB64 := os.Getenv("JWT_PRIVATE_KEY")
	publicKeyB64 := os.Getenv("JWT_PUBLIC_KEY")

	if privateKeyB64 != "" && publicKeyB64 != "" {
		slog.Info("loading RSA keypair from environment variables")
		return c.loadKeysFromEnvVars(privateKeyB64, publicKeyB64)
	}

	if c.IsProduction() {
		return nil, nil, fmt.Errorf("JWT_PRIVATE_KEY and JWT_PUBLIC_KEY environment variables must be set in production environments")
	}

	slog.Warn("generating ephemeral RSA keypair for JWT, tokens will not survive a restart")
	return GenerateRSAKeyPair()
}

// loadKeysFromEnvVars loads RSA keys from base64-encoded environment variables
func (c *Config) loadKeysFromEnvVars(privateKeyB64, publicKeyB64 string) (*rsa.PrivateKey, *rsa.PublicKey, error) {

	privateKeyBytes, err := base64.StdEncoding.DecodeString(privateKeyB64)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode JWT_PRIVATE_KEY: %w", err)
	}

	publicKeyBytes, err := base64.StdEncoding.DecodeString(publicKeyB64)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode JWT_PUBLIC_KEY: %w", err)
	}

	privateKey, err := loadRSAPrivateKey(privateKeyBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	publicKey, err := loadRSAPublicKey(publicKeyBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	return privateKey, publicKey, nil
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns default
func (c *Config) loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")

	if corsOrigins == "" {
		if c.IsProduction() {
			slog.Warn("CORS_ALLOW_ORIGINS not set in production, allowing all origins")
		}
		return []string{"*"}
	}

	return splitList(corsOrigins)
}

// splitList splits a comma separated env value, dropping blank entries
func splitList(value string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GenerateRSAKeyPair generates a new RSA key pair
func GenerateRSAKeyPair() (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate RSA key pair: %w", err)
	}

	return privateKey, &privateKey.PublicKey, nil
}

// loadRSAPrivateKey loads an RSA private key from PEM format
func loadRSAPrivateKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing the key")
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}

		privateKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("not an RSA private key")
		}

		return privateKey, nil
	}

	return privateKey, nil
}

// loadRSAPublicKey loads an RSA public key from PEM format
func loadRSAPublicKey(pemData []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing the key")
	}

	publicKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaPublicKey, ok := publicKey.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an RSA public key")
	}

	return rsaPublicKey, nil
}

func validProxy(entry string) bool {
	if strings.Contains(entry, "/") {
		_, _, err := net.ParseCIDR(entry)
		return err == nil
	}
	return net.ParseIP(entry) != nil
}
