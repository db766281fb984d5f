package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Session  SessionConfig
	Tokens   TokenConfig
	Password PasswordConfig
	Mail     MailConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type DatabaseConfig struct {
	DSN string
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

type SessionConfig struct {
	TTL time.Duration
}

type TokenConfig struct {
	ResetTTL time.Duration
}

type PasswordConfig struct {
	Policy PasswordPolicy
}

// MailConfig carries the Resend delivery settings. AppURL is the public base
// URL embedded into password reset links.
type MailConfig struct {
	ResendAPIKey string
	ResendDomain string
	AppURL       string
}

type LogConfig struct {
	Level  string
	Format string
}

type PasswordPolicy struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumber    bool
	RequireSpecial   bool
}

func (p PasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasNumber = true
		case unicode.IsPunct(ch) || unicode.IsSymbol(ch):
			hasSpecial = true
		}
	}

	var missing []string
	if p.RequireUppercase && !hasUpper {
		missing = append(missing, "uppercase letter")
	}
	if p.RequireLowercase && !hasLower {
		missing = append(missing, "lowercase letter")
	}
	if p.RequireNumber && !hasNumber {
		missing = append(missing, "number")
	}
	if p.RequireSpecial && !hasSpecial {
		missing = append(missing, "special character")
	}

	if len(missing) > 0 {
		return fmt.Errorf("password must contain at least one: %s", strings.Join(missing, ", "))
	}

	return nil
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("HTTP_HOST", ""),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		Database: DatabaseConfig{
			DSN: mysqlDSN,
		},
		JWT: JWTConfig{
			Secret:         jwtSecret,
			AccessTokenTTL: getDurationEnv("JWT_ACCESS_TOKEN_TTL", 15*time.Minute),
		},
		Session: SessionConfig{
			TTL: getDurationEnv("SESSION_TTL", 30*24*time.Hour),
		},
		Tokens: TokenConfig{
			ResetTTL: getDurationEnv("RESET_TOKEN_TTL", 24*time.Hour),
		},
		Password: PasswordConfig{
			Policy: loadPasswordPolicy(),
		},
		Mail: MailConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			ResendDomain: os.Getenv("RESEND_DOMAIN"),
			AppURL:       os.Getenv("APP_URL"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}, nil
}

func (c *Config) DSN() string {
	return c.Database.DSN
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func loadPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        getIntEnv("PASSWORD_MIN_LENGTH", 8),
		RequireUppercase: getBoolEnv("PASSWORD_REQUIRE_UPPERCASE", false),
		RequireLowercase: getBoolEnv("PASSWORD_REQUIRE_LOWERCASE", false),
		RequireNumber:    getBoolEnv("PASSWORD_REQUIRE_NUMBER", false),
		RequireSpecial:   getBoolEnv("PASSWORD_REQUIRE_SPECIAL", false),
	}
}
