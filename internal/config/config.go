package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	Auth     AuthConfig     `koanf:"auth"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string     `koanf:"host"`
	Port    int        `koanf:"port"`
	Mode    string     `koanf:"mode"`
	Timeout string     `koanf:"timeout"`
	CORS    CORSConfig `koanf:"cors"`

	// TrustRequestID reuses a well-formed X-Request-ID from a fronting proxy.
	TrustRequestID bool `koanf:"trust_request_id"`
}

// CORSConfig holds CORS middleware settings.
type CORSConfig struct {
	AllowOrigins     []string `koanf:"allow_origins"`
	AllowMethods     []string `koanf:"allow_methods"`
	AllowHeaders     []string `koanf:"allow_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           string   `koanf:"max_age"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver   string         `koanf:"driver"`
	SQLite   SQLiteConfig   `koanf:"sqlite"`
	Postgres PostgresConfig `koanf:"postgres"`
	Pool     PoolConfig     `koanf:"pool"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode"`
}

// PoolConfig holds database connection pool settings.
type PoolConfig struct {
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	ConnMaxLifetime string `koanf:"conn_max_lifetime"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level           string `koanf:"level"`
	Format          string `koanf:"format"`
	Color           *bool  `koanf:"color"`
	FilePath        string `koanf:"file_path"`
	MaxSizeMB       int    `koanf:"max_size_mb"`
	RetentionDays   int    `koanf:"retention_days"`
	MaxBackups      int    `koanf:"max_backups"`
	CompressRotated *bool  `koanf:"compress_rotated"`
}

// AuthConfig holds bearer token verification settings for the admin API.
// Tokens are issued elsewhere; this service only verifies them.
type AuthConfig struct {
	Enabled    bool     `koanf:"enabled"`
	JWTSecret  string   `koanf:"jwt_secret"`
	AdminRoles []string `koanf:"admin_roles"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// Load reads configuration from a YAML file and overlays environment variables.
// Environment variables use the prefix "APP__" and double-underscore as the
// hierarchy separator. Single underscores are preserved as part of the key name.
// For example, APP__SERVER__PORT=9090 overrides server.port and
// APP__DATABASE__POOL__MAX_IDLE_CONNS=20 overrides database.pool.max_idle_conns.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Load YAML config file.
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	// Overlay environment variables with prefix APP__.
	// APP__SERVER__PORT -> server.port
	// APP__DATABASE__POOL__MAX_IDLE_CONNS -> database.pool.max_idle_conns
	if err := k.Load(env.Provider("APP__", ".", func(s string) string {
		key := strings.TrimPrefix(s, "APP__")
		key = strings.ToLower(key)
		key = strings.ReplaceAll(key, "__", ".")
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate normalizes every section in place and rejects unsupported values.
func (c *Config) Validate() error {
	if err := c.Server.validate(); err != nil {
		return err
	}
	if err := c.Database.validate(c.Server.Mode); err != nil {
		return err
	}
	if err := c.Auth.validate(c.Server.Mode); err != nil {
		return err
	}
	if err := c.Metrics.validate(); err != nil {
		return err
	}
	return c.Log.validate()
}

var (
	supportedDrivers  = []string{"sqlite", "postgres"}
	sslModes          = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}
	releaseSSLModes   = []string{"require", "verify-ca", "verify-full"}
	supportedLevels   = []string{"debug", "info", "warn", "error"}
	supportedFormats  = []string{"text", "json"}
	defaultAdminRoles = []string{"admin"}
)

func (s *ServerConfig) validate() error {
	s.Mode = strings.TrimSpace(s.Mode)
	switch s.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", s.Mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
	if err := checkPort("server.port", s.Port); err != nil {
		return err
	}
	s.Host = strings.TrimSpace(s.Host)
	if s.Host == "" {
		return fmt.Errorf("server.host is required")
	}
	if err := normalizeDuration("server.timeout", &s.Timeout); err != nil {
		return err
	}
	return normalizeDuration("server.cors.max_age", &s.CORS.MaxAge)
}

func (d *DatabaseConfig) validate(mode string) error {
	if !slices.Contains(supportedDrivers, d.Driver) {
		return fmt.Errorf("invalid database.driver %q: must be one of %q", d.Driver, supportedDrivers)
	}
	if err := normalizeDuration("database.pool.conn_max_lifetime", &d.Pool.ConnMaxLifetime); err != nil {
		return err
	}

	if d.Driver == "sqlite" {
		d.SQLite.Path = strings.TrimSpace(d.SQLite.Path)
		if d.SQLite.Path == "" {
			return fmt.Errorf("database.sqlite.path is required when driver is sqlite")
		}
		return nil
	}

	pg := &d.Postgres
	pg.Host = strings.TrimSpace(pg.Host)
	pg.User = strings.TrimSpace(pg.User)
	pg.DBName = strings.TrimSpace(pg.DBName)
	pg.SSLMode = strings.TrimSpace(pg.SSLMode)
	switch {
	case pg.Host == "":
		return fmt.Errorf("database.postgres.host is required when driver is postgres")
	case pg.User == "":
		return fmt.Errorf("database.postgres.user is required when driver is postgres")
	case pg.DBName == "":
		return fmt.Errorf("database.postgres.dbname is required when driver is postgres")
	}
	if err := checkPort("database.postgres.port", pg.Port); err != nil {
		return err
	}
	if !slices.Contains(sslModes, pg.SSLMode) {
		return fmt.Errorf("invalid database.postgres.sslmode %q: must be one of %q", pg.SSLMode, sslModes)
	}
	if mode == gin.ReleaseMode && !slices.Contains(releaseSSLModes, pg.SSLMode) {
		return fmt.Errorf("invalid database.postgres.sslmode %q for server.mode %q: must be one of %q", pg.SSLMode, mode, releaseSSLModes)
	}
	return nil
}

// validate checks the token secret when auth is enabled and normalizes the
// admin roles: trimmed, deduplicated, defaulting to "admin".
func (a *AuthConfig) validate(mode string) error {
	if a.Enabled {
		a.JWTSecret = strings.TrimSpace(a.JWTSecret)
		switch {
		case a.JWTSecret == "":
			return fmt.Errorf("auth.jwt_secret is required when auth is enabled")
		case len(a.JWTSecret) < 32:
			return fmt.Errorf("invalid auth.jwt_secret: must be at least 32 characters")
		case mode == gin.ReleaseMode && CountSecretClasses(a.JWTSecret) < 3:
			return fmt.Errorf("auth.jwt_secret must include at least 3 character classes (lowercase, uppercase, digit, symbol) in release mode")
		}
	}

	roles := make([]string, 0, len(a.AdminRoles))
	for i, r := range a.AdminRoles {
		role := strings.TrimSpace(r)
		if role == "" {
			return fmt.Errorf("auth.admin_roles[%d] cannot be empty", i)
		}
		if !slices.Contains(roles, role) {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		roles = slices.Clone(defaultAdminRoles)
	}
	a.AdminRoles = roles
	return nil
}

func (m *MetricsConfig) validate() error {
	if !m.Enabled {
		return nil
	}
	path := strings.TrimSpace(m.Path)
	if path == "" {
		path = "/metrics"
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("invalid metrics.path %q: must start with '/'", m.Path)
	}
	if strings.HasPrefix(path, "/api/") {
		return fmt.Errorf("invalid metrics.path %q: must not be under /api/", m.Path)
	}
	m.Path = path
	return nil
}

func (l *LogConfig) validate() error {
	level := strings.ToLower(strings.TrimSpace(l.Level))
	if !slices.Contains(supportedLevels, level) {
		return fmt.Errorf("invalid log.level %q: must be one of %q", l.Level, supportedLevels)
	}
	format := strings.ToLower(strings.TrimSpace(l.Format))
	if !slices.Contains(supportedFormats, format) {
		return fmt.Errorf("invalid log.format %q: must be one of %q", l.Format, supportedFormats)
	}
	l.Level, l.Format = level, format
	return nil
}

func checkPort(field string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid %s %d: must be between 1 and 65535", field, port)
	}
	return nil
}

// normalizeDuration trims *v and, when set, requires a positive Go duration.
// Whitespace-only means unset.
func normalizeDuration(field string, v *string) error {
	*v = strings.TrimSpace(*v)
	if *v == "" {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, *v, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid %s %q: must be greater than 0", field, *v)
	}
	return nil
}

// CountSecretClasses counts how many character classes (lowercase, uppercase,
// digit, symbol) are present in the given secret string.
func CountSecretClasses(secret string) int {
	hasLower := false
	hasUpper := false
	hasDigit := false
	hasSymbol := false

	for _, r := range secret {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	classes := 0
	if hasLower {
		classes++
	}
	if hasUpper {
		classes++
	}
	if hasDigit {
		classes++
	}
	if hasSymbol {
		classes++
	}

	return classes
}
