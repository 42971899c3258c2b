package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Session     SessionConfig     `yaml:"session"`
	Security    SecurityConfig    `yaml:"security"`
	Storage     StorageConfig     `yaml:"storage"`
	Audit       AuditConfig       `yaml:"audit"`
	DefaultUser DefaultUserConfig `yaml:"default_user"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	Type   string       `yaml:"type"`
	SQLite SQLiteConfig `yaml:"sqlite"`
	MySQL  MySQLConfig  `yaml:"mysql"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Charset  string `yaml:"charset"`
}

type SessionConfig struct {
	CookieName      string `yaml:"cookie_name"`
	Secret          string `yaml:"secret"`
	Timeout         string `yaml:"timeout"`          // sliding session lifetime, e.g. "2h"
	CleanupInterval string `yaml:"cleanup_interval"` // how often expired sessions are purged
}

type SecurityConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type StorageConfig struct {
	UploadsDir string `yaml:"uploads_dir"`
}

type AuditConfig struct {
	RetentionDays int `yaml:"retention_days"`
}

type DefaultUserConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

var Global *Config

// Load reads the configuration file and applies environment variable overrides
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables
	if secret := os.Getenv("SITECMS_SESSION_SECRET"); secret != "" {
		cfg.Session.Secret = secret
	}

	if dbType := os.Getenv("SITECMS_DB_TYPE"); dbType != "" {
		cfg.Database.Type = dbType
	}

	if dbPath := os.Getenv("SITECMS_DB_PATH"); dbPath != "" {
		cfg.Database.SQLite.Path = dbPath
	}

	if mysqlHost := os.Getenv("SITECMS_MYSQL_HOST"); mysqlHost != "" {
		cfg.Database.MySQL.Host = mysqlHost
	}

	if mysqlUser := os.Getenv("SITECMS_MYSQL_USER"); mysqlUser != "" {
		cfg.Database.MySQL.Username = mysqlUser
	}

	if mysqlPass := os.Getenv("SITECMS_MYSQL_PASSWORD"); mysqlPass != "" {
		cfg.Database.MySQL.Password = mysqlPass
	}

	if mysqlDB := os.Getenv("SITECMS_MYSQL_DATABASE"); mysqlDB != "" {
		cfg.Database.MySQL.Database = mysqlDB
	}

	if uploadsDir := os.Getenv("SITECMS_UPLOADS_DIR"); uploadsDir != "" {
		cfg.Storage.UploadsDir = uploadsDir
	}

	// Ensure data directory exists for SQLite
	if cfg.Database.Type == "sqlite" {
		dataDir := filepath.Dir(cfg.Database.SQLite.Path)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// Validate MySQL configuration if MySQL is selected
	if cfg.Database.Type == "mysql" {
		if cfg.Database.MySQL.Username == "" {
			return nil, fmt.Errorf("MySQL username is required")
		}
		if cfg.Database.MySQL.Database == "" {
			return nil, fmt.Errorf("MySQL database name is required")
		}
	}

	// Ensure uploads directory exists
	if cfg.Storage.UploadsDir != "" {
		if err := os.MkdirAll(cfg.Storage.UploadsDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create uploads directory: %w", err)
		}
	}

	Global = &cfg
	return &cfg, nil
}

// SessionTimeout parses the configured session timeout, falling back to 2 hours
func (c *Config) SessionTimeout() time.Duration {
	d, err := time.ParseDuration(c.Session.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Hour
	}
	return d
}

// SessionCleanupInterval parses the cleanup interval, falling back to 15 minutes
func (c *Config) SessionCleanupInterval() time.Duration {
	d, err := time.ParseDuration(c.Session.CleanupInterval)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}
