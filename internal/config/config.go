package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort         = 8000
	defaultEnv          = "development"
	defaultDatabaseURL  = "mongodb://localhost:27017"
	defaultDatabaseName = "auto_explainer"
	defaultUploadsDir   = "uploads"
	defaultLogsDir      = "logs"
	defaultFetchTimeout = 10 * time.Second
	defaultFetchMaxChar = 5000
	defaultS3Prefix     = "sources"
)

// Environment variable names read on top of the YAML file.
const (
	EnvPort               = "PORT"
	EnvEnv                = "ENV"
	EnvDatabaseURL        = "DATABASE_URL"
	EnvDatabaseName       = "DATABASE_NAME"
	EnvUploadDir          = "UPLOAD_DIR"
	EnvLogDir             = "LOG_DIR"
	EnvRedisURL           = "REDIS_URL"
	EnvFetchTimeout       = "FETCH_TIMEOUT"
	EnvS3Bucket           = "S3_BUCKET"
	EnvS3Region           = "S3_REGION"
	EnvS3Endpoint         = "S3_ENDPOINT"
	EnvS3AccessKeyID      = "S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey  = "S3_SECRET_ACCESS_KEY"
	EnvAllowedOriginsList = "ALLOWED_ORIGINS"
)

// AppConfig holds runtime startup configuration.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	Fetch          FetchConfig           `yaml:"fetch"`
	S3             S3Config              `yaml:"s3"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
}

type DatabaseRuntimeConfig struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
	// URLFromEnv and NameFromEnv record whether the values came from the
	// process environment; the diagnostics endpoint reports them.
	URLFromEnv  bool `yaml:"-"`
	NameFromEnv bool `yaml:"-"`
}

// RedisRuntimeConfig is optional; an empty URL disables redis entirely.
type RedisRuntimeConfig struct {
	URL         string `yaml:"url"`
	Idempotence bool   `yaml:"idempotence"`
}

type RuntimePathsConfig struct {
	Logs    string `yaml:"logs"`
	Uploads string `yaml:"uploads"`
}

type FetchConfig struct {
	Timeout  time.Duration `yaml:"timeout"`
	MaxChars int           `yaml:"max_chars"`
}

// S3Config enables mirroring uploaded source files to a bucket.
type S3Config struct {
	Enable          bool   `yaml:"enable"`
	Endpoint        string `yaml:"endpoint"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Prefix          string `yaml:"prefix"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

type rawAppConfig struct {
	Port           int                `yaml:"port"`
	Env            string             `yaml:"env"`
	Database       rawDatabaseConfig  `yaml:"database"`
	Redis          rawRedisConfig     `yaml:"redis"`
	Paths          RuntimePathsConfig `yaml:"paths"`
	Fetch          rawFetchConfig     `yaml:"fetch"`
	S3             *S3Config          `yaml:"s3"`
	AllowedOrigins []string           `yaml:"allowed_origins"`
}

type rawDatabaseConfig struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

type rawRedisConfig struct {
	URL         string `yaml:"url"`
	Idempotence *bool  `yaml:"idempotence"`
}

type rawFetchConfig struct {
	Timeout  string `yaml:"timeout"`
	MaxChars int    `yaml:"max_chars"`
}

// Load reads the optional YAML file at configPath, then applies .env and
// process environment overrides. A missing default config file is not an
// error; a missing explicitly named file is.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	explicit := path != "" && path != DefaultConfigPath
	if path == "" {
		path = DefaultConfigPath
	}

	_ = godotenv.Load()

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		raw := rawAppConfig{}
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		if err := applyRawAppConfig(&cfg, raw); err != nil {
			return nil, fmt.Errorf("config file %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			URL:  defaultDatabaseURL,
			Name: defaultDatabaseName,
		},
		Paths: RuntimePathsConfig{
			Logs:    defaultLogsDir,
			Uploads: defaultUploadsDir,
		},
		Fetch: FetchConfig{
			Timeout:  defaultFetchTimeout,
			MaxChars: defaultFetchMaxChar,
		},
		S3: S3Config{
			Prefix: defaultS3Prefix,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) error {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}

	if v := strings.TrimSpace(raw.Database.URL); v != "" {
		cfg.Database.URL = v
	}
	if v := strings.TrimSpace(raw.Database.Name); v != "" {
		cfg.Database.Name = v
	}

	if v := strings.TrimSpace(raw.Redis.URL); v != "" {
		cfg.Redis.URL = v
	}
	if raw.Redis.Idempotence != nil {
		cfg.Redis.Idempotence = *raw.Redis.Idempotence
	}

	if v := strings.TrimSpace(raw.Paths.Logs); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.Paths.Uploads); v != "" {
		cfg.Paths.Uploads = v
	}

	if v := strings.TrimSpace(raw.Fetch.Timeout); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid fetch.timeout %q: %w", v, err)
		}
		cfg.Fetch.Timeout = d
	}
	if raw.Fetch.MaxChars != 0 {
		cfg.Fetch.MaxChars = raw.Fetch.MaxChars
	}

	if raw.S3 != nil {
		s3 := *raw.S3
		if strings.TrimSpace(s3.Prefix) == "" {
			s3.Prefix = cfg.S3.Prefix
		}
		cfg.S3 = normalizeS3Config(s3)
	}

	if raw.AllowedOrigins != nil {
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	}

	cfg.Env = normalizeEnv(cfg.Env)
	return nil
}

type lookupFunc func(key string) (string, bool)

func applyEnv(cfg *AppConfig, lookup lookupFunc) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Port = port
	}
	if v, ok := get(EnvEnv); ok {
		cfg.Env = normalizeEnv(v)
	}
	if v, ok := get(EnvDatabaseURL); ok {
		cfg.Database.URL = v
		cfg.Database.URLFromEnv = true
	}
	if v, ok := get(EnvDatabaseName); ok {
		cfg.Database.Name = v
		cfg.Database.NameFromEnv = true
	}
	if v, ok := get(EnvUploadDir); ok {
		cfg.Paths.Uploads = v
	}
	if v, ok := get(EnvLogDir); ok {
		cfg.Paths.Logs = v
	}
	if v, ok := get(EnvRedisURL); ok {
		cfg.Redis.URL = v
	}
	if v, ok := get(EnvFetchTimeout); ok {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvFetchTimeout, v, err)
		}
		cfg.Fetch.Timeout = d
	}
	if v, ok := get(EnvS3Bucket); ok {
		cfg.S3.Bucket = v
		cfg.S3.Enable = true
	}
	if v, ok := get(EnvS3Region); ok {
		cfg.S3.Region = v
	}
	if v, ok := get(EnvS3Endpoint); ok {
		cfg.S3.Endpoint = v
	}
	if v, ok := get(EnvS3AccessKeyID); ok {
		cfg.S3.AccessKeyID = v
	}
	if v, ok := get(EnvS3SecretAccessKey); ok {
		cfg.S3.SecretAccessKey = v
	}
	if v, ok := get(EnvAllowedOriginsList); ok {
		cfg.AllowedOrigins = normalizeOrigins(strings.Split(v, ","))
	}
	cfg.S3 = normalizeS3Config(cfg.S3)
	return nil
}

// parseDuration accepts Go duration strings and bare seconds ("10").
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// Validate rejects values the server cannot start with.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	if c.Database.URL == "" {
		return errors.New("database url is empty")
	}
	if c.Database.Name == "" {
		return errors.New("database name is empty")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("invalid fetch timeout %s, expected > 0", c.Fetch.Timeout)
	}
	if c.Fetch.MaxChars <= 0 {
		return fmt.Errorf("invalid fetch max_chars %d, expected > 0", c.Fetch.MaxChars)
	}
	if c.S3.Enable && (c.S3.Bucket == "" || c.S3.Region == "") {
		return errors.New("s3 is enabled but bucket or region is empty")
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

func (c *AppConfig) LogDir() string {
	if c == nil {
		return ResolveRuntimePath("", defaultLogsDir)
	}
	return ResolveRuntimePath(c.Paths.Logs, defaultLogsDir)
}

func (c *AppConfig) UploadDir() string {
	if c == nil {
		return ResolveRuntimePath("", defaultUploadsDir)
	}
	return ResolveRuntimePath(c.Paths.Uploads, defaultUploadsDir)
}
