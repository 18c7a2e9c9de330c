package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Dataset sources.
const (
	SourceCSV      = "csv"
	SourceMinio    = "minio"
	SourceMySQL    = "mysql"
	SourcePostgres = "postgres"
)

type Config struct {
	Server struct {
		Port      int               `yaml:"port"`
		APIKeys   map[string]string `yaml:"apiKeys"` // client name -> key; empty disables auth
		RateLimit struct {
			PerSecond float64 `yaml:"perSecond"`
			Burst     int     `yaml:"burst"`
		} `yaml:"rateLimit"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // text | json
	} `yaml:"log"`

	OpenAI struct {
		APIKey  string        `yaml:"apiKey"`
		Model   string        `yaml:"model"`
		BaseURL string        `yaml:"baseURL"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"openai"`

	Dataset struct {
		Source string `yaml:"source"`
		Path   string `yaml:"path"`  // csv
		Key    string `yaml:"key"`   // minio object key
		Table  string `yaml:"table"` // mysql / postgres
	} `yaml:"dataset"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load baca file config.yaml. A missing file is not an error: defaults and
// environment overrides still apply.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.OpenAI.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.OpenAI.BaseURL = v
	}
	if v := os.Getenv("DATASET_PATH"); v != "" {
		c.Dataset.Source = SourceCSV
		c.Dataset.Path = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimit.PerSecond == 0 {
		c.Server.RateLimit.PerSecond = 5
	}
	if c.Server.RateLimit.Burst == 0 {
		c.Server.RateLimit.Burst = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4"
	}
	if c.OpenAI.Timeout == 0 {
		c.OpenAI.Timeout = 15 * time.Second
	}
	if c.Dataset.Source == "" {
		c.Dataset.Source = SourceCSV
	}
	if c.Dataset.Path == "" {
		c.Dataset.Path = "freelancer_earnings_bd.csv"
	}
	if c.Dataset.Key == "" {
		c.Dataset.Key = "datasets/freelancer_earnings_bd.csv"
	}
	if c.Dataset.Table == "" {
		c.Dataset.Table = "freelancer_earnings"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceCSV, SourceMinio, SourceMySQL, SourcePostgres:
	default:
		return fmt.Errorf("dataset.source %q is not one of csv, minio, mysql, postgres", c.Dataset.Source)
	}
	if c.OpenAI.Timeout < 0 {
		return errors.New("openai.timeout must not be negative")
	}
	if c.Server.RateLimit.PerSecond < 0 || c.Server.RateLimit.Burst < 0 {
		return errors.New("server.rateLimit must not be negative")
	}
	return nil
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds a lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
