package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const DefaultPath = "config/config.yaml"

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Enabled  bool          `yaml:"enabled"`
		Address  string        `yaml:"address"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"redis"`
	S3 struct {
		Enabled   bool   `yaml:"enabled"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
		Folder    string `yaml:"folder"`
		PublicURL string `yaml:"public_url"`
	} `yaml:"s3"`
	JWT struct {
		Secret string        `yaml:"secret"`
		TTL    time.Duration `yaml:"ttl"`
	} `yaml:"jwt"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Fluent struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		Tag     string `yaml:"tag"`
		Level   string `yaml:"level"`
	} `yaml:"fluent"`
	RabbitMQ struct {
		Enabled  bool   `yaml:"enabled"`
		URL      string `yaml:"url"`
		Exchange string `yaml:"exchange"`
	} `yaml:"rabbitmq"`
	Reconciler struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"reconciler"`
}

// LoadConfig reads the YAML file named by CONFIG_PATH (or DefaultPath), then
// applies environment overrides. A .env file in the working directory, when
// present, is loaded into the environment first.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return Load(path)
}

func Load(path string) (Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config data: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func defaults() Config {
	var cfg Config
	cfg.Server.Address = ":4000"
	cfg.Database.Driver = "mysql"
	cfg.Redis.TTL = 5 * time.Minute
	cfg.S3.Region = "us-east-1"
	cfg.S3.Folder = "avatars"
	cfg.JWT.TTL = 48 * time.Hour
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "color"
	cfg.Fluent.Port = 24224
	cfg.Fluent.Tag = "six-cities"
	cfg.Fluent.Level = "info"
	cfg.RabbitMQ.Exchange = "six-cities"
	cfg.Reconciler.Interval = time.Hour
	return cfg
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Address, "SERVER_ADDRESS")
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.URL, "DB_URL")
	setString(&cfg.Redis.Address, "REDIS_ADDRESS")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.S3.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.S3.SecretKey, "S3_SECRET_KEY")
	setString(&cfg.S3.Bucket, "S3_BUCKET")
	setString(&cfg.S3.Endpoint, "S3_ENDPOINT")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Fluent.Host, "FLUENT_HOST")
	setString(&cfg.RabbitMQ.URL, "RABBITMQ_URL")

	if v := os.Getenv("FLUENT_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FLUENT_PORT: %w", err)
		}
		cfg.Fluent.Port = port
	}
	if v := os.Getenv("JWT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JWT_TTL: %w", err)
		}
		cfg.JWT.TTL = ttl
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("database url is required")
	}
	if c.Database.Driver != "mysql" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required")
	}
	if c.Redis.Enabled && c.Redis.Address == "" {
		return errors.New("redis address is required when redis is enabled")
	}
	if c.S3.Enabled && c.S3.Bucket == "" {
		return errors.New("s3 bucket is required when s3 is enabled")
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return errors.New("rabbitmq url is required when rabbitmq is enabled")
	}
	return nil
}
