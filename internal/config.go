package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Mongo         MongoConfig         `mapstructure:"mongo"`
	ObjectStorage ObjectStorageConfig `mapstructure:"object_storage"`
	Payee         PayeeConfig         `mapstructure:"payee"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres mongo"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"required,min=1m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" validate:"required,min=1m"`
	Source          string        `mapstructure:"source"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type ObjectStorageConfig struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

// PayeeConfig identifies the account that receives UPI donations. Empty
// values fall back to donation.DefaultPayeeVPA / donation.DefaultPayeeName.
type PayeeConfig struct {
	VPA  string `mapstructure:"vpa"`
	Name string `mapstructure:"name"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type ObservabilityConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// LoadConfigFromEnv builds the configuration for container deployments where
// no config.yml is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("PORT", 8080),
			BaseURL:           getEnv("BASE_URL", ""),
			AllowedOrigins:    getEnv("ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: getEnvAsDuration("READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
			IdleTimeout:       getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
			WriteTimeout:      getEnvAsDuration("WRITE_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", StorageDriverMongo),
		},
		Database: DatabaseConfig{
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			Source:          getEnv("DATABASE_URL", ""),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DB", "sewa"),
			ConnectTimeout: getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		},
		ObjectStorage: ObjectStorageConfig{
			Bucket:          getEnv("S3_BUCKET", ""),
			Region:          getEnv("AWS_REGION", "ap-south-1"),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			UsePathStyle:    getEnv("S3_USE_PATH_STYLE", "false") == "true",
		},
		Payee: PayeeConfig{
			VPA:  getEnv("UPI_PAYEE_VPA", ""),
			Name: getEnv("UPI_PAYEE_NAME", ""),
		},
		Kafka: KafkaConfig{
			Enabled: getEnv("KAFKA_ENABLED", "false") == "true",
			Brokers: splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "sewa-events"),
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: getEnv("METRICS_ENABLED", "true") == "true",
				Path:    getEnv("METRICS_PATH", "/metrics"),
			},
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if err := c.Database.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("database config: %v", err))
		}
	case StorageDriverMongo:
		if err := c.Mongo.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("mongo config: %v", err))
		}
	}

	if err := c.ObjectStorage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("object storage config: %v", err))
	}

	if err := c.Kafka.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("kafka config: %v", err))
	}

	if err := c.Observability.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("observability config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		for _, origin := range c.Origins() {
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

// Origins splits AllowedOrigins into trimmed entries.
func (c *ServerConfig) Origins() []string {
	return splitNonEmpty(c.AllowedOrigins)
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case StorageDriverPostgres, StorageDriverMongo:
		return nil
	case "":
		return errors.New("driver is required")
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
}

func (c *DatabaseConfig) Validate() error {
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *MongoConfig) Validate() error {
	if c.URI == "" {
		return errors.New("uri is required")
	}
	if c.Database == "" {
		return errors.New("database is required")
	}
	return nil
}

func (c *ObjectStorageConfig) Validate() error {
	if c.Bucket == "" {
		return errors.New("bucket is required")
	}
	if c.Region == "" {
		return errors.New("region is required")
	}
	if c.Endpoint != "" {
		if _, err := url.ParseRequestURI(c.Endpoint); err != nil {
			return fmt.Errorf("invalid endpoint: %w", err)
		}
	}
	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		return errors.New("access_key_id and secret_access_key must be set together")
	}
	return nil
}

func (c *KafkaConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.Brokers) == 0 {
		return errors.New("brokers are required when kafka is enabled")
	}
	if c.Topic == "" {
		return errors.New("topic is required when kafka is enabled")
	}
	return nil
}

func (c *ObservabilityConfig) Validate() error {
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return errors.New("metrics path is required when metrics are enabled")
	}
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("unsupported log format %q", c.Logging.Format)
	}
	return nil
}
