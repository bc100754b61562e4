package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/frahmantamala/sewa-portal/internal"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sewa-portal",
	Short: "Sewa Portal",
	Long:  `Backend for the Sewa Foundation site: donation intents with UPI links, media and report uploads.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load(path + "/.env")

	if os.Getenv("APP_ENV") == "production" || os.Getenv("DOCKER_ENV") == "true" {
		cfg := internal.LoadConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error validating config from environment: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("ENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.allowed_origins", "*")
	v.SetDefault("http_server.read_header_timeout", "5s")
	v.SetDefault("http_server.read_timeout", "30s")
	v.SetDefault("http_server.write_timeout", "30s")
	v.SetDefault("http_server.idle_timeout", "60s")
	v.SetDefault("storage.driver", internal.StorageDriverMongo)
	v.SetDefault("mongo.connect_timeout", "10s")
	v.SetDefault("kafka.topic", "sewa-events")
	v.SetDefault("observability.metrics.path", "/metrics")
	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	return &cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "directory containing config.yml and .env")

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
}
