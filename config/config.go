package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host           string `mapstructure:"host"`
		Port           string `mapstructure:"port"`
		User           string `mapstructure:"user"`
		Password       string `mapstructure:"password"`
		Name           string `mapstructure:"name"`
		SSLMode        string `mapstructure:"sslmode"`
		Migrate        bool   `mapstructure:"migrate"`
		MigrationsPath string `mapstructure:"migrations_path"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Redis struct {
		Enabled       bool          `mapstructure:"enabled"`
		Host          string        `mapstructure:"host"`
		Port          string        `mapstructure:"port"`
		Password      string        `mapstructure:"password"`
		DB            int           `mapstructure:"db"`
		CategoriesTTL time.Duration `mapstructure:"categories_ttl"`
	} `mapstructure:"redis"`
	Media struct {
		Root string `mapstructure:"root"`
	} `mapstructure:"media"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
	RateLimit struct {
		LoginRequests int           `mapstructure:"login_requests"`
		LoginWindow   time.Duration `mapstructure:"login_window"`
	} `mapstructure:"rate_limit"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "4941")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.migrate", true)
	v.SetDefault("database.migrations_path", "file://db/migrations")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.categories_ttl", 10*time.Minute)
	v.SetDefault("media.root", "media")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("rate_limit.login_requests", 10)
	v.SetDefault("rate_limit.login_window", time.Minute)
	v.SetDefault("log.level", "info")
}

// LoadConfig reads config.yml from path, overlays environment variables
// (DATABASE_HOST, REDIS_ENABLED, ...) and stores the result in AppConfig.
func LoadConfig(path string) error {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode into struct: %w", err)
	}
	AppConfig = cfg
	return nil
}

// DatabaseURL returns the postgres connection URL used by the migrator.
func (c Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name, c.Database.SSLMode)
}
