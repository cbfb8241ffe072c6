package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	View    ViewConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Session SessionConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Mode        string
	Environment string
}

// APIConfig points at the public restaurant API
type APIConfig struct {
	BaseURL     string
	Timeout     time.Duration
	PictureSize string
}

type ViewConfig struct {
	InitialPageSize int
	PageStep        int
	Cities          []string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type SessionConfig struct {
	CookieName    string
	TTL           time.Duration
	SweepInterval time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// environment variable names kept flat, e.g. SERVER_PORT, API_BASE_URL
var envBindings = map[string]string{
	"server.port":            "SERVER_PORT",
	"server.host":            "SERVER_HOST",
	"server.mode":            "GIN_MODE",
	"server.env":             "ENV",
	"api.base_url":           "API_BASE_URL",
	"api.timeout":            "API_TIMEOUT",
	"api.picture_size":       "API_PICTURE_SIZE",
	"view.initial_page_size": "VIEW_INITIAL_PAGE_SIZE",
	"view.page_step":         "VIEW_PAGE_STEP",
	"view.cities":            "VIEW_CITIES",
	"redis.url":              "REDIS_URL",
	"redis.password":         "REDIS_PASSWORD",
	"redis.db":               "REDIS_DB",
	"kafka.brokers":          "KAFKA_BROKERS",
	"kafka.topic":            "KAFKA_TOPIC",
	"session.cookie_name":    "SESSION_COOKIE_NAME",
	"session.ttl":            "SESSION_TTL",
	"session.sweep_interval": "SESSION_SWEEP_INTERVAL",
	"log.level":              "LOG_LEVEL",
	"log.format":             "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.env", "development")

	v.SetDefault("api.base_url", "https://restaurant-api.dicoding.dev")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.picture_size", "small")

	v.SetDefault("view.initial_page_size", 8)
	v.SetDefault("view.page_step", 4)
	v.SetDefault("view.cities", []string{"Balikpapan", "Malang", "Surabaya", "Bandung", "Ternate"})

	// empty redis url keeps view state in memory
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "restaurant_view_events")

	v.SetDefault("session.cookie_name", "view_session")
	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.sweep_interval", time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads defaults, an optional YAML file and the environment.
// A missing .env file is not an error.
func LoadConfig(cfgFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("configs/")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        v.GetString("server.port"),
			Host:        v.GetString("server.host"),
			Mode:        v.GetString("server.mode"),
			Environment: v.GetString("server.env"),
		},
		API: APIConfig{
			BaseURL:     strings.TrimRight(v.GetString("api.base_url"), "/"),
			Timeout:     v.GetDuration("api.timeout"),
			PictureSize: v.GetString("api.picture_size"),
		},
		View: ViewConfig{
			InitialPageSize: v.GetInt("view.initial_page_size"),
			PageStep:        v.GetInt("view.page_step"),
			Cities:          splitList(v.GetStringSlice("view.cities")),
		},
		Redis: RedisConfig{
			URL:      v.GetString("redis.url"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetStringSlice("kafka.brokers")),
			Topic:   v.GetString("kafka.topic"),
		},
		Session: SessionConfig{
			CookieName:    v.GetString("session.cookie_name"),
			TTL:           v.GetDuration("session.ttl"),
			SweepInterval: v.GetDuration("session.sweep_interval"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the view cannot run with
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	if c.View.InitialPageSize < 0 {
		return fmt.Errorf("view.initial_page_size must not be negative, got %d", c.View.InitialPageSize)
	}
	if c.View.PageStep <= 0 {
		return fmt.Errorf("view.page_step must be positive, got %d", c.View.PageStep)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	return nil
}

// IsProduction is true under gin release mode or ENV=production
func (c *Config) IsProduction() bool {
	return c.Server.Mode == "release" || c.Server.Environment == "production"
}

// env values like "a,b" arrive as a single element
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
