// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		// sqlite / postgres / file / memory
		Driver string `mapstructure:"driver"`
		URL    string `mapstructure:"url"`
	} `mapstructure:"database"`
	Store struct {
		Capacity int `mapstructure:"capacity"`
	} `mapstructure:"store"`
	Review ReviewConfig `mapstructure:"review"`
	Log    struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Jobs   JobsConfig   `mapstructure:"jobs"`
	Notify NotifyConfig `mapstructure:"notify"`
	CORS   struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

// ReviewConfig はセッションの既定の構成 (語彙系の枠数とトピックの枠数)
type ReviewConfig struct {
	LexicalSlots int `mapstructure:"lexical_slots"`
	TopicSlots   int `mapstructure:"topic_slots"`
}

type JobsConfig struct {
	AutosaveInterval time.Duration `mapstructure:"autosave_interval"`
	ReminderInterval time.Duration `mapstructure:"reminder_interval"`
	// 通知してよい時間帯 [start, end) 、時 (0-23)
	NotifyStartHour int `mapstructure:"notify_start_hour"`
	NotifyEndHour   int `mapstructure:"notify_end_hour"`
}

// NotifyConfig は復習リマインダーの送り先。Type は log か smtp。
type NotifyConfig struct {
	Type string     `mapstructure:"type"`
	To   string     `mapstructure:"to"`
	SMTP SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

var supportedDrivers = []string{DriverSQLite, DriverPostgres, DriverFile, DriverMemory}

// LoadConfig は path (と カレントディレクトリ) の config.yaml と環境変数から設定を読み込みます。
// 環境変数は APP_ 接頭辞で、キーの "." は "_" に置き換えます (例: APP_DATABASE_URL)。
// 設定ファイルがなくてもエラーにはせず、既定値と環境変数を使います。
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
		slog.Warn("Config file not found. Using default settings and environment variables.", "path", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Info("Config loaded successfully",
		"server_port", cfg.Server.Port,
		"database_driver", cfg.Database.Driver,
		"store_capacity", cfg.Store.Capacity,
		"lexical_slots", cfg.Review.LexicalSlots,
		"topic_slots", cfg.Review.TopicSlots,
	)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("database.driver", DefaultDatabaseDriver)
	v.SetDefault("database.url", DefaultDatabaseURL)
	v.SetDefault("store.capacity", DefaultStoreCapacity)
	v.SetDefault("review.lexical_slots", DefaultLexicalSlots)
	v.SetDefault("review.topic_slots", DefaultTopicSlots)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("jobs.autosave_interval", DefaultAutosaveInterval)
	v.SetDefault("jobs.reminder_interval", DefaultReminderInterval)
	v.SetDefault("jobs.notify_start_hour", DefaultNotifyStartHour)
	v.SetDefault("jobs.notify_end_hour", DefaultNotifyEndHour)
	v.SetDefault("notify.type", DefaultNotifyType)
	v.SetDefault("notify.to", "")
	v.SetDefault("notify.smtp.host", "localhost")
	v.SetDefault("notify.smtp.port", 1025)
	v.SetDefault("notify.smtp.from", "noreply@vocab-review.local")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PATCH", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type", "X-Request-Id"})
	v.SetDefault("cors.exposed_headers", []string{"X-Request-Id"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 300)
}

func (c *Config) validate() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if !slices.Contains(supportedDrivers, c.Database.Driver) {
		return fmt.Errorf("config: unsupported database.driver %q (want one of %v)", c.Database.Driver, supportedDrivers)
	}
	if c.Database.Driver != DriverMemory && c.Database.URL == "" {
		return fmt.Errorf("config: database.url is required for driver %q", c.Database.Driver)
	}
	if c.Store.Capacity <= 0 {
		slog.Warn("store.capacity not set or invalid, using default", "default", DefaultStoreCapacity)
		c.Store.Capacity = DefaultStoreCapacity
	}
	if c.Review.LexicalSlots < 0 || c.Review.TopicSlots < 0 {
		return fmt.Errorf("config: review slots must not be negative (lexical=%d, topic=%d)", c.Review.LexicalSlots, c.Review.TopicSlots)
	}
	if c.Jobs.NotifyStartHour < 0 || c.Jobs.NotifyStartHour > 23 || c.Jobs.NotifyEndHour < 0 || c.Jobs.NotifyEndHour > 24 {
		return fmt.Errorf("config: notify hours out of range (start=%d, end=%d)", c.Jobs.NotifyStartHour, c.Jobs.NotifyEndHour)
	}
	c.Notify.Type = strings.ToLower(strings.TrimSpace(c.Notify.Type))
	if c.Notify.Type == NotifyTypeSMTP && c.Notify.To == "" {
		return fmt.Errorf("config: notify.to is required for notify.type %q", c.Notify.Type)
	}
	if !strings.HasPrefix(c.Server.Port, ":") {
		c.Server.Port = ":" + c.Server.Port
	}
	return nil
}
