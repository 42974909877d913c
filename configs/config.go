package configs

import (
	"errors"
	"fmt"
	"strings"

	"album-uploader/internal/domain"
	"album-uploader/pkg/validator"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App        `mapstructure:"app"`
	Telegram   `mapstructure:"telegram"`
	Upload     `mapstructure:"upload"`
	Session    `mapstructure:"session"`
	Dedup      `mapstructure:"dedup"`
	Dispatcher `mapstructure:"dispatcher"`
	Postgres   `mapstructure:"postgres"`
	Sentry     `mapstructure:"sentry"`
}

// App struct
type App struct {
	Debug     bool   `mapstructure:"debug"`
	Env       string `mapstructure:"env"`
	Port      string `mapstructure:"port" validate:"required"`
	LogLevel  string `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	LogFormat string `mapstructure:"log_format" validate:"omitempty,oneof=text json"`
}

// Telegram struct - Bot API access
type Telegram struct {
	Token        string `mapstructure:"token" validate:"required"`
	APIEndpoint  string `mapstructure:"api_endpoint"`
	FileEndpoint string `mapstructure:"file_endpoint"`
	WebhookURL   string `mapstructure:"webhook_url" validate:"omitempty,url"`
	Debug        bool   `mapstructure:"debug"`
	Timeout      int    `mapstructure:"timeout"` // seconds
}

// Upload struct - PocketBase upload backend
type Upload struct {
	BaseURL         string `mapstructure:"base_url" validate:"required,url"`
	AlbumCollection string `mapstructure:"album_collection" validate:"required"`
	ImageCollection string `mapstructure:"image_collection" validate:"required"`
	Timeout         int    `mapstructure:"timeout"` // seconds
	DefaultTitle    string `mapstructure:"default_title"`
}

// Session struct - Conversation session configuration
type Session struct {
	Timeout int `mapstructure:"timeout"` // minutes, 0 disables expiry
}

// Dedup struct
type Dedup struct {
	Capacity int `mapstructure:"capacity"`
}

// Dispatcher struct
type Dispatcher struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
}

// Postgres struct
type Postgres struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database" validate:"required_if=Enabled true"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Sentry struct - Optional error reporting
type Sentry struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

var config Config

// InitViper func - Loads config.<env>.yaml (or config.yaml) from path, with
// environment variable overrides (telegram.token -> TELEGRAM_TOKEN)
func InitViper(path, env string) error {
	cfg, err := load(path, env)
	if err != nil {
		return err
	}
	config = *cfg
	return nil
}

// GetViper func
func GetViper() *Config {
	return &config
}

// Validate checks required settings. Every failure wraps domain.ErrConfiguration.
func Validate(cfg *Config) error {
	if err := validator.New().ValidateStruct(cfg); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	return nil
}

func load(path, env string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, env); err != nil {
		return nil, err
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		logrus.Infof("Config file has changed: %s (restart to apply)", e.Name)
	})

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	return &cfg, nil
}

// readConfigFile - Environment specific file first, then config.yaml.
// Running without any file is allowed, everything can come from the environment.
func readConfigFile(v *viper.Viper, env string) error {
	names := []string{"config"}
	if env != "" {
		names = []string{"config." + env, "config"}
	}

	for _, name := range names {
		v.SetConfigName(name)
		err := v.ReadInConfig()
		if err == nil {
			logrus.Infof("Using config file: %s", v.ConfigFileUsed())
			return nil
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
		}
	}
	logrus.Warn("No config file found, using defaults and environment")
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.debug", false)
	v.SetDefault("app.env", "")
	v.SetDefault("app.port", "9089")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "text")

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.api_endpoint", "https://api.telegram.org/bot%s/%s")
	v.SetDefault("telegram.file_endpoint", "https://api.telegram.org/file/bot%s/%s")
	v.SetDefault("telegram.webhook_url", "")
	v.SetDefault("telegram.debug", false)
	v.SetDefault("telegram.timeout", 30)

	v.SetDefault("upload.base_url", "")
	v.SetDefault("upload.album_collection", "album")
	v.SetDefault("upload.image_collection", "wallpaper")
	v.SetDefault("upload.timeout", 60)
	v.SetDefault("upload.default_title", domain.DefaultTitle)

	v.SetDefault("session.timeout", 30)
	v.SetDefault("dedup.capacity", 10000)
	v.SetDefault("dispatcher.workers", 8)
	v.SetDefault("dispatcher.queue_size", 64)

	v.SetDefault("postgres.enabled", false)
	v.SetDefault("postgres.host", "")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.username", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.database", "")
	v.SetDefault("postgres.sslmode", false)

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "")
}
