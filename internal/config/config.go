package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = "wst"
	envPrefix  = "WST"

	KeyServerAddress     = "server.address"
	KeyServerSuggestions = "server.suggestions"
	KeyPollInterval      = "network.poll_interval"
	KeyAnnounceNetwork   = "session.announce_network"
	KeyOutboxSize        = "connection.outbox_size"
	KeyLogLevel          = "log.level"
	KeyLogFormat         = "log.format"
	KeyLogFile           = "log.file"
	KeyHistoryPath       = "history.path"
	KeyHistoryLimit      = "history.limit"
)

var DefaultSuggestions = []string{
	"ws://127.0.0.1:8080",
	"ws://192.168.1.100:8080",
	"ws://192.168.0.100:8080",
	"ws://10.0.0.100:8080",
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Network    NetworkConfig    `mapstructure:"network"`
	Session    SessionConfig    `mapstructure:"session"`
	Connection ConnectionConfig `mapstructure:"connection"`
	Log        LogConfig        `mapstructure:"log"`
	History    HistoryConfig    `mapstructure:"history"`
}

type ServerConfig struct {
	Address     string   `mapstructure:"address"`
	Suggestions []string `mapstructure:"suggestions"`
}

type NetworkConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type SessionConfig struct {
	AnnounceNetwork bool `mapstructure:"announce_network"`
}

type ConnectionConfig struct {
	OutboxSize int `mapstructure:"outbox_size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type HistoryConfig struct {
	Path  string `mapstructure:"path"`
	Limit int    `mapstructure:"limit"`
}

// Dir is the directory holding config.toml, the endpoint history and the
// log file.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}

	return filepath.Join(base, configDir), nil
}

// Load reads .env from the working directory, then config.toml, then WST_*
// environment overrides, into v and returns the decoded result. A missing
// .env or config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, dir)

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault(KeyServerAddress, "ws://127.0.0.1:8080")
	v.SetDefault(KeyServerSuggestions, DefaultSuggestions)
	v.SetDefault(KeyPollInterval, 2*time.Second)
	v.SetDefault(KeyAnnounceNetwork, true)
	v.SetDefault(KeyOutboxSize, 64)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyLogFile, filepath.Join(dir, "wst.log"))
	v.SetDefault(KeyHistoryPath, filepath.Join(dir, "endpoints.toml"))
	v.SetDefault(KeyHistoryLimit, 10)
}

func (c Config) validate() error {
	if c.Network.PollInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyPollInterval, c.Network.PollInterval)
	}
	if c.Connection.OutboxSize <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyOutboxSize, c.Connection.OutboxSize)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%s must be text or json, got %q", KeyLogFormat, c.Log.Format)
	}

	return nil
}
