package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/soundcloud-grabber/internal/constants"
	"github.com/oshokin/soundcloud-grabber/internal/logger"
)

// Config holds all configuration settings.
type Config struct {
	// ClientID is the public SoundCloud client identifier sent with every API request.
	ClientID string `mapstructure:"client_id"`
	// OutputPath is the directory where tracks and the download log are saved.
	OutputPath string `mapstructure:"output_path"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// MaxConcurrentDownloads is the size of the worker pool used for playlists.
	MaxConcurrentDownloads int64 `mapstructure:"max_concurrent_downloads"`
	// RequestTimeout bounds every HTTP request (e.g. "30s"). Empty or "0" disables it.
	RequestTimeout string `mapstructure:"request_timeout"`
	// UserAgent overrides the browser User-Agent sent to SoundCloud.
	UserAgent string `mapstructure:"user_agent"`
	// APIBaseURL is the base URL of the SoundCloud api-v2 (set automatically).
	APIBaseURL string
	// SiteBaseURL is the base URL of the SoundCloud web site (set automatically).
	SiteBaseURL string
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedRequestTimeout is the parsed request timeout, zero means none.
	ParsedRequestTimeout time.Duration
}

const (
	// APIBaseURL is the base URL of the SoundCloud api-v2.
	APIBaseURL = "https://api-v2.soundcloud.com"

	// SiteBaseURL is the base URL of the SoundCloud web site.
	SiteBaseURL = "https://soundcloud.com"

	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".soundcloud-grabber.yaml"

	// DefaultOutputPath is the save directory used when none is configured.
	DefaultOutputPath = "."

	// DefaultLogLevel is the log level used when none is configured.
	DefaultLogLevel = "info"

	// DefaultMaxConcurrentDownloads is the default playlist worker pool size.
	DefaultMaxConcurrentDownloads = 8

	// DefaultMaxLogLength is the default maximum size (in bytes) for log files.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// EnvPrefix prefixes environment variables that override the file, e.g. SOUNDCLOUD_GRABBER_CLIENT_ID.
	EnvPrefix = "SOUNDCLOUD_GRABBER"

	clientIDKey = "client_id"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyClientID indicates that the client ID is missing.
	ErrEmptyClientID = errors.New("client ID cannot be empty, run the client-id command or set client_id")
	// ErrEmptyOutputPath indicates that the save directory is missing.
	ErrEmptyOutputPath = errors.New("output path cannot be empty")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidConcurrentDownloads indicates that the concurrent downloads count is invalid.
	ErrInvalidConcurrentDownloads = errors.New("max concurrent downloads must be a positive integer")
	// ErrInvalidRequestTimeout indicates that the request timeout is negative.
	ErrInvalidRequestTimeout = errors.New("request_timeout cannot be negative")
)

// LoadConfig loads configuration settings from a file, a .env file and the environment.
// A missing default configuration file is not an error, a missing explicit one is.
func LoadConfig(configFilename string) (*Config, error) {
	isDefaultFile := configFilename == ""
	if isDefaultFile {
		configFilename = DefaultConfigFilename
	}

	// .env is optional.
	_ = godotenv.Load()

	// Every load starts from a clean state so values of a previous load never leak in.
	viper.Reset()

	v := viper.GetViper()
	v.SetDefault(clientIDKey, "")
	v.SetDefault("output_path", DefaultOutputPath)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("max_concurrent_downloads", DefaultMaxConcurrentDownloads)
	v.SetDefault("request_timeout", "")
	v.SetDefault("user_agent", "")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(configFilename)

	if err := v.ReadInConfig(); err != nil {
		if !isDefaultFile || !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}

		logger.Debugf(context.Background(), "Configuration file %s not found, using defaults", configFilename)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	cfg.ClientID = strings.TrimSpace(cfg.ClientID)
	if cfg.ClientID == "" {
		return ErrEmptyClientID
	}

	SetServiceURLs(cfg)

	cfg.OutputPath = strings.TrimSpace(cfg.OutputPath)
	if cfg.OutputPath == "" {
		return ErrEmptyOutputPath
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	requestTimeout := strings.TrimSpace(cfg.RequestTimeout)
	if requestTimeout != "" && requestTimeout != "0" {
		parsed, err := time.ParseDuration(requestTimeout)
		if err != nil {
			return fmt.Errorf("failed to parse request timeout: %w", err)
		}

		if parsed < 0 {
			return ErrInvalidRequestTimeout
		}

		cfg.ParsedRequestTimeout = parsed
	}

	if cfg.MaxConcurrentDownloads <= 0 {
		return ErrInvalidConcurrentDownloads
	}

	return nil
}

// SetServiceURLs fills the fixed SoundCloud base URLs.
func SetServiceURLs(cfg *Config) {
	cfg.APIBaseURL = APIBaseURL
	cfg.SiteBaseURL = SiteBaseURL
}

// SaveConfig saves the client ID to the configuration file while preserving its format and order.
func SaveConfig(cfg *Config) error {
	configFile := getConfigFilePath()

	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, cfg.ClientID, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	setStringInNode(&node, clientIDKey, cfg.ClientID)

	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getConfigFilePath returns the config file path from viper or the default.
func getConfigFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return DefaultConfigFilename
	}

	return configFile
}

// handleMissingConfigFile creates a new config file if it doesn't exist.
func handleMissingConfigFile(configFile, clientID string, err error) error {
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	viper.Set(clientIDKey, clientID)

	if err = viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// setStringInNode sets key to value in the top-level mapping of a YAML document,
// appending the key when it is absent.
func setStringInNode(node *yaml.Node, key, value string) {
	if len(node.Content) == 0 {
		node.Kind = yaml.DocumentNode
		node.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}

	mapNode := node.Content[0]
	if mapNode.Kind != yaml.MappingNode {
		return
	}

	// Keys and values alternate.
	for i := 0; i+1 < len(mapNode.Content); i += 2 {
		if mapNode.Content[i].Value != key {
			continue
		}

		valueNode := mapNode.Content[i+1]
		valueNode.Kind = yaml.ScalarNode
		valueNode.Tag = "!!str"
		valueNode.Value = value

		if valueNode.Style == 0 {
			valueNode.Style = yaml.DoubleQuotedStyle
		}

		return
	}

	mapNode.Content = append(mapNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value, Style: yaml.DoubleQuotedStyle},
	)
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError

	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
