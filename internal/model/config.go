package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Parameter keys read by the AI layer. Every key lives under the
// "daedaly." namespace in the parameter store; the same keys without the
// prefix may be set in the "ai" section of the config file or as
// DAEDALY_<KEY> environment variables.
const (
	ParamProvider          = "daedaly.what_gpt_use"
	ParamOpenAIKey         = "daedaly.openai_key"
	ParamOpenAIModel       = "daedaly.openai_model"
	ParamOpenAISDK         = "daedaly.openai_sdk"
	ParamGeminiKey         = "daedaly.gemini_key"
	ParamGeminiModel       = "daedaly.gemini_model"
	ParamDeepSeekKey       = "daedaly.deepseek_key"
	ParamDeepSeekModel     = "daedaly.deepseek_model"
	ParamLocalGatewayURL   = "daedaly.local_gateway_url"
	ParamLocalModelName    = "daedaly.local_model_name"
	ParamLocalExtraHeaders = "daedaly.local_extra_headers"
	ParamAgentURL          = "daedaly.agent_url"
)

// ParamNamespace is the prefix shared by all parameter keys.
const ParamNamespace = "daedaly."

// AIParamKeys lists every parameter key understood by the AI layer.
var AIParamKeys = []string{
	ParamProvider,
	ParamOpenAIKey,
	ParamOpenAIModel,
	ParamOpenAISDK,
	ParamGeminiKey,
	ParamGeminiModel,
	ParamDeepSeekKey,
	ParamDeepSeekModel,
	ParamLocalGatewayURL,
	ParamLocalModelName,
	ParamLocalExtraHeaders,
	ParamAgentURL,
}

// SecretParamKeys are the parameters that may be kept in the OS keyring
// instead of the parameter store.
var SecretParamKeys = []string{
	ParamOpenAIKey,
	ParamGeminiKey,
	ParamDeepSeekKey,
}

// DatabaseConfig holds the location of the SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// TelemetryConfig holds OpenTelemetry exporter settings. Tracing is
// disabled when Endpoint is empty.
type TelemetryConfig struct {
	Endpoint    string            `mapstructure:"endpoint" yaml:"endpoint"`
	ServiceName string            `mapstructure:"service_name" yaml:"service_name"`
	Headers     map[string]string `mapstructure:"headers" yaml:"headers"`
}

// Enabled reports whether an exporter endpoint is configured.
func (t TelemetryConfig) Enabled() bool {
	return strings.TrimSpace(t.Endpoint) != ""
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// AI holds fallback values for AI parameters, keyed without the
	// "daedaly." prefix (e.g. "what_gpt_use", "gemini_key").
	AI map[string]string `mapstructure:"ai" yaml:"ai"`
}

// AIParam returns the fallback value for a namespaced parameter key.
func (c *AppConfig) AIParam(key string) (string, bool) {
	if c == nil || c.AI == nil {
		return "", false
	}
	v, ok := c.AI[strings.TrimPrefix(key, ParamNamespace)]
	return v, ok
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/daedaly/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "daedaly", "config.yaml")
}

// DefaultDatabasePath returns the default SQLite location next to the
// configuration file.
func DefaultDatabasePath() string {
	return filepath.Join(filepath.Dir(DefaultConfigPath()), "daedaly.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{Path: DefaultDatabasePath()},
		Log:      LogConfig{Level: "info"},
		Telemetry: TelemetryConfig{
			ServiceName: "daedaly",
		},
		AI: map[string]string{},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration. AI
// parameters can be overridden with DAEDALY_<KEY> environment variables.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("log.level", "info")
	v.SetDefault("telemetry.service_name", "daedaly")

	v.SetEnvPrefix("DAEDALY")
	for _, key := range AIParamKeys {
		short := strings.TrimPrefix(key, ParamNamespace)
		if err := v.BindEnv("ai."+short, "DAEDALY_"+strings.ToUpper(short)); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	// A missing file is not an error: defaults and env still apply.
	if err := v.ReadInConfig(); err != nil && !isConfigNotFound(err) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.AI == nil {
		cfg.AI = map[string]string{}
	}

	return cfg, nil
}

func isConfigNotFound(err error) bool {
	if _, ok := err.(*os.PathError); ok {
		return true
	}
	_, ok := err.(viper.ConfigFileNotFoundError)
	return ok
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("log", cfg.Log)
	v.Set("telemetry", cfg.Telemetry)
	v.Set("ai", cfg.AI)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
