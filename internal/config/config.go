// Package config assembles codegenome settings from defaults, an optional
// config file, a .env file and CODEGENOME_* environment variables.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/codegenome/internal/llm"
)

// Config holds every setting the binary reads.
type Config struct {
	DBPath   string `mapstructure:"db_path"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	LLM llm.Config `mapstructure:"llm"`
	AI  AIConfig   `mapstructure:"ai"`

	Server ServerConfig `mapstructure:"server"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Backup BackupConfig `mapstructure:"backup"`

	// SnapshotKeep is how many state snapshots survive pruning.
	SnapshotKeep int `mapstructure:"snapshot_keep"`
}

// AIConfig tunes the prompts sent through the LLM provider.
type AIConfig struct {
	MaxTokens        int     `mapstructure:"max_tokens"`
	Temperature      float64 `mapstructure:"temperature"`
	StructuredOutput bool    `mapstructure:"structured_output"`
}

// ServerConfig configures the `serve` HTTP API.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// RedisConfig enables the AI response cache when Addr is set.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

// BackupConfig points snapshot backups at an S3-compatible bucket.
type BackupConfig struct {
	Bucket    string `mapstructure:"bucket"`
	KeyPrefix string `mapstructure:"key_prefix"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	Profile   string `mapstructure:"profile"`
}

// providerKeyEnv maps the short provider key variables onto config keys.
var providerKeyEnv = map[string]string{
	"llm.anthropic.api_key":  "CODEGENOME_ANTHROPIC_API_KEY",
	"llm.openai.api_key":     "CODEGENOME_OPENAI_API_KEY",
	"llm.openai.base_url":    "CODEGENOME_OPENAI_BASE_URL",
	"llm.gemini.api_key":     "CODEGENOME_GEMINI_API_KEY",
	"llm.openrouter.api_key": "CODEGENOME_OPENROUTER_API_KEY",
	"llm.anthropic.model":    "CODEGENOME_ANTHROPIC_MODEL",
	"llm.openai.model":       "CODEGENOME_OPENAI_MODEL",
	"llm.gemini.model":       "CODEGENOME_GEMINI_MODEL",
	"llm.openrouter.model":   "CODEGENOME_OPENROUTER_MODEL",
}

// Load reads configuration. configFile may be empty, in which case
// codegenome.yaml is looked up in the working directory and the user
// config directory; a missing file is not an error.
func Load(configFile string) (Config, error) {
	loadDotEnv(".env")

	v := viper.New()
	v.SetEnvPrefix("CODEGENOME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	for key, env := range providerKeyEnv {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	// The database path also honours the bare CODEGENOME_DB variable.
	if err := v.BindEnv("db_path", "CODEGENOME_DB_PATH", "CODEGENOME_DB"); err != nil {
		return Config{}, fmt.Errorf("bind db path: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("codegenome")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "codegenome"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Fall back to the standard provider variables when the configured
	// provider has no key of its own.
	if !cfg.LLM.HasKey() {
		if found, ok := llm.DiscoverConfig(); ok {
			cfg.LLM.Provider = found.Provider
			cfg.LLM.Anthropic.APIKey = found.Anthropic.APIKey
			cfg.LLM.OpenAI.APIKey = found.OpenAI.APIKey
			cfg.LLM.Gemini.APIKey = found.Gemini.APIKey
			cfg.LLM.OpenRouter.APIKey = found.OpenRouter.APIKey
		}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := llm.DefaultConfig()

	v.SetDefault("db_path", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("snapshot_keep", 20)

	v.SetDefault("llm.provider", def.Provider)
	v.SetDefault("llm.anthropic.model", def.Anthropic.Model)
	v.SetDefault("llm.openai.model", def.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.model", def.Gemini.Model)
	v.SetDefault("llm.openrouter.model", def.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.openrouter.site_url", "")
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.retry.max_attempts", def.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", def.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", def.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", def.Retry.Multiplier)
	v.SetDefault("llm.timeout", def.Timeout)

	v.SetDefault("ai.max_tokens", 2048)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.structured_output", false)

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("server.token_ttl", 24*time.Hour)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", llm.DefaultCacheTTL)

	v.SetDefault("backup.bucket", "")
	v.SetDefault("backup.key_prefix", "codegenome-backups")
	v.SetDefault("backup.region", "us-east-1")
	v.SetDefault("backup.endpoint", "")
	v.SetDefault("backup.profile", "")
}

// loadDotEnv sets variables from a KEY=VALUE file without overriding the
// real environment.
func loadDotEnv(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.Trim(strings.TrimSpace(line[idx+1:]), `"'`)
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
