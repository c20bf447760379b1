package configs

import (
	"fmt"
	"time"

	"github.com/calderahq/hearth/internal/infrastructure/env"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	HTTP      HTTPConfig      `koanf:"http"`
	Store     StoreConfig     `koanf:"store"`
	Assistant AssistantConfig `koanf:"assistant"`
}

type HTTPConfig struct {
	Host         string        `koanf:"host"`
	Port         uint16        `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type StoreConfig struct {
	Path string `koanf:"path"`
}

// AssistantConfig carries the completion-provider settings. DefaultKey is the
// process-wide fallback credential; it is sourced from the environment only
// and must never be written back to a config file or log line.
type AssistantConfig struct {
	BaseURL    string        `koanf:"base_url"`
	Model      string        `koanf:"model"`
	Timeout    time.Duration `koanf:"timeout"`
	DefaultKey string        `koanf:"-"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Load from YAML file if it exists
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyDefaults(k)
	applyEnvOverrides(k)

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Assistant.DefaultKey = env.GetString("HEARTH_ASSISTANT_KEY", "")

	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	// HTTP defaults
	setDefault(k, "http.host", "0.0.0.0")
	setDefault(k, "http.port", 8080)
	setDefault(k, "http.read_timeout", 10*time.Second)
	setDefault(k, "http.write_timeout", 30*time.Second)

	// Store defaults
	setDefault(k, "store.path", "./data/messages")

	// Assistant defaults
	setDefault(k, "assistant.base_url", "https://api.openai.com/v1")
	setDefault(k, "assistant.model", "gpt-4o-mini")
	setDefault(k, "assistant.timeout", 30*time.Second)
}

func applyEnvOverrides(k *koanf.Koanf) {
	if host := env.GetString("HTTP_HOST", ""); host != "" {
		k.Set("http.host", host)
	}
	if port := env.GetInt("HTTP_PORT", 0); port > 0 {
		k.Set("http.port", port)
	}
	if readTimeout := env.GetInt("HTTP_READ_TIMEOUT_SECONDS", 0); readTimeout > 0 {
		k.Set("http.read_timeout", time.Duration(readTimeout)*time.Second)
	}
	if writeTimeout := env.GetInt("HTTP_WRITE_TIMEOUT_SECONDS", 0); writeTimeout > 0 {
		k.Set("http.write_timeout", time.Duration(writeTimeout)*time.Second)
	}

	if storePath := env.GetString("STORE_PATH", ""); storePath != "" {
		k.Set("store.path", storePath)
	}

	if baseURL := env.GetString("ASSISTANT_BASE_URL", ""); baseURL != "" {
		k.Set("assistant.base_url", baseURL)
	}
	if model := env.GetString("ASSISTANT_MODEL", ""); model != "" {
		k.Set("assistant.model", model)
	}
	if timeout := env.GetInt("ASSISTANT_TIMEOUT_SECONDS", 0); timeout > 0 {
		k.Set("assistant.timeout", time.Duration(timeout)*time.Second)
	}
}

// setDefault only sets the value if the key doesn't already exist
func setDefault(k *koanf.Koanf, key string, value interface{}) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}
