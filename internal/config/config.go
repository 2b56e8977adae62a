package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the application configuration.
type Config struct {
	General struct {
		DefaultAI string `koanf:"default_ai"`
		Model     string `koanf:"model"`
	} `koanf:"general"`

	AI map[string]map[string]interface{} `koanf:"ai"`

	Limits struct {
		MaxKeyFiles     int `koanf:"max_key_files"`
		MaxBytesPerFile int `koanf:"max_bytes_per_file"`
		MaxPromptBytes  int `koanf:"max_prompt_bytes"`
	} `koanf:"limits"`
}

// defaultPaths returns the config file search order: working directory,
// then user config, then system config.
func defaultPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		"./readyou.toml",
		filepath.Join(home, ".config", "readyou", "readyou.toml"),
		"/etc/readyou/readyou.toml",
	}
}

// LoadConfig loads configuration from defaults, then an optional TOML file
// (explicit path or the first hit on the search path), then READYOU_
// environment variables.
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	k.Load(confmap.Provider(map[string]interface{}{
		"general.default_ai": "openai",
		"general.model":      "gpt-4o-mini",
	}, "."), nil)

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		for _, path := range defaultPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	k.Load(env.Provider("READYOU_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "READYOU_")), "_", ".", -1)
	}), nil)

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig writes a sample configuration file, creating the parent
// directory when needed.
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	sampleConfig := `# readyou Configuration

[general]
default_ai = "openai"
model = "gpt-4o-mini"

[ai.openai]
api_key = "your-openai-api-key"

[ai.gemini]
api_key = "your-gemini-api-key"

[ai.ollama]
base_url = "http://localhost:11434"

[limits]
max_key_files = 8
max_bytes_per_file = 16384
max_prompt_bytes = 65536
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate checks the configuration for presence of the values the pipeline
// needs. Values are otherwise treated as opaque.
func Validate(config *Config) error {
	if config.General.DefaultAI == "" {
		return fmt.Errorf("default AI provider is required")
	}

	aiConfig, ok := config.AI[config.General.DefaultAI]
	if !ok {
		return fmt.Errorf("configuration for AI provider %s not found", config.General.DefaultAI)
	}

	switch config.General.DefaultAI {
	case "openai", "gemini":
		key, _ := aiConfig["api_key"].(string)
		if key == "" || strings.HasPrefix(key, "your-") {
			return fmt.Errorf("%s api_key is required", config.General.DefaultAI)
		}
	case "ollama":
		// Local backend, no credentials needed.
	}

	return nil
}
