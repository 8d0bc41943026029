package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	LLM    LLM    `yaml:"llm"`
	Search Search `yaml:"search"`
	Fetch  Fetch  `yaml:"fetch"`
	Server Server `yaml:"server"`
}

type LLM struct {
	Provider    string `yaml:"provider"`
	OpenAIModel string `yaml:"openai_model"`
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	OllamaModel string `yaml:"ollama_model"`
	OllamaURL   string `yaml:"ollama_url"`
}

type Search struct {
	Provider   string `yaml:"provider"`
	APIKeyEnv  string `yaml:"api_key_env"`
	SearxngURL string `yaml:"searxng_url"`
	MaxResults int    `yaml:"max_results"`
}

type Fetch struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

type Server struct {
	Port int `yaml:"port"`
}

// ConfigDir returns the XDG config directory for seobrief.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "seobrief")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/seobrief/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'seobrief init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		LLM: LLM{
			Provider:    "openai",
			OpenAIModel: "gpt-4o-mini",
			BaseURL:     "https://api.openai.com/v1",
			APIKeyEnv:   "OPENAI_API_KEY",
			OllamaModel: "qwen2.5:7b",
			OllamaURL:   "http://localhost:11434",
		},
		Search: Search{
			Provider:   "tavily",
			APIKeyEnv:  "TAVILY_API_KEY",
			SearxngURL: "http://localhost:8888",
			MaxResults: 3,
		},
		Fetch:  Fetch{TimeoutSeconds: 15},
		Server: Server{Port: 8000},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
