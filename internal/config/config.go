package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type WeaviateConfig struct {
	// URL is host:port or a full http(s) URL. Empty disables retrieval.
	URL   string `toml:"url"`
	Class string `toml:"class"`
}

type GameConfig struct {
	TimeLimitMinutes int      `toml:"time_limit_minutes"`
	Themes           []string `toml:"themes"`
}

func (c GameConfig) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitMinutes) * time.Minute
}

// Prompts override the built-in generator and narrator templates. Empty
// fields keep the defaults. Each template receives its arguments via
// fmt verbs in the documented order.
type Prompts struct {
	Concept string `toml:"concept"`
	Clues   string `toml:"clues"`
	Persona string `toml:"persona"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
}

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Weaviate WeaviateConfig `toml:"weaviate"`
	Game     GameConfig     `toml:"game"`
	Prompts  Prompts        `toml:"prompts"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// Default returns a configuration that works against a local Ollama and
// Memgraph with no file at all.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:       "ollama",
			Model:          "llama3.1",
			BaseURL:        "http://localhost:11434",
			TimeoutSeconds: 60,
		},
		Memgraph: MemgraphConfig{URI: "bolt://localhost:7687"},
		Weaviate: WeaviateConfig{Class: "Passage"},
		Game:     GameConfig{TimeLimitMinutes: 30},
		Server:   ServerConfig{Port: "8080"},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path on top of Default, so a partial file only overrides what
// it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to Default when it
// does not. Any other read or parse failure is returned.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// ApplyEnv overrides fields from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"LLM_PROVIDER":      &c.LLM.Provider,
		"LLM_MODEL":         &c.LLM.Model,
		"LLM_API_KEY":       &c.LLM.APIKey,
		"LLM_BASE_URL":      &c.LLM.BaseURL,
		"MEMGRAPH_URI":      &c.Memgraph.URI,
		"MEMGRAPH_USER":     &c.Memgraph.User,
		"MEMGRAPH_PASSWORD": &c.Memgraph.Password,
		"WEAVIATE_URL":      &c.Weaviate.URL,
		"PORT":              &c.Server.Port,
		"LOG_LEVEL":         &c.Log.Level,
		"LOG_FORMAT":        &c.Log.Format,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("GAME_TIME_LIMIT_MINUTES"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid GAME_TIME_LIMIT_MINUTES %q", v)
		}
		c.Game.TimeLimitMinutes = n
	}
	return nil
}

// FromEnvironment resolves CONFIG_PATH (default "config.toml"), loads it if
// present and applies environment overrides.
func FromEnvironment(lookup func(string) (string, bool)) (*Config, error) {
	path := "config.toml"
	if v, ok := lookup("CONFIG_PATH"); ok && v != "" {
		path = v
	}
	cfg, err := LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}
