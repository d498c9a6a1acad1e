package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "GOODNEWS_CONFIG"
	serverAddrEnv     = "GOODNEWS_ADDR"
	curationQueryEnv  = "GOODNEWS_QUERY"
	ledgerPathEnv     = "LEDGER_PATH"
	tavilyAPIKeyEnv   = "TAVILY_API_KEY"
	ollamaHostEnv     = "OLLAMA_HOST"
	ollamaModelEnv    = "OLLAMA_MODEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Curation CurationConfig `yaml:"curation"`
	Search   SearchConfig   `yaml:"search"`
	Feeds    []FeedConfig   `yaml:"feeds"`
	Ollama   OllamaConfig   `yaml:"ollama"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig describes the HTTP listen address.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LedgerConfig describes the SQLite dedup ledger and its retention policy.
type LedgerConfig struct {
	Path               string `yaml:"path"`
	RetentionDays      int    `yaml:"retentionDays"`
	PruneIntervalHours int    `yaml:"pruneIntervalHours"`
}

// Retention resolves the configured retention window.
func (l LedgerConfig) Retention() time.Duration {
	return time.Duration(l.RetentionDays) * 24 * time.Hour
}

// PruneInterval resolves how often maintenance runs.
func (l LedgerConfig) PruneInterval() time.Duration {
	return time.Duration(l.PruneIntervalHours) * time.Hour
}

// CurationConfig bounds a single curation run.
type CurationConfig struct {
	Query       string `yaml:"query"`
	TargetCount int    `yaml:"targetCount"`
	PoolSize    int    `yaml:"poolSize"`
}

// SearchConfig wires the Tavily search backend.
type SearchConfig struct {
	Endpoint       string `yaml:"endpoint"`
	APIKey         string `yaml:"apiKey"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout resolves the per-search deadline.
func (s SearchConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// FeedConfig describes one RSS/Atom feed used as a candidate source.
type FeedConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// OllamaConfig defines how to contact the generative-text service.
type OllamaConfig struct {
	Host           string  `yaml:"host"`
	Model          string  `yaml:"model"`
	Temperature    float64 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeoutSeconds"`
}

// Timeout resolves the per-summarization deadline.
func (o OllamaConfig) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// TelegramConfig wires the optional digest channel.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// FetchTimeout bounds a single article download and extraction.
const FetchTimeout = 20 * time.Second

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(curationQueryEnv); v != "" {
		c.Curation.Query = v
	}

	if v := os.Getenv(ledgerPathEnv); v != "" {
		c.Ledger.Path = v
	}

	if v := os.Getenv(tavilyAPIKeyEnv); v != "" {
		c.Search.APIKey = v
	}

	if v := os.Getenv(ollamaHostEnv); v != "" {
		c.Ollama.Host = v
	}

	if v := os.Getenv(ollamaModelEnv); v != "" {
		c.Ollama.Model = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Telegram.ChatID = v
	}

	if v := os.Getenv("TARGET_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Curation.TargetCount = n
		}
	}

	if v := os.Getenv("POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Curation.PoolSize = n
		}
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Server.Addr != "" {
		base.Server = override.Server
	}

	if override.Ledger.Path != "" {
		base.Ledger.Path = override.Ledger.Path
	}
	if override.Ledger.RetentionDays > 0 {
		base.Ledger.RetentionDays = override.Ledger.RetentionDays
	}
	if override.Ledger.PruneIntervalHours > 0 {
		base.Ledger.PruneIntervalHours = override.Ledger.PruneIntervalHours
	}

	if override.Curation.Query != "" {
		base.Curation.Query = override.Curation.Query
	}
	if override.Curation.TargetCount > 0 {
		base.Curation.TargetCount = override.Curation.TargetCount
	}
	if override.Curation.PoolSize > 0 {
		base.Curation.PoolSize = override.Curation.PoolSize
	}

	if override.Search.Endpoint != "" {
		base.Search.Endpoint = override.Search.Endpoint
	}
	if override.Search.APIKey != "" {
		base.Search.APIKey = override.Search.APIKey
	}
	if override.Search.TimeoutSeconds > 0 {
		base.Search.TimeoutSeconds = override.Search.TimeoutSeconds
	}

	if len(override.Feeds) > 0 {
		base.Feeds = override.Feeds
	}

	if override.Ollama.Host != "" {
		base.Ollama.Host = override.Ollama.Host
	}
	if override.Ollama.Model != "" {
		base.Ollama.Model = override.Ollama.Model
	}
	if override.Ollama.Temperature > 0 {
		base.Ollama.Temperature = override.Ollama.Temperature
	}
	if override.Ollama.TimeoutSeconds > 0 {
		base.Ollama.TimeoutSeconds = override.Ollama.TimeoutSeconds
	}

	if override.Telegram.BotToken != "" {
		base.Telegram.BotToken = override.Telegram.BotToken
	}
	if override.Telegram.ChatID != "" {
		base.Telegram.ChatID = override.Telegram.ChatID
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Server:  ServerConfig{Addr: ":8080"},
		Ledger: LedgerConfig{
			Path:               "goodnews.db",
			RetentionDays:      30,
			PruneIntervalHours: 24,
		},
		Curation: CurationConfig{
			Query:       "feel good news positive uplifting recent",
			TargetCount: 5,
			PoolSize:    30,
		},
		Search: SearchConfig{
			Endpoint:       "https://api.tavily.com/search",
			TimeoutSeconds: 30,
		},
		Ollama: OllamaConfig{
			Host:           "http://localhost:11434",
			Model:          "llama3.1:8b-instruct",
			Temperature:    0.7,
			TimeoutSeconds: 30,
		},
	}
}
