package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "NPS_LABELER_CONFIG"
	warehouseDSNEnv   = "WAREHOUSE_DSN"
	classifierURLEnv  = "CLASSIFIER_URL"
	classifierKeyEnv  = "CLASSIFIER_API_KEY"
	openaiKeyEnv      = "OPENAI_API_KEY"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	runModeEnv        = "NPS_RUN_MODE"
)

// Classifier backends.
const (
	BackendHTTP   = "http"
	BackendOpenAI = "openai"
)

// Run modes.
const (
	ModeIncremental = "incremental"
	ModeFull        = "full"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Warehouse     WarehouseConfig    `yaml:"warehouse"`
	Classifier    ClassifierConfig   `yaml:"classifier"`
	Run           RunConfig          `yaml:"run"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// LoggingConfig controls the process-wide logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// WarehouseConfig describes the Snowflake connection. A full DSN wins over
// the individual fields.
type WarehouseConfig struct {
	DSN       string `yaml:"dsn"`
	Account   string `yaml:"account"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Database  string `yaml:"database"`
	Schema    string `yaml:"schema"`
	Role      string `yaml:"role"`
	Warehouse string `yaml:"warehouse"`
}

// ClassifierConfig selects and parameterizes the scoring backend.
type ClassifierConfig struct {
	Backend        string `yaml:"backend"`
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"apiKey"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout resolves the per-call classification timeout.
func (c ClassifierConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RunConfig shapes one labeling run.
type RunConfig struct {
	Mode      string `yaml:"mode"`
	ChunkSize int    `yaml:"chunkSize"`
	Workers   int    `yaml:"workers"`
	CSVPath   string `yaml:"csvPath"`
	Interval  string `yaml:"interval"`
}

// Incremental reports whether the run appends to prior output instead of
// replacing it.
func (r RunConfig) Incremental() bool {
	return r.Mode != ModeFull
}

// Every resolves the rerun interval. Zero means run once and exit.
func (r RunConfig) Every() time.Duration {
	if r.Interval == "" {
		return 0
	}
	d, err := time.ParseDuration(r.Interval)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

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
	cfg.normalize()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(warehouseDSNEnv); v != "" {
		c.Warehouse.DSN = v
	}

	if v := os.Getenv(classifierURLEnv); v != "" {
		c.Classifier.Endpoint = v
	}
	if v := os.Getenv(classifierKeyEnv); v != "" {
		c.Classifier.APIKey = v
	}
	if c.Classifier.APIKey == "" {
		if v := os.Getenv(openaiKeyEnv); v != "" {
			c.Classifier.APIKey = v
		}
	}

	if v := os.Getenv(runModeEnv); v != "" {
		c.Run.Mode = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func (c *Config) normalize() {
	switch c.Run.Mode {
	case ModeIncremental, ModeFull:
	default:
		log.Printf("config: unknown run mode %q, reverting to %s", c.Run.Mode, ModeIncremental)
		c.Run.Mode = ModeIncremental
	}

	switch c.Classifier.Backend {
	case BackendHTTP, BackendOpenAI:
	default:
		log.Printf("config: unknown classifier backend %q, reverting to %s", c.Classifier.Backend, BackendHTTP)
		c.Classifier.Backend = BackendHTTP
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Warehouse.DSN != "" {
		base.Warehouse.DSN = override.Warehouse.DSN
	}
	if override.Warehouse.Account != "" {
		base.Warehouse.Account = override.Warehouse.Account
	}
	if override.Warehouse.User != "" {
		base.Warehouse.User = override.Warehouse.User
	}
	if override.Warehouse.Password != "" {
		base.Warehouse.Password = override.Warehouse.Password
	}
	if override.Warehouse.Database != "" {
		base.Warehouse.Database = override.Warehouse.Database
	}
	if override.Warehouse.Schema != "" {
		base.Warehouse.Schema = override.Warehouse.Schema
	}
	if override.Warehouse.Role != "" {
		base.Warehouse.Role = override.Warehouse.Role
	}
	if override.Warehouse.Warehouse != "" {
		base.Warehouse.Warehouse = override.Warehouse.Warehouse
	}

	if override.Classifier.Backend != "" {
		base.Classifier.Backend = override.Classifier.Backend
	}
	if override.Classifier.Endpoint != "" {
		base.Classifier.Endpoint = override.Classifier.Endpoint
	}
	if override.Classifier.Model != "" {
		base.Classifier.Model = override.Classifier.Model
	}
	if override.Classifier.APIKey != "" {
		base.Classifier.APIKey = override.Classifier.APIKey
	}
	if override.Classifier.TimeoutSeconds != 0 {
		base.Classifier.TimeoutSeconds = override.Classifier.TimeoutSeconds
	}

	if override.Run.Mode != "" {
		base.Run.Mode = override.Run.Mode
	}
	if override.Run.ChunkSize != 0 {
		base.Run.ChunkSize = override.Run.ChunkSize
	}
	if override.Run.Workers != 0 {
		base.Run.Workers = override.Run.Workers
	}
	if override.Run.CSVPath != "" {
		base.Run.CSVPath = override.Run.CSVPath
	}
	if override.Run.Interval != "" {
		base.Run.Interval = override.Run.Interval
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Warehouse: WarehouseConfig{
			Database:  "DATA_SCIENCE_DB",
			Schema:    "PUBLIC",
			Role:      "SCIENTIST",
			Warehouse: "DATA_SCIENCE_WH",
		},
		Classifier: ClassifierConfig{
			Backend:        BackendHTTP,
			Endpoint:       "http://localhost:8000/classify",
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 60,
		},
		Run: RunConfig{
			Mode:      ModeIncremental,
			ChunkSize: 100,
			Workers:   4,
		},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
	}
}
