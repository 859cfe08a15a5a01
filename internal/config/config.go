package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "LISTINGS_MONITOR_CONFIG"
	emailFromEnv     = "EMAIL_FROM"
	emailPasswordEnv = "EMAIL_PASSWORD"
	emailToEnv       = "EMAIL_TO"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
	postgresDSNEnv   = "POSTGRES_DSN"
)

// Run modes for the scheduler section.
const (
	ModeSingle     = "single"
	ModeContinuous = "continuous"
)

// Config holds high-level settings required across the application.
type Config struct {
	Sources       []string           `yaml:"sources"`
	Criteria      CriteriaConfig     `yaml:"criteria"`
	Storage       StorageConfig      `yaml:"storage"`
	Notifications NotificationConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Scraper       ScraperConfig      `yaml:"scraper"`
	Logging       LoggingConfig      `yaml:"logging"`
}

// CriteriaConfig mirrors the declarative listing filter.
type CriteriaConfig struct {
	MinPrice        float64  `yaml:"minPrice"`
	MaxPrice        float64  `yaml:"maxPrice"`
	MinArea         float64  `yaml:"minArea"`
	IncludeKeywords []string `yaml:"includeKeywords"`
	ExcludeKeywords []string `yaml:"excludeKeywords"`
}

// StorageConfig selects where the seen-listing set lives. A non-empty
// Postgres DSN takes precedence over the state file.
type StorageConfig struct {
	StateFile   string `yaml:"stateFile"`
	PostgresDSN string `yaml:"postgresDsn"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Email    EmailConfig    `yaml:"email"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// EmailConfig wires SMTP delivery.
type EmailConfig struct {
	SMTPHost string `yaml:"smtpHost"`
	SMTPPort int    `yaml:"smtpPort"`
	From     string `yaml:"from"`
	Password string `yaml:"password"`
	To       string `yaml:"to"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SchedulerConfig defines whether the monitor runs once or keeps going.
type SchedulerConfig struct {
	Mode           string `yaml:"mode"`
	IntervalHours  int    `yaml:"intervalHours"`
	RunImmediately bool   `yaml:"runImmediately"`
}

// Interval resolves the configured repeat interval.
func (s SchedulerConfig) Interval() time.Duration {
	hours := s.IntervalHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// ScraperConfig tunes outbound page fetches.
type ScraperConfig struct {
	UserAgent             string `yaml:"userAgent"`
	RequestTimeoutSeconds int    `yaml:"requestTimeoutSeconds"`
	SourceDelaySeconds    int    `yaml:"sourceDelaySeconds"`
}

// RequestTimeout resolves the per-request timeout.
func (s ScraperConfig) RequestTimeout() time.Duration {
	if s.RequestTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// SourceDelay resolves the pause between consecutive sources.
func (s ScraperConfig) SourceDelay() time.Duration {
	if s.SourceDelaySeconds < 0 {
		return 0
	}
	return time.Duration(s.SourceDelaySeconds) * time.Second
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. The YAML document is unmarshalled over the defaults, so absent
// keys keep their default values.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			cfg = defaultConfig()
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultConfig().Sources
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(emailFromEnv); v != "" {
		c.Notifications.Email.From = v
	}
	if v := os.Getenv(emailPasswordEnv); v != "" {
		c.Notifications.Email.Password = v
	}
	if v := os.Getenv(emailToEnv); v != "" {
		c.Notifications.Email.To = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
	if v := os.Getenv(postgresDSNEnv); v != "" {
		c.Storage.PostgresDSN = v
	}
}

func defaultConfig() Config {
	return Config{
		Sources: []string{
			"https://www.ss.lv/lv/real-estate/homes-summer-residences/riga-region/olaines-pag/filter/",
			"https://www.ss.lv/lv/real-estate/plots-and-lands/riga-region/olaines-pag/filter/",
		},
		Criteria: CriteriaConfig{
			MinPrice:        10000,
			MaxPrice:        150000,
			MinArea:         50,
			IncludeKeywords: []string{"māja", "zeme", "privātmāja", "dzīvoklis"},
			ExcludeKeywords: []string{"bojāts", "avārijas", "slēgts"},
		},
		Storage: StorageConfig{StateFile: "listings_data.json"},
		Notifications: NotificationConfig{
			Email: EmailConfig{
				SMTPHost: "smtp.gmail.com",
				SMTPPort: 587,
			},
		},
		Scheduler: SchedulerConfig{
			Mode:           ModeSingle,
			IntervalHours:  24,
			RunImmediately: true,
		},
		Scraper: ScraperConfig{
			RequestTimeoutSeconds: 30,
			SourceDelaySeconds:    2,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
