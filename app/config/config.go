package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
	Model  Model  `yaml:"model"`
	Reply  Reply  `yaml:"reply"`
	Redis  Redis  `yaml:"redis"`
}

type Server struct {
	// Port to listen on
	Port int `yaml:"port" example:"5019"`
	// Allowed CORS origins
	CORSOrigins []string `yaml:"cors_origins" example:"http://localhost:3000"`
}

type Model struct {
	// OpenAI-compatible base url; leave empty to run template-only
	BaseURL string `yaml:"base_url" example:"https://openrouter.ai/api/v1"`
	// OpenAI token
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX"`
	// Model identifier to generate replies with
	Name string `yaml:"name" example:"deepseek/deepseek-chat-v3-0324:free"`
}

type Reply struct {
	// Trailing message window used as generation context
	MaxContextMessages int `yaml:"max_context_messages" example:"5" validate:"min=1"`
	// Default maximum reply length in tokens
	MaxReplyLength int `yaml:"max_reply_length" example:"100" validate:"min=10,max=500"`
	// Default number of suggestions per request
	NumSuggestions int `yaml:"num_suggestions" example:"3" validate:"min=1,max=5"`
	// Declared ranking floor; retained but not applied as a filter, see DESIGN.md
	MinConfidence float64 `yaml:"min_confidence" example:"0.3" validate:"min=0,max=1"`
}

type Redis struct {
	// Redis host; leave empty to disable the quick-reply cache
	Host string `yaml:"host" example:"localhost"`
	// Redis port
	Port int `yaml:"port" example:"6379"`
	// Redis database index
	DB int `yaml:"db" example:"0"`
	// Redis password
	Password string `yaml:"password"`
	// TTL of cached quick-reply responses
	CacheTTL time.Duration `yaml:"cache_ttl" example:"1h"`
}

type Log struct {
	// Minimum console log level: debug, info, warn or error
	Level string `yaml:"level" example:"debug" validate:"omitempty,oneof=debug info warn error"`
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Server.Port == 0 {
		result.Server.Port = 5019
	}
	if result.Reply.MaxContextMessages == 0 {
		result.Reply.MaxContextMessages = 5
	}
	if result.Reply.MaxReplyLength == 0 {
		result.Reply.MaxReplyLength = 100
	}
	if result.Reply.NumSuggestions == 0 {
		result.Reply.NumSuggestions = 3
	}
	if result.Reply.MinConfidence == 0 {
		result.Reply.MinConfidence = 0.3
	}
	if result.Redis.Port == 0 {
		result.Redis.Port = 6379
	}
	if result.Redis.CacheTTL == 0 {
		result.Redis.CacheTTL = time.Hour
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
