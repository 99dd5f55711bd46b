package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Database   Database
	Redis      Redis
	Cache      Cache
	Pool       Pool
	Generation Generation
	Log        Log
}

type Server struct {
	Port    string
	GinMode string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Cache struct {
	TTL        time.Duration
	MaxEntries int
}

// Pool holds the default sampling budgets for the serving path.
type Pool struct {
	PoolSize    int
	ServingSize int
}

type Generation struct {
	ManusApiKey     string
	ManusApiURL     string
	OpenAIApiKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	GeminiApiKey    string
	GeminiModel     string
	ProviderTimeout time.Duration
	RatePerMinute   int
}

type Log struct {
	Level string
	File  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", time.Hour)
	v.SetDefault("CACHE_MAX_ENTRIES", 1000)
	v.SetDefault("POOL_SIZE", 100)
	v.SetDefault("SERVING_SIZE", 50)
	v.SetDefault("MANUS_API_URL", "https://api.manus.ai/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("PROVIDER_TIMEOUT", 60*time.Second)
	v.SetDefault("GENERATION_RATE_PER_MINUTE", 10)
	v.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	config := fromViper(v)

	log.Info().Interface("config", config.Redacted()).Msg("Config loaded")
	return config, nil
}

func fromViper(v *viper.Viper) *Config {
	var config Config

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.GinMode = v.GetString("GIN_MODE")

	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")

	config.Redis.Addr = v.GetString("REDIS_ADDR")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")

	config.Cache.TTL = v.GetDuration("CACHE_TTL")
	config.Cache.MaxEntries = v.GetInt("CACHE_MAX_ENTRIES")

	config.Pool.PoolSize = v.GetInt("POOL_SIZE")
	config.Pool.ServingSize = v.GetInt("SERVING_SIZE")

	config.Generation.ManusApiKey = v.GetString("MANUS_API_KEY")
	config.Generation.ManusApiURL = v.GetString("MANUS_API_URL")
	config.Generation.OpenAIApiKey = v.GetString("OPENAI_API_KEY")
	config.Generation.OpenAIBaseURL = v.GetString("OPENAI_BASE_URL")
	config.Generation.OpenAIModel = v.GetString("OPENAI_MODEL")
	config.Generation.GeminiApiKey = v.GetString("GEMINI_API_KEY")
	config.Generation.GeminiModel = v.GetString("GEMINI_MODEL")
	config.Generation.ProviderTimeout = v.GetDuration("PROVIDER_TIMEOUT")
	config.Generation.RatePerMinute = v.GetInt("GENERATION_RATE_PER_MINUTE")

	config.Log.Level = v.GetString("LOG_LEVEL")
	config.Log.File = v.GetString("LOG_FILE")

	return &config
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "****"
	}
	c.Database.Password = mask(c.Database.Password)
	c.Redis.Password = mask(c.Redis.Password)
	c.Generation.ManusApiKey = mask(c.Generation.ManusApiKey)
	c.Generation.OpenAIApiKey = mask(c.Generation.OpenAIApiKey)
	c.Generation.GeminiApiKey = mask(c.Generation.GeminiApiKey)
	return c
}
