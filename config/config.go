package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the application's configuration
type Config struct {
	LogLevel string `mapstructure:"LOG_LEVEL"`
	WebPort  int    `mapstructure:"WEB_PORT"`

	LLMHost             string        `mapstructure:"LLM_HOST"`
	LLMModel            string        `mapstructure:"LLM_MODEL"`
	LLMRequestTimeout   time.Duration `mapstructure:"LLM_REQUEST_TIMEOUT"`
	MaxRetries          int           `mapstructure:"MAX_RETRIES"`
	RetryDelaySeconds   time.Duration `mapstructure:"RETRY_DELAY_SECONDS"`
	LLMCacheSize        int           `mapstructure:"LLM_CACHE_SIZE"`
	AnalysisTemperature float64       `mapstructure:"ANALYSIS_TEMPERATURE"`

	StudiesFile        string `mapstructure:"STUDIES_FILE"`
	AbstractsFile      string `mapstructure:"ABSTRACTS_FILE"`
	MappingsFile       string `mapstructure:"MAPPINGS_FILE"`
	URLFile            string `mapstructure:"URL_FILE"`
	UseBuiltinSynonyms bool   `mapstructure:"USE_BUILTIN_SYNONYMS"`

	DownloadWorkers int           `mapstructure:"DOWNLOAD_WORKERS"`
	DownloadTimeout time.Duration `mapstructure:"DOWNLOAD_TIMEOUT"`

	RateLimitMessagesPerMin int           `mapstructure:"RATE_LIMIT_MESSAGES_PER_MIN"`
	RateLimitBurstSize      int           `mapstructure:"RATE_LIMIT_BURST_SIZE"`
	SessionRetentionAge     time.Duration `mapstructure:"SESSION_RETENTION_AGE"`
	CleanupInterval         time.Duration `mapstructure:"CLEANUP_INTERVAL"`
}

func Load(logger *zap.Logger) *Config {
	var config Config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")        // For running locally
	viper.AddConfigPath("./config") // Common config folder
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("WEB_PORT", 8090)
	viper.SetDefault("LLM_HOST", "http://localhost:11434")
	viper.SetDefault("LLM_MODEL", "qwen2.5:7b")
	viper.SetDefault("LLM_REQUEST_TIMEOUT", 300)
	viper.SetDefault("MAX_RETRIES", 5)
	viper.SetDefault("RETRY_DELAY_SECONDS", 2)
	viper.SetDefault("LLM_CACHE_SIZE", 256)
	viper.SetDefault("ANALYSIS_TEMPERATURE", 0.3)
	viper.SetDefault("STUDIES_FILE", "data/mapped_parsed_data_final.json")
	viper.SetDefault("ABSTRACTS_FILE", "data/full_dataset.csv")
	viper.SetDefault("MAPPINGS_FILE", "data/standardization_mappings_final.json")
	viper.SetDefault("URL_FILE", "data/recount3_raw_and_metadata_url.csv")
	viper.SetDefault("USE_BUILTIN_SYNONYMS", true)
	viper.SetDefault("DOWNLOAD_WORKERS", 4)
	viper.SetDefault("DOWNLOAD_TIMEOUT", 60)
	viper.SetDefault("RATE_LIMIT_MESSAGES_PER_MIN", 20)
	viper.SetDefault("RATE_LIMIT_BURST_SIZE", 5)
	viper.SetDefault("SESSION_RETENTION_AGE", 24)
	viper.SetDefault("CLEANUP_INTERVAL", 1)

	if err := viper.ReadInConfig(); err != nil {
		if logger != nil {
			logger.Warn("Could not read config file, using defaults/env vars", zap.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		// Config unmarshaling is critical - fail fast during bootstrap
		if logger != nil {
			logger.Fatal("Unable to decode config into struct", zap.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	// Convert seconds/hours to proper time.Duration
	config.LLMRequestTimeout = config.LLMRequestTimeout * time.Second
	config.RetryDelaySeconds = config.RetryDelaySeconds * time.Second
	config.DownloadTimeout = config.DownloadTimeout * time.Second
	config.SessionRetentionAge = config.SessionRetentionAge * time.Hour
	config.CleanupInterval = config.CleanupInterval * time.Hour

	return &config
}
