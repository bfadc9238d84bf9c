package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string
	}
	Ledger struct {
		DSN string // "memory" or file path for the SQLite-backed ledger
	}
	Limits struct {
		MaxTitleLength   int `mapstructure:"max_title_length"`
		MaxPreviewLength int `mapstructure:"max_preview_length"`
		MaxContentLength int `mapstructure:"max_content_length"`
	} `mapstructure:"limits"`
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig loads configuration from file and environment variables.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../config") // for running from locations like tests

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("ledger.dsn", "memory")
	viper.SetDefault("limits.max_title_length", 200)
	viper.SetDefault("limits.max_preview_length", 2000)
	viper.SetDefault("limits.max_content_length", 100000)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	// Environment variable overrides
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if dsn := os.Getenv("LEDGER_DSN"); dsn != "" {
		AppConfig.Ledger.DSN = dsn
		log.Println("INFO: [Config] Ledger DSN overridden by environment variable LEDGER_DSN.")
	}

	log.Println("INFO: [Config] Configuration loading complete.")
}
