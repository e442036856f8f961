package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DBDSN       string `envconfig:"DB_DSN" default:"aquastock.db"`
	LogFile     string `envconfig:"LOG_FILE" default:"./aquastock.log"`
	DebugLog    string `envconfig:"DEBUG_LOG" default:"./debug_log.txt"`
	TemplateDir string `envconfig:"TEMPLATE_DIR" default:"./web/templates"`
}

func Load() Config {
	// .env is optional; real env vars win either way.
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("[config] %v", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s DEBUG_LOG=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.DebugLog)
	return cfg
}
