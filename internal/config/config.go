package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the server looks for its YAML config.
const DefaultConfigPath = "config.yml"

// Load reads the YAML config file, applies environment overrides and
// defaults. A missing file is not an error; the environment alone can
// configure a deployment.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// env-only deployment
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.MongoURI = v
	}
	if v := os.Getenv("MONGO_DATABASE"); v != "" {
		cfg.MongoDatabase = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("GUEST_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Guest.TranslationLimit = n
		}
	}
	if v := os.Getenv("TRANSLATION_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DailyLimit = n
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		cfg.AllowedOrigins = origins
	}
	if key := os.Getenv("ENGINE_API_KEY"); key != "" && len(cfg.Engine.Providers) == 0 {
		cfg.Engine.Providers = []EngineProvider{{
			ID:           "env",
			Type:         os.Getenv("ENGINE_TYPE"),
			APIKey:       key,
			Endpoint:     os.Getenv("ENGINE_ENDPOINT"),
			DefaultModel: os.Getenv("ENGINE_MODEL"),
			Enabled:      true,
		}}
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "wordbridge"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379"
	}
	if cfg.JWTTTLHours <= 0 {
		cfg.JWTTTLHours = 24 * 30
	}
	if cfg.Guest.TranslationLimit <= 0 {
		cfg.Guest.TranslationLimit = 2
	}
	if cfg.Guest.SessionTTLHours <= 0 {
		cfg.Guest.SessionTTLHours = 24
	}
	if cfg.DailyLimit <= 0 {
		cfg.DailyLimit = 100
	}
}
