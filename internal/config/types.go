package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	MongoURI       string         `yaml:"mongo_uri"`
	MongoDatabase  string         `yaml:"mongo_database"`
	RedisURL       string         `yaml:"redis_url"`
	JWTSecret      string         `yaml:"jwt_secret"`
	JWTTTLHours    int            `yaml:"jwt_ttl_hours"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Guest          GuestConfig    `yaml:"guest"`
	DailyLimit     int            `yaml:"daily_translation_limit"`
	Engine         EngineConfig   `yaml:"engine"`
}

// GuestConfig bounds what anonymous sessions may do.
type GuestConfig struct {
	TranslationLimit int `yaml:"translation_limit"`
	SessionTTLHours  int `yaml:"session_ttl_hours"`
}

// EngineConfig selects and configures the translation engine provider.
type EngineConfig struct {
	Providers []EngineProvider `yaml:"providers"`
}

// EngineProvider describes one upstream translation model endpoint.
type EngineProvider struct {
	ID           string `yaml:"id"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }
