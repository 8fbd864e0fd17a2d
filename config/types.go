package config

// MainConfig points at the per-concern config files in ~/Ovoz/config.
type MainConfig struct {
	ServiceConfig string `json:"service_config"`
	RedisConfig   string `json:"redis_config"`
	EngineConfig  string `json:"engine_config"`
}

// ServiceConfig holds service-wide settings.
type ServiceConfig struct {
	// OperatorID is the single chat identity allowed to approve payments.
	OperatorID string `json:"operator_id"`
	// StoreBackend selects the ledger backend: "redis" or "file".
	StoreBackend string `json:"store_backend"`
	// LedgerPath is the flat-file ledger location, used when StoreBackend
	// is "file". Supports "~/" expansion.
	LedgerPath string `json:"ledger_path"`
	Workers    int    `json:"workers"`
	QueueSize  int    `json:"queue_size"`
	StatusPort int    `json:"status_port"`
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Addr     string `json:"addr"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// EngineConfig holds speech-to-text engine settings.
type EngineConfig struct {
	// Provider selects the engine: "google", "whisper" or "stub".
	Provider string `json:"provider"`
	// OpenAIKey is required for the whisper provider. The OPENAI_API_KEY
	// environment variable takes precedence.
	OpenAIKey string `json:"openai_key"`
	// Language hint passed to the engine, BCP-47 ("uz-UZ", "en-US").
	Language string `json:"language"`
	// TimeoutSeconds bounds a single engine call.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// AllConfig is the fully resolved configuration.
type AllConfig struct {
	Service *ServiceConfig
	Redis   *RedisConfig
	Engine  *EngineConfig
}
