// ovozlabs/ovoz-voice-service/config/config.go
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func defaultMainConfig() MainConfig {
	return MainConfig{
		ServiceConfig: "service.json",
		RedisConfig:   "redis.json",
		EngineConfig:  "engine.json",
	}
}

func defaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		StoreBackend: "file",
		LedgerPath:   "~/Ovoz/data/ledger.json",
		Workers:      4,
		QueueSize:    32,
		StatusPort:   8090,
	}
}

func defaultRedisConfig() RedisConfig {
	return RedisConfig{Addr: "localhost:6379"}
}

func defaultEngineConfig() EngineConfig {
	return EngineConfig{
		Provider:       "whisper",
		Language:       "uz",
		TimeoutSeconds: 60,
	}
}

// LoadAllConfigs loads every config file from ~/Ovoz/config, creating
// missing files with defaults, then applies environment overrides.
// A .env file in the working directory is honored if present.
func LoadAllConfigs() (*AllConfig, error) {
	_ = godotenv.Load()

	var main MainConfig
	if err := loadAndUnmarshal("config.json", &main, defaultMainConfig()); err != nil {
		return nil, err
	}

	var service ServiceConfig
	if err := loadAndUnmarshal(main.ServiceConfig, &service, defaultServiceConfig()); err != nil {
		return nil, err
	}

	var redis RedisConfig
	if err := loadAndUnmarshal(main.RedisConfig, &redis, defaultRedisConfig()); err != nil {
		return nil, err
	}

	var engine EngineConfig
	if err := loadAndUnmarshal(main.EngineConfig, &engine, defaultEngineConfig()); err != nil {
		return nil, err
	}

	applyEnvOverrides(&service, &redis, &engine)

	return &AllConfig{Service: &service, Redis: &redis, Engine: &engine}, nil
}

func applyEnvOverrides(service *ServiceConfig, redis *RedisConfig, engine *EngineConfig) {
	if v := os.Getenv("OVOZ_OPERATOR_ID"); v != "" {
		service.OperatorID = v
	}
	if v := os.Getenv("OVOZ_STORE_BACKEND"); v != "" {
		service.StoreBackend = v
	}
	if v := os.Getenv("OVOZ_STATUS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			service.StatusPort = port
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		redis.Password = v
	}
	if v := os.Getenv("OVOZ_STT_PROVIDER"); v != "" {
		engine.Provider = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		engine.OpenAIKey = v
	}
}
