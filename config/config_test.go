// ovozlabs/ovoz-voice-service/config/config_test.go
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnvironment creates a temporary directory structure for config files.
// It returns the path to the temporary Ovoz config directory and a cleanup function.
func setupTestEnvironment(t *testing.T) (string, func()) {
	tempDir, err := os.MkdirTemp("", "ovoz-config-test")
	require.NoError(t, err)

	ovozConfigPath := filepath.Join(tempDir, "Ovoz", "config")
	err = os.MkdirAll(ovozConfigPath, 0755)
	require.NoError(t, err)

	originalHomeDirFunc := osUserHomeDir
	osUserHomeDir = func() (string, error) {
		return tempDir, nil
	}

	cleanup := func() {
		osUserHomeDir = originalHomeDirFunc
		os.RemoveAll(tempDir)
	}

	return ovozConfigPath, cleanup
}

func TestLoadAllConfigs_Success(t *testing.T) {
	ovozPath, cleanup := setupTestEnvironment(t)
	defer cleanup()

	mainCfg := MainConfig{ServiceConfig: "service.json", RedisConfig: "redis.json", EngineConfig: "engine.json"}
	mainData, _ := json.Marshal(mainCfg)
	err := os.WriteFile(filepath.Join(ovozPath, "config.json"), mainData, 0644)
	require.NoError(t, err)

	serviceCfg := ServiceConfig{OperatorID: "60020965", StoreBackend: "redis", Workers: 2, QueueSize: 8, StatusPort: 9999}
	serviceData, _ := json.Marshal(serviceCfg)
	err = os.WriteFile(filepath.Join(ovozPath, "service.json"), serviceData, 0644)
	require.NoError(t, err)

	redisCfg := RedisConfig{Addr: "localhost:1234"}
	redisData, _ := json.Marshal(redisCfg)
	err = os.WriteFile(filepath.Join(ovozPath, "redis.json"), redisData, 0644)
	require.NoError(t, err)

	engineCfg := EngineConfig{Provider: "stub", Language: "en-US", TimeoutSeconds: 30}
	engineData, _ := json.Marshal(engineCfg)
	err = os.WriteFile(filepath.Join(ovozPath, "engine.json"), engineData, 0644)
	require.NoError(t, err)

	allConfig, err := LoadAllConfigs()

	assert.NoError(t, err)
	require.NotNil(t, allConfig)
	assert.Equal(t, "60020965", allConfig.Service.OperatorID)
	assert.Equal(t, "redis", allConfig.Service.StoreBackend)
	assert.Equal(t, "localhost:1234", allConfig.Redis.Addr)
	assert.Equal(t, "stub", allConfig.Engine.Provider)
	assert.Equal(t, 30, allConfig.Engine.TimeoutSeconds)
}

func TestLoadAllConfigs_FileCreation(t *testing.T) {
	ovozPath, cleanup := setupTestEnvironment(t)
	defer cleanup()

	allConfig, err := LoadAllConfigs()

	assert.NoError(t, err)
	require.NotNil(t, allConfig)

	assert.FileExists(t, filepath.Join(ovozPath, "config.json"))
	assert.FileExists(t, filepath.Join(ovozPath, "service.json"))
	assert.FileExists(t, filepath.Join(ovozPath, "redis.json"))
	assert.FileExists(t, filepath.Join(ovozPath, "engine.json"))

	assert.Equal(t, "", allConfig.Service.OperatorID)
	assert.Equal(t, "file", allConfig.Service.StoreBackend)
	assert.Equal(t, "localhost:6379", allConfig.Redis.Addr)
	assert.Equal(t, "whisper", allConfig.Engine.Provider)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("OVOZ_OPERATOR_ID", "424242")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("OVOZ_STT_PROVIDER", "google")

	service := defaultServiceConfig()
	redis := defaultRedisConfig()
	engine := defaultEngineConfig()
	applyEnvOverrides(&service, &redis, &engine)

	assert.Equal(t, "424242", service.OperatorID)
	assert.Equal(t, "redis.internal:6380", redis.Addr)
	assert.Equal(t, "google", engine.Provider)
}

func TestExpandPath(t *testing.T) {
	tempDir := t.TempDir()
	originalHomeDirFunc := osUserHomeDir
	osUserHomeDir = func() (string, error) { return tempDir, nil }
	defer func() { osUserHomeDir = originalHomeDirFunc }()

	expanded, err := ExpandPath("~/Ovoz/data/ledger.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "Ovoz", "data", "ledger.json"), expanded)

	absolute, err := ExpandPath("/var/lib/ovoz/ledger.json")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/ovoz/ledger.json", absolute)
}
