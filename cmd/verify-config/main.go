package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
)

// ANSI color codes for formatted output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

// Represents the expected structure of a config file for validation.
type ConfigSchema struct {
	FileName string
	Path     string
	Model    interface{}
}

func main() {
	fmt.Printf("%s--- Ovoz Config Verifier ---%s\n", ColorBlue, ColorReset)

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Printf("%s[FATAL]%s Could not determine user home directory: %v\n", ColorRed, ColorReset, err)
		os.Exit(1)
	}
	configDir := filepath.Join(home, "Ovoz", "config")

	schemas := []ConfigSchema{
		{
			FileName: "config.json",
			Path:     filepath.Join(configDir, "config.json"),
			Model: struct {
				ServiceConfig string `json:"service_config"`
				RedisConfig   string `json:"redis_config"`
				EngineConfig  string `json:"engine_config"`
			}{},
		},
		{
			FileName: "service.json",
			Path:     filepath.Join(configDir, "service.json"),
			Model: struct {
				OperatorID   string `json:"operator_id"`
				StoreBackend string `json:"store_backend"`
				LedgerPath   string `json:"ledger_path"`
				Workers      int    `json:"workers"`
				QueueSize    int    `json:"queue_size"`
				StatusPort   int    `json:"status_port"`
			}{},
		},
		{
			FileName: "redis.json",
			Path:     filepath.Join(configDir, "redis.json"),
			Model: struct {
				Addr     string `json:"addr"`
				Username string `json:"username"`
				Password string `json:"password"`
				DB       int    `json:"db"`
			}{},
		},
		{
			FileName: "engine.json",
			Path:     filepath.Join(configDir, "engine.json"),
			Model: struct {
				Provider       string `json:"provider"`
				OpenAIKey      string `json:"openai_key"`
				Language       string `json:"language"`
				TimeoutSeconds int    `json:"timeout_seconds"`
			}{},
		},
	}

	allChecksPassed := true
	for _, schema := range schemas {
		fmt.Printf("\nVerifying %s'%s'%s...\n", ColorBlue, schema.FileName, ColorReset)
		ok := verifyConfigFile(schema)
		if !ok {
			allChecksPassed = false
		}
	}

	fmt.Println("\n--------------------------")
	if allChecksPassed {
		fmt.Printf("%s✅ All configuration files seem correct.%s\n", ColorGreen, ColorReset)
	} else {
		fmt.Printf("%s❌ Some issues were found in the configuration.%s\n", ColorRed, ColorReset)
		os.Exit(1)
	}
}

func verifyConfigFile(schema ConfigSchema) bool {
	// 1. Check file existence
	content, err := os.ReadFile(schema.Path)
	if err != nil {
		fmt.Printf("  %s[FAIL]%s File not found or not readable: %v\n", ColorRed, ColorReset, err)
		return false
	}
	fmt.Printf("  %s[OK]%s File exists and is readable.\n", ColorGreen, ColorReset)

	// 2. Check for valid JSON and unknown fields
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.DisallowUnknownFields() // This is the key check for extra fields

	modelType := reflect.TypeOf(schema.Model)
	modelInstance := reflect.New(modelType).Interface()

	if err := decoder.Decode(modelInstance); err != nil {
		fmt.Printf("  %s[FAIL]%s JSON is invalid or contains unexpected fields: %v\n", ColorRed, ColorReset, err)
		return false
	}
	fmt.Printf("  %s[OK]%s JSON is valid and all fields are recognized.\n", ColorGreen, ColorReset)

	// 3. Check for missing fields (by checking if any field has its zero value)
	val := reflect.ValueOf(modelInstance).Elem()
	typ := val.Type()
	missingFields := []string{}
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.IsZero() {
			missingFields = append(missingFields, typ.Field(i).Name)
		}
	}

	if len(missingFields) > 0 {
		fmt.Printf("  %s[WARN]%s The following fields are present but have empty/default values: %v\n", ColorYellow, ColorReset, missingFields)
	} else {
		fmt.Printf("  %s[OK]%s All required fields have non-empty values.\n", ColorGreen, ColorReset)
	}

	return true
}
