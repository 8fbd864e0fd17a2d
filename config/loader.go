package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Re-assign os.UserHomeDir to a variable so we can mock it in tests.
var osUserHomeDir = os.UserHomeDir

// ExpandPath resolves paths like "~/" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := osUserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// getConfigPath constructs the full path to a config file in ~/Ovoz/config.
func getConfigPath(filename string) (string, error) {
	return ExpandPath(filepath.Join("~/Ovoz/config", filename))
}

// loadAndUnmarshal reads a JSON file from the config directory and
// unmarshals it into the provided value. If the file does not exist it is
// created from defaults first, so a fresh install boots with a template
// the operator can fill in.
func loadAndUnmarshal(filename string, v interface{}, defaults interface{}) error {
	path, err := getConfigPath(filename)
	if err != nil {
		return fmt.Errorf("could not get config path for %s: %w", filename, err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeDefault(path, defaults); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file %s: %w", filename, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("could not parse config file %s: %w", filename, err)
	}

	return nil
}

func writeDefault(path string, defaults interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	data, err := json.MarshalIndent(defaults, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write default config %s: %w", path, err)
	}
	return nil
}
