package audio

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDataDir returns the path to ~/Ovoz/data
func GetDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Ovoz", "data"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist
func EnsureDataDir() error {
	dataDir, err := GetDataDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dataDir, 0755)
}

// GetAudioFilePath generates the full path for a received voice note.
// Format: ~/Ovoz/data/voice-{receivedAt}-{userID}.ogg
func GetAudioFilePath(receivedAt int64, userID string) (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("voice-%d-%s.ogg", receivedAt, userID)
	return filepath.Join(dataDir, filename), nil
}

// Save writes a received voice note to the data directory and returns the
// file path, so failed transcriptions can be replayed by hand.
func Save(receivedAt int64, userID string, data []byte) (string, error) {
	if err := EnsureDataDir(); err != nil {
		return "", err
	}
	path, err := GetAudioFilePath(receivedAt, userID)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save audio file: %w", err)
	}
	return path, nil
}
