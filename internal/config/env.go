package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvData = "EXODASH_DATA"
	EnvLog  = "EXODASH_LOG"
)

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with EXODASH_DATA and EXODASH_LOG when set.
func ApplyEnv(cfg *DashboardConfig) {
	if v, ok := os.LookupEnv(EnvData); ok && v != "" {
		cfg.Data = &v
	}
	if v, ok := os.LookupEnv(EnvLog); ok && v != "" {
		cfg.Log = &v
	}
}
