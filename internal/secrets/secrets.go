package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Get resolves a secret from the environment. A KEY_FILE variant pointing at
// a file takes precedence over KEY itself, which keeps mounted Docker or
// Kubernetes secrets out of the process environment.
func Get(envKey, defaultValue string) (string, error) {
	if filePath := os.Getenv(envKey + "_FILE"); filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("read secret file %s: %w", filePath, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if value := os.Getenv(envKey); value != "" {
		return value, nil
	}

	return defaultValue, nil
}

// GetOptional resolves a secret, falling back to the default on any error.
func GetOptional(envKey, defaultValue string) string {
	value, err := Get(envKey, defaultValue)
	if err != nil {
		return defaultValue
	}
	return value
}
