package helper

import (
	"github.com/joho/godotenv"
)

// LoadDotEnv loads the first .env file found in paths. Variables already
// present in the process environment are never overridden.
func LoadDotEnv(paths ...string) error {
	var lastErr error
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
