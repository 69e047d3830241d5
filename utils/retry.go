package utils

import (
	"fmt"
	"time"
)

// Retry runs fn up to maxRetries times with exponential backoff between
// attempts, returning the last error once all attempts are exhausted.
func Retry(maxRetries int, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < maxRetries {
			wait := time.Duration(1<<uint(attempt)) * time.Second // 2s, 4s, 8s...
			Warn("Attempt %d/%d failed: %v — retrying in %v", attempt, maxRetries, lastErr, wait)
			time.Sleep(wait)
		}
	}

	return fmt.Errorf("all %d attempts failed — last error: %w", maxRetries, lastErr)
}
