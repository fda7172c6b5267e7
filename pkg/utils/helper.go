package utils

import (
	"strconv"
)

// ParseIntMin converts value to an int. Empty, malformed or below-min input
// falls back to defaultValue.
func ParseIntMin(value string, defaultValue, min int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < min {
		return defaultValue
	}

	return result
}
