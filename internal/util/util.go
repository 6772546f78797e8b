package util

import (
	"fmt"
	"strconv"
)

// ParseLimit parses a page size from a query string value
// An empty value returns defaultLimit, and values over maxLimit are capped
func ParseLimit(s string, defaultLimit, maxLimit int) (int, error) {
	if s == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(s)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("limit must be a positive integer: got %q", s)
	}

	if limit > maxLimit {
		return maxLimit, nil
	}

	return limit, nil
}
