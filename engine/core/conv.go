package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAnyInt parses an integer from common JSON-decoded forms.
// Returns false when the value is unsupported or not a whole number.
func ParseAnyInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		if t != float64(int64(t)) {
			return 0, false
		}
		return int64(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// IsPositiveID reports whether id is a valid recipient identifier.
// Zero and negative values are never valid.
func IsPositiveID(id int64) bool {
	return id > 0
}

// RequirePositive validates a named numeric parameter, failing with the
// parameter name when the value is not strictly positive.
func RequirePositive(name string, value int64) error {
	if value <= 0 {
		return fmt.Errorf("%s must be a positive number, got %d", name, value)
	}
	return nil
}
