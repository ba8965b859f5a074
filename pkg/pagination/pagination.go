// Package pagination validates the limit and cursor parameters used when
// listing resolved recipients and stored notifications.
package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var cursorCodec = base64.URLEncoding.WithPadding(base64.NoPadding)

const (
	cursorPrefix = "v2:"

	DirectionAfter  = "after"
	DirectionBefore = "before"
)

type Cursor struct {
	Direction string
	Value     string
}

func (c Cursor) IsZero() bool {
	return c.Direction == "" && c.Value == ""
}

// DecodeCursor parses an opaque cursor token. An empty token is valid and
// means "first page".
func DecodeCursor(raw string) (Cursor, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Cursor{}, nil
	}
	data, err := cursorCodec.DecodeString(trimmed)
	if err != nil {
		return Cursor{}, errors.New("invalid cursor")
	}
	payload := string(data)
	if !strings.HasPrefix(payload, cursorPrefix) {
		return Cursor{}, errors.New("invalid cursor")
	}
	parts := strings.Split(payload[len(cursorPrefix):], ":")
	if len(parts) != 2 {
		return Cursor{}, errors.New("invalid cursor")
	}
	direction := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if direction != DirectionAfter && direction != DirectionBefore {
		return Cursor{}, errors.New("invalid cursor direction")
	}
	if value == "" {
		return Cursor{}, errors.New("invalid cursor value")
	}
	return Cursor{Direction: direction, Value: value}, nil
}

// EncodeCursor builds the opaque token for a direction/value pair. Either
// argument being empty yields an empty token.
func EncodeCursor(direction, value string) string {
	if direction == "" || value == "" {
		return ""
	}
	payload := fmt.Sprintf("%s%s:%s", cursorPrefix, direction, value)
	return cursorCodec.EncodeToString([]byte(payload))
}

// LimitOrDefault sanitizes a raw page-size parameter. Non-numeric, zero, and
// negative values fall back to def; values above maxLimit are capped.
func LimitOrDefault(raw string, def, maxLimit int) int {
	if def <= 0 {
		def = 50
	}
	if maxLimit <= 0 {
		maxLimit = 500
	}
	val, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || val <= 0 {
		return def
	}
	if val > maxLimit {
		return maxLimit
	}
	return val
}
