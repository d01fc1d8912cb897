package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// DefaultLimit is the page size used when the caller does not ask for one.
	DefaultLimit = 20
	// MaxLimit caps the page size.
	MaxLimit = 100

	cursorKind = "after"
)

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}

// EncodeCursor creates a token pointing just past the item with the given key.
func EncodeCursor(key string) string {
	return EncodeMultiFieldToken(cursorKind, key)
}

// DecodeCursor returns the key a token created by EncodeCursor points past.
func DecodeCursor(token string) (string, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return "", err
	}
	if len(parts) != 2 || parts[0] != cursorKind || parts[1] == "" {
		return "", fmt.Errorf("invalid pagination token format (fields)")
	}
	return parts[1], nil
}

// NormalizeLimit clamps limit to [1, MaxLimit], using DefaultLimit for zero.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// Page returns up to limit items that follow the item named by token, and the
// token for the next page. The next token is nil on the last page.
// An empty token starts from the beginning.
func Page[T any](items []T, key func(T) string, token string, limit int) ([]T, *string, error) {
	start := 0
	if token != "" {
		after, err := DecodeCursor(token)
		if err != nil {
			return nil, nil, err
		}
		start = -1
		for i, item := range items {
			if key(item) == after {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, nil, fmt.Errorf("invalid pagination token: unknown position '%s'", after)
		}
	}

	limit = NormalizeLimit(limit)
	end := start + limit
	if end >= len(items) {
		return items[start:], nil, nil
	}
	next := EncodeCursor(key(items[end-1]))
	return items[start:end], &next, nil
}
