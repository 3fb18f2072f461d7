package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// Cursor is the position after the last item of a page: listings are ordered by
// (sort time, id) descending.
type Cursor struct {
	At time.Time
	ID string
}

// After reports whether an item sorted at (at, id) comes after the cursor in descending order.
func (c Cursor) After(at time.Time, id string) bool {
	if at.Equal(c.At) {
		return id < c.ID
	}
	return at.Before(c.At)
}

// EncodeToken creates a base64 encoded token from a sort time and record id.
// This is used for consistent pagination across different repositories.
func EncodeToken(at time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", at.Format(timeFormat), id)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into a cursor.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	at, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (time parse): %w", err)
	}
	return Cursor{At: at, ID: parts[1]}, nil
}

// DecodeOptional decodes token when present. A nil token yields a nil cursor.
func DecodeOptional(token *string) (*Cursor, error) {
	if token == nil || *token == "" {
		return nil, nil
	}
	c, err := DecodeToken(*token)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// NormalizeLimit clamps a requested page size.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 200 {
		return 200
	}
	return limit
}
