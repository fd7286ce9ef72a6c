package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any cursor query can request.
	MaxLimit = 100

	cursorPrefix = "id:"
)

// Params holds keyset pagination inputs. A zero Limit means "return everything".
type Params struct {
	Limit  int
	Cursor string
}

// Enabled reports whether the caller asked for a page.
func (p Params) Enabled() bool {
	return p.Limit > 0 || strings.TrimSpace(p.Cursor) != ""
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// LimitWithBuffer returns the normalization result plus one to detect the next page.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// EncodeCursor builds an opaque cursor pointing after the row with the given id.
func EncodeCursor(afterID int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.FormatInt(afterID, 10)))
}

// ParseCursor decodes a cursor back into the id it points after. Empty input yields 0.
func ParseCursor(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return 0, fmt.Errorf("decode cursor: %w", err)
	}
	raw, ok := strings.CutPrefix(string(decoded), cursorPrefix)
	if !ok {
		return 0, fmt.Errorf("invalid cursor format")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid cursor id")
	}
	return id, nil
}

// Window is the resolved keyset window handed to repositories. A zero Limit is unbounded.
type Window struct {
	AfterID int64
	Limit   int
}

// Window validates the cursor and resolves the rows a repository should fetch,
// including one extra row to detect whether another page exists.
func (p Params) Window() (Window, error) {
	if !p.Enabled() {
		return Window{}, nil
	}
	afterID, err := ParseCursor(p.Cursor)
	if err != nil {
		return Window{}, err
	}
	return Window{AfterID: afterID, Limit: LimitWithBuffer(p.Limit)}, nil
}

// Page trims rows fetched with p.Window() to the requested size and returns the
// cursor of the next page, or "" when rows holds the last page.
func Page[T any](rows []T, p Params, idOf func(T) int64) ([]T, string) {
	if !p.Enabled() {
		return rows, ""
	}
	limit := NormalizeLimit(p.Limit)
	if len(rows) <= limit {
		return rows, ""
	}
	rows = rows[:limit]
	return rows, EncodeCursor(idOf(rows[limit-1]))
}
