package store

import (
	"encoding/base64"
	"fmt"
)

// Pagination defaults and limits.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// PaginationParams holds parameters for paginated queries.
type PaginationParams struct {
	// Limit is the maximum number of items to return (default: 50, max: 100).
	Limit int
	// Cursor is an opaque token marking where the previous page ended.
	// Empty means start from the beginning.
	Cursor string
}

// Normalize clamps the limit into the allowed range.
func (p *PaginationParams) Normalize() {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
}

// PaginatedResult holds a page of results with pagination metadata.
type PaginatedResult[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// encodeCursor creates an opaque cursor from the ID of the last returned item.
func encodeCursor(lastID string) string {
	if lastID == "" {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(lastID))
}

// decodeCursor extracts the item ID from an opaque cursor.
func decodeCursor(cursor string) (string, error) {
	if cursor == "" {
		return "", nil
	}
	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return "", fmt.Errorf("invalid cursor: %w", err)
	}
	return string(decoded), nil
}

// paginateSlice slices an ordered result set according to the params. The
// ordering must be deterministic so the cursor resumes at a stable position.
func paginateSlice[T any](items []T, params PaginationParams, idOf func(T) string) (PaginatedResult[T], error) {
	params.Normalize()

	start := 0
	if params.Cursor != "" {
		lastID, err := decodeCursor(params.Cursor)
		if err != nil {
			return PaginatedResult[T]{}, err
		}
		for i, item := range items {
			if idOf(item) == lastID {
				start = i + 1
				break
			}
		}
	}

	end := min(start+params.Limit, len(items))

	result := PaginatedResult[T]{
		Items:   items[start:end],
		HasMore: end < len(items),
	}
	if result.HasMore && end > start {
		result.NextCursor = encodeCursor(idOf(items[end-1]))
	}
	if result.Items == nil {
		result.Items = []T{}
	}
	return result, nil
}
