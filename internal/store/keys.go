package store

import (
	"fmt"
	"strings"
	"time"
)

const (
	albumPrefix  = "album:"
	reviewPrefix = "review:"
)

// albumKey builds the document key for an album.
func albumKey(albumID string) []byte {
	return []byte(albumPrefix + albumID)
}

// reviewScanPrefix builds the key prefix covering all reviews of one album.
func reviewScanPrefix(albumID string) []byte {
	return []byte(reviewPrefix + albumID + ":")
}

// reviewKey builds the document key for a review. The creation timestamp is
// embedded in sortable form so a reverse prefix scan yields newest-first
// ordering without loading every review into memory.
// Format: review:{albumID}:{YYYY-MM-DDTHH:MM:SS.NNNNNNNNNZ}:{reviewID}.
func reviewKey(albumID string, createdAt time.Time, reviewID string) []byte {
	return fmt.Appendf(nil, "%s%s:%s:%s", reviewPrefix, albumID, formatSortableTimestamp(createdAt), reviewID)
}

// formatSortableTimestamp renders a timestamp with fixed-width zero-padded
// nanoseconds so lexicographic key order matches chronological order.
func formatSortableTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05") + fmt.Sprintf(".%09d", t.Nanosecond()) + "Z"
}

// parseReviewKey extracts the review ID from a review document key.
// The timestamp segment is fixed width (30 characters), which avoids
// ambiguity from the colons inside the timestamp itself.
func parseReviewKey(key []byte, albumID string) (reviewID string, err error) {
	prefix := string(reviewScanPrefix(albumID))
	keyStr := string(key)
	if !strings.HasPrefix(keyStr, prefix) {
		return "", fmt.Errorf("invalid review key: missing prefix %s", prefix)
	}

	remainder := strings.TrimPrefix(keyStr, prefix)

	const timestampLen = 30
	if len(remainder) < timestampLen+2 {
		return "", fmt.Errorf("invalid review key format: %s", keyStr)
	}

	return remainder[timestampLen+1:], nil
}
