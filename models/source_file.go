package models

import "time"

// SourceFile is a file the extractor has scanned at least once. ContentHash
// is used to skip re-scanning unchanged files on subsequent runs.
type SourceFile struct {
	ID           int64     `json:"id" format:"int64" readOnly:"true"`
	Path         string    `json:"path"`
	ContentHash  string    `json:"content_hash"`
	LastScanID   int64     `json:"last_scan_id,omitempty" format:"int64"`
	ScannedAt    time.Time `json:"scanned_at"`
	CommentCount int64     `json:"comment_count"` // Populated by listing queries.
}
