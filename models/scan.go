package models

import (
	"database/sql"
	"time"
)

// Scan records one extractor run over a set of paths.
type Scan struct {
	ID            int64          `json:"id" format:"int64" readOnly:"true"`
	UUID          string         `json:"uuid" readOnly:"true"`
	RootPath      sql.NullString `json:"root_path,omitempty"` // Empty when scanning an explicit file list.
	StartedAt     time.Time      `json:"started_at"`
	FinishedAt    sql.NullTime   `json:"finished_at,omitempty"`
	FilesScanned  int64          `json:"files_scanned"`
	FilesSkipped  int64          `json:"files_skipped"` // Unchanged files skipped via content hash.
	CommentsFound int64          `json:"comments_found"`
}
