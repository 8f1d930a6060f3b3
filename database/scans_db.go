package database

import (
	"fmt"
	"time"

	"cscan/logger"
	"cscan/models"

	"github.com/google/uuid"
)

// CreateScan inserts a new scan session row and returns it. rootPath may be
// empty when scanning an explicit file list.
func CreateScan(rootPath string) (models.Scan, error) {
	scan := models.Scan{
		UUID:      uuid.New().String(),
		RootPath:  models.NullString(rootPath),
		StartedAt: time.Now().UTC(),
	}

	result, err := DB.Exec(
		"INSERT INTO scans (uuid, root_path, started_at) VALUES (?, ?, ?)",
		scan.UUID, scan.RootPath, scan.StartedAt,
	)
	if err != nil {
		return scan, fmt.Errorf("inserting scan session: %w", err)
	}
	scan.ID, err = result.LastInsertId()
	if err != nil {
		return scan, fmt.Errorf("getting scan session id: %w", err)
	}
	logger.Debug("Created scan session %s (ID %d)", scan.UUID, scan.ID)
	return scan, nil
}

// FinishScan records the final counters for a scan session.
func FinishScan(scanID, filesScanned, filesSkipped, commentsFound int64) error {
	_, err := DB.Exec(
		`UPDATE scans
		 SET finished_at = ?, files_scanned = ?, files_skipped = ?, comments_found = ?
		 WHERE id = ?`,
		time.Now().UTC(), filesScanned, filesSkipped, commentsFound, scanID,
	)
	if err != nil {
		return fmt.Errorf("finishing scan %d: %w", scanID, err)
	}
	return nil
}

// GetRecentScans returns the most recent scan sessions, newest first.
func GetRecentScans(limit int) ([]models.Scan, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := DB.Query(
		`SELECT id, uuid, root_path, started_at, finished_at, files_scanned, files_skipped, comments_found
		 FROM scans ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying scans: %w", err)
	}
	defer rows.Close()

	var scans []models.Scan
	for rows.Next() {
		var s models.Scan
		if err := rows.Scan(&s.ID, &s.UUID, &s.RootPath, &s.StartedAt, &s.FinishedAt,
			&s.FilesScanned, &s.FilesSkipped, &s.CommentsFound); err != nil {
			return nil, fmt.Errorf("scanning scan row: %w", err)
		}
		scans = append(scans, s)
	}
	return scans, rows.Err()
}
