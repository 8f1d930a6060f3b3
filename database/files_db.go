package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cscan/logger"
	"cscan/models"
)

// UpsertSourceFile records a file observed by a scan. It returns the file's
// row ID and whether the stored content hash changed (new files count as
// changed). Unchanged files keep their stored comments.
func UpsertSourceFile(path, contentHash string, scanID int64) (int64, bool, error) {
	var id int64
	var existingHash string
	err := DB.QueryRow("SELECT id, content_hash FROM source_files WHERE path = ?", path).Scan(&id, &existingHash)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, false, fmt.Errorf("looking up source file '%s': %w", path, err)
		}
		result, err := DB.Exec(
			"INSERT INTO source_files (path, content_hash, last_scan_id, scanned_at) VALUES (?, ?, ?, ?)",
			path, contentHash, scanID, time.Now().UTC(),
		)
		if err != nil {
			return 0, false, fmt.Errorf("inserting source file '%s': %w", path, err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("getting source file id for '%s': %w", path, err)
		}
		return id, true, nil
	}

	if existingHash == contentHash {
		if _, err := DB.Exec("UPDATE source_files SET last_scan_id = ? WHERE id = ?", scanID, id); err != nil {
			return id, false, fmt.Errorf("touching source file '%s': %w", path, err)
		}
		logger.Debug("Source file %s unchanged (hash match).", path)
		return id, false, nil
	}

	if _, err := DB.Exec(
		"UPDATE source_files SET content_hash = ?, last_scan_id = ?, scanned_at = ? WHERE id = ?",
		contentHash, scanID, time.Now().UTC(), id,
	); err != nil {
		return id, false, fmt.Errorf("updating source file '%s': %w", path, err)
	}
	return id, true, nil
}

// GetSourceFiles lists every scanned file with its stored comment count.
func GetSourceFiles() ([]models.SourceFile, error) {
	rows, err := DB.Query(
		`SELECT sf.id, sf.path, sf.content_hash, COALESCE(sf.last_scan_id, 0), sf.scanned_at,
		        (SELECT COUNT(*) FROM comments c WHERE c.file_id = sf.id) AS comment_count
		 FROM source_files sf ORDER BY sf.path ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying source files: %w", err)
	}
	defer rows.Close()

	var files []models.SourceFile
	for rows.Next() {
		var f models.SourceFile
		if err := rows.Scan(&f.ID, &f.Path, &f.ContentHash, &f.LastScanID, &f.ScannedAt, &f.CommentCount); err != nil {
			return nil, fmt.Errorf("scanning source file row: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// GetSourceFileByID fetches a single scanned file.
func GetSourceFileByID(fileID int64) (models.SourceFile, error) {
	var f models.SourceFile
	err := DB.QueryRow(
		`SELECT sf.id, sf.path, sf.content_hash, COALESCE(sf.last_scan_id, 0), sf.scanned_at,
		        (SELECT COUNT(*) FROM comments c WHERE c.file_id = sf.id) AS comment_count
		 FROM source_files sf WHERE sf.id = ?`, fileID,
	).Scan(&f.ID, &f.Path, &f.ContentHash, &f.LastScanID, &f.ScannedAt, &f.CommentCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return f, fmt.Errorf("source file with ID %d not found", fileID)
		}
		return f, fmt.Errorf("querying source file %d: %w", fileID, err)
	}
	return f, nil
}
