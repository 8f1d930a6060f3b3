package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cscan/logger"
	"cscan/models"
)

var allowedCommentSortColumns = map[string]string{
	"id":         "c.id",
	"file":       "sf.path",
	"start_line": "c.start_line",
	"kind":       "c.kind",
}

// ReplaceFileComments swaps out the stored comments and macro symbols for a
// file in a single transaction.
func ReplaceFileComments(fileID int64, comments []models.Comment, macros []models.MacroSymbol) error {
	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction for file %d: %w", fileID, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM comments WHERE file_id = ?", fileID); err != nil {
		return fmt.Errorf("deleting old comments for file %d: %w", fileID, err)
	}
	if _, err := tx.Exec("DELETE FROM macro_symbols WHERE file_id = ?", fileID); err != nil {
		return fmt.Errorf("deleting old macro symbols for file %d: %w", fileID, err)
	}

	commentStmt, err := tx.Prepare(
		"INSERT INTO comments (file_id, start_line, end_line, kind, is_doc, text) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing comment insert for file %d: %w", fileID, err)
	}
	defer commentStmt.Close()
	for _, c := range comments {
		if _, err := commentStmt.Exec(fileID, c.StartLine, c.EndLine, c.Kind, c.IsDoc, c.Text); err != nil {
			return fmt.Errorf("inserting comment at line %d for file %d: %w", c.StartLine, fileID, err)
		}
	}

	macroStmt, err := tx.Prepare(
		"INSERT INTO macro_symbols (file_id, name, kind, line_number, original_text) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing macro insert for file %d: %w", fileID, err)
	}
	defer macroStmt.Close()
	for _, m := range macros {
		if _, err := macroStmt.Exec(fileID, m.Name, m.Kind, m.LineNumber, m.OriginalText); err != nil {
			return fmt.Errorf("inserting macro '%s' for file %d: %w", m.Name, fileID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing comments for file %d: %w", fileID, err)
	}
	logger.Debug("Stored %d comments and %d macro symbols for file %d", len(comments), len(macros), fileID)
	return nil
}

// GetCommentsPaginated returns stored comments matching the filters plus the
// total record count for the filter set.
func GetCommentsPaginated(filters models.CommentFilters) ([]models.Comment, int64, error) {
	conditions := []string{}
	args := []interface{}{}

	if filters.FileID != 0 {
		conditions = append(conditions, "c.file_id = ?")
		args = append(args, filters.FileID)
	}
	if filters.Filename != "" {
		conditions = append(conditions, "sf.path = ?")
		args = append(args, filters.Filename)
	}
	if filters.Kind != "" {
		conditions = append(conditions, "c.kind = ?")
		args = append(args, strings.ToUpper(filters.Kind))
	}
	if filters.DocOnly {
		conditions = append(conditions, "c.is_doc = 1")
	}
	if filters.SearchText != "" {
		conditions = append(conditions, "c.text LIKE ?")
		args = append(args, "%"+filters.SearchText+"%")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var totalRecords int64
	countQuery := "SELECT COUNT(*) FROM comments c JOIN source_files sf ON sf.id = c.file_id" + whereClause
	if err := DB.QueryRow(countQuery, args...).Scan(&totalRecords); err != nil {
		return nil, 0, fmt.Errorf("counting comments: %w", err)
	}
	if totalRecords == 0 {
		return []models.Comment{}, 0, nil
	}

	sortColumn, ok := allowedCommentSortColumns[filters.SortBy]
	if !ok {
		sortColumn = "c.id"
	}
	sortOrder := "ASC"
	if strings.EqualFold(filters.SortOrder, "desc") {
		sortOrder = "DESC"
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(
		`SELECT c.id, c.file_id, sf.path, c.start_line, c.end_line, c.kind, c.is_doc, c.text
		 FROM comments c JOIN source_files sf ON sf.id = c.file_id%s
		 ORDER BY %s %s, c.id ASC LIMIT ? OFFSET ?`, whereClause, sortColumn, sortOrder)
	rows, err := DB.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, totalRecords, fmt.Errorf("querying comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.FileID, &c.Filename, &c.StartLine, &c.EndLine, &c.Kind, &c.IsDoc, &c.Text); err != nil {
			return nil, totalRecords, fmt.Errorf("scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, totalRecords, rows.Err()
}

// GetCommentByID fetches a single stored comment.
func GetCommentByID(commentID int64) (models.Comment, error) {
	var c models.Comment
	err := DB.QueryRow(
		`SELECT c.id, c.file_id, sf.path, c.start_line, c.end_line, c.kind, c.is_doc, c.text
		 FROM comments c JOIN source_files sf ON sf.id = c.file_id WHERE c.id = ?`, commentID,
	).Scan(&c.ID, &c.FileID, &c.Filename, &c.StartLine, &c.EndLine, &c.Kind, &c.IsDoc, &c.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, fmt.Errorf("comment with ID %d not found", commentID)
		}
		return c, fmt.Errorf("querying comment %d: %w", commentID, err)
	}
	return c, nil
}

// GetMacrosPaginated returns stored macro symbols, optionally restricted to
// one file, plus the total record count.
func GetMacrosPaginated(fileID int64, page, limit int) ([]models.MacroSymbol, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	if fileID != 0 {
		conditions = append(conditions, "m.file_id = ?")
		args = append(args, fileID)
	}
	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var totalRecords int64
	countQuery := "SELECT COUNT(*) FROM macro_symbols m" + whereClause
	if err := DB.QueryRow(countQuery, args...).Scan(&totalRecords); err != nil {
		return nil, 0, fmt.Errorf("counting macro symbols: %w", err)
	}
	if totalRecords == 0 {
		return []models.MacroSymbol{}, 0, nil
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(
		`SELECT m.id, m.file_id, sf.path, m.name, m.kind, m.line_number, m.original_text
		 FROM macro_symbols m JOIN source_files sf ON sf.id = m.file_id%s
		 ORDER BY sf.path ASC, m.line_number ASC LIMIT ? OFFSET ?`, whereClause)
	rows, err := DB.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, totalRecords, fmt.Errorf("querying macro symbols: %w", err)
	}
	defer rows.Close()

	macros := []models.MacroSymbol{}
	for rows.Next() {
		var m models.MacroSymbol
		if err := rows.Scan(&m.ID, &m.FileID, &m.Filename, &m.Name, &m.Kind, &m.LineNumber, &m.OriginalText); err != nil {
			return nil, totalRecords, fmt.Errorf("scanning macro symbol row: %w", err)
		}
		macros = append(macros, m)
	}
	return macros, totalRecords, rows.Err()
}
