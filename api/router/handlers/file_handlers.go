package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"cscan/database"
	"cscan/logger"
	"cscan/models"

	"github.com/go-chi/chi/v5"
)

// GetSourceFilesHandler handles GET requests to list scanned files.
func GetSourceFilesHandler(w http.ResponseWriter, r *http.Request) {
	files, err := database.GetSourceFiles()
	if err != nil {
		logger.Error("GetSourceFilesHandler: Error fetching source files: %v", err)
		http.Error(w, "Failed to retrieve source files", http.StatusInternalServerError)
		return
	}
	if files == nil { // Ensure we return an empty array, not null
		files = []models.SourceFile{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(files)
}

// GetFileCommentsHandler handles GET requests for the comments stored for a
// single file.
func GetFileCommentsHandler(w http.ResponseWriter, r *http.Request) {
	fileIDStr := chi.URLParam(r, "file_id")
	fileID, err := strconv.ParseInt(fileIDStr, 10, 64)
	if err != nil {
		logger.Error("GetFileCommentsHandler: Invalid file_id format: %s", fileIDStr)
		http.Error(w, "Invalid file ID format", http.StatusBadRequest)
		return
	}

	if _, err := database.GetSourceFileByID(fileID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, "Source file not found", http.StatusNotFound)
		} else {
			logger.Error("GetFileCommentsHandler: Error fetching source file %d: %v", fileID, err)
			http.Error(w, "Failed to retrieve source file", http.StatusInternalServerError)
		}
		return
	}

	page, limit := parsePagination(r)
	comments, totalRecords, err := database.GetCommentsPaginated(models.CommentFilters{
		FileID: fileID,
		Page:   page,
		Limit:  limit,
		SortBy: "start_line",
	})
	if err != nil {
		logger.Error("GetFileCommentsHandler: Error fetching comments for file %d: %v", fileID, err)
		http.Error(w, "Failed to retrieve comments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.PaginatedResponse{
		Page:         page,
		Limit:        limit,
		TotalRecords: totalRecords,
		TotalPages:   totalPages(totalRecords, limit),
		Records:      comments,
	})
}
