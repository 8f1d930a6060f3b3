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

// GetCommentsHandler handles GET requests to list stored comments with
// filters and pagination.
func GetCommentsHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	filters := models.CommentFilters{
		Filename:   r.URL.Query().Get("file"),
		Kind:       r.URL.Query().Get("kind"),
		SearchText: r.URL.Query().Get("search"),
		SortBy:     r.URL.Query().Get("sort_by"),
		SortOrder:  r.URL.Query().Get("sort_order"),
		Page:       page,
		Limit:      limit,
	}
	if fidStr := r.URL.Query().Get("file_id"); fidStr != "" {
		fid, err := strconv.ParseInt(fidStr, 10, 64)
		if err != nil {
			logger.Error("GetCommentsHandler: Invalid file_id format: %s", fidStr)
			http.Error(w, "Invalid file_id format", http.StatusBadRequest)
			return
		}
		filters.FileID = fid
	}
	if docStr := r.URL.Query().Get("doc_only"); docStr != "" {
		filters.DocOnly = docStr == "true" || docStr == "1"
	}

	comments, totalRecords, err := database.GetCommentsPaginated(filters)
	if err != nil {
		logger.Error("GetCommentsHandler: Error fetching comments: %v", err)
		http.Error(w, "Failed to retrieve comments", http.StatusInternalServerError)
		return
	}
	if comments == nil { // Ensure we return an empty array, not null
		comments = []models.Comment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.PaginatedResponse{
		Page:         filters.Page,
		Limit:        filters.Limit,
		TotalRecords: totalRecords,
		TotalPages:   totalPages(totalRecords, filters.Limit),
		Records:      comments,
	})
}

// GetCommentByIDHandler handles GET requests for a single stored comment.
func GetCommentByIDHandler(w http.ResponseWriter, r *http.Request) {
	commentIDStr := chi.URLParam(r, "comment_id")
	commentID, err := strconv.ParseInt(commentIDStr, 10, 64)
	if err != nil {
		logger.Error("GetCommentByIDHandler: Invalid comment_id format: %s", commentIDStr)
		http.Error(w, "Invalid comment ID format", http.StatusBadRequest)
		return
	}

	comment, err := database.GetCommentByID(commentID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, "Comment not found", http.StatusNotFound)
		} else {
			logger.Error("GetCommentByIDHandler: Error fetching comment %d: %v", commentID, err)
			http.Error(w, "Failed to retrieve comment", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comment)
}

// GetMacrosHandler handles GET requests to list stored macro symbols.
func GetMacrosHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	var fileID int64
	if fidStr := r.URL.Query().Get("file_id"); fidStr != "" {
		fid, err := strconv.ParseInt(fidStr, 10, 64)
		if err != nil {
			logger.Error("GetMacrosHandler: Invalid file_id format: %s", fidStr)
			http.Error(w, "Invalid file_id format", http.StatusBadRequest)
			return
		}
		fileID = fid
	}

	macros, totalRecords, err := database.GetMacrosPaginated(fileID, page, limit)
	if err != nil {
		logger.Error("GetMacrosHandler: Error fetching macro symbols: %v", err)
		http.Error(w, "Failed to retrieve macro symbols", http.StatusInternalServerError)
		return
	}
	if macros == nil {
		macros = []models.MacroSymbol{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.PaginatedResponse{
		Page:         page,
		Limit:        limit,
		TotalRecords: totalRecords,
		TotalPages:   totalPages(totalRecords, limit),
		Records:      macros,
	})
}
