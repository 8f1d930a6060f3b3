package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cscan/core"
	"cscan/database"
	"cscan/logger"
	"cscan/models"
)

// ScanRequest is the POST /scan payload.
type ScanRequest struct {
	Paths           []string `json:"paths"`
	CompileCommands string   `json:"compile_commands,omitempty"` // Path to a compile_commands.json.
	Save            bool     `json:"save"`
}

// ScanResponse summarizes a scan triggered over the API. Comments are
// included inline only for unsaved scans.
type ScanResponse struct {
	Scan          *models.Scan     `json:"scan,omitempty"`
	Files         int              `json:"files"`
	FailedFiles   int              `json:"failed_files"`
	TotalComments int              `json:"total_comments"`
	TotalMacros   int              `json:"total_macros"`
	Comments      []models.Comment `json:"comments,omitempty"`
}

// RunScanHandler handles POST requests to run the extractor over a set of
// paths or a compile commands database.
func RunScanHandler(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("RunScanHandler: Error decoding request body: %v", err)
		http.Error(w, "Invalid request payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	paths := req.Paths
	if req.CompileCommands != "" {
		ccFiles, err := core.CompileCommandsFiles(req.CompileCommands)
		if err != nil {
			logger.Error("RunScanHandler: Error reading compile commands: %v", err)
			http.Error(w, "Failed to read compile commands: "+err.Error(), http.StatusBadRequest)
			return
		}
		paths = append(paths, ccFiles...)
	}
	if len(paths) == 0 {
		http.Error(w, "At least one path (or a compile_commands file) is required", http.StatusBadRequest)
		return
	}

	extractor := core.NewCommentExtractorFromConfig()
	result, err := extractor.ScanPaths(paths)
	if err != nil {
		logger.Error("RunScanHandler: Scan failed: %v", err)
		http.Error(w, "Scan failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := ScanResponse{
		Files:         len(result.Files),
		FailedFiles:   result.FailedFiles,
		TotalComments: result.TotalComments,
		TotalMacros:   result.TotalMacros,
	}
	if req.Save {
		scan, err := core.SaveResult(result, "")
		if err != nil {
			logger.Error("RunScanHandler: Error saving scan results: %v", err)
			http.Error(w, "Failed to save scan results", http.StatusInternalServerError)
			return
		}
		resp.Scan = &scan
	} else {
		comments := []models.Comment{}
		for _, fr := range result.Files {
			comments = append(comments, fr.Comments...)
		}
		resp.Comments = comments
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetScansHandler handles GET requests to list recent scan sessions.
func GetScansHandler(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}

	scans, err := database.GetRecentScans(limit)
	if err != nil {
		logger.Error("GetScansHandler: Error fetching scans: %v", err)
		http.Error(w, "Failed to retrieve scans", http.StatusInternalServerError)
		return
	}
	if scans == nil {
		scans = []models.Scan{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scans)
}
