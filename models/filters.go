package models

// CommentFilters defines parameters for filtering stored comment queries.
type CommentFilters struct {
	FileID     int64  `json:"file_id"`
	Filename   string `json:"filename,omitempty"` // Exact path match.
	Kind       string `json:"kind,omitempty"`     // BLOCK, LINE or MACRO.
	DocOnly    bool   `json:"doc_only"`
	SearchText string `json:"search,omitempty"` // Substring match on comment text.
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	SortBy     string `json:"sort_by"`
	SortOrder  string `json:"sort_order"`
}

// PaginatedResponse is a generic structure for paginated API responses.
type PaginatedResponse struct {
	Page         int         `json:"page"`
	Limit        int         `json:"limit"`
	TotalRecords int64       `json:"total_records"`
	TotalPages   int         `json:"total_pages"`
	Records      interface{} `json:"records"` // Can hold any type of record slice.
}
