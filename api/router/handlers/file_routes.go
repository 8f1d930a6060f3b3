package handlers

import (
	"github.com/go-chi/chi/v5"
)

func RegisterFileRoutes(r chi.Router) {
	r.Get("/files", GetSourceFilesHandler)
	r.Get("/files/{file_id}/comments", GetFileCommentsHandler)
}
