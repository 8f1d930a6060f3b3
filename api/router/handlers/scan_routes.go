package handlers

import (
	"github.com/go-chi/chi/v5"
)

func RegisterScanRoutes(r chi.Router) {
	r.Post("/scan", RunScanHandler)
	r.Get("/scans", GetScansHandler)
}
