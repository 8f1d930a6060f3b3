package handlers

import (
	"github.com/go-chi/chi/v5"
)

func RegisterCommentRoutes(r chi.Router) {
	r.Get("/comments", GetCommentsHandler)
	r.Route("/comments/{comment_id}", func(subRouter chi.Router) {
		subRouter.Get("/", GetCommentByIDHandler)
	})

	r.Get("/macros", GetMacrosHandler)
}
