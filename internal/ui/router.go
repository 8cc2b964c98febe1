package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

var ProtectedPaths = []string{
	"/dashboard",
	"/upload",
	"/document/{id}",
	"/approvals",
	"/approved-documents",
	"/assigned-documents",
	"/stats",
	"/create-user",
	"/manager-dashboard",
	"/admin",
	"/profile",
	"/alerts",
}

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	router := chi.NewRouter()

	router.Use(mw.Log, mw.Recover)

	router.NotFound(h.NotFound)

	router.Group(func(r chi.Router) {
		r.Get("/", h.Root)
		r.Get("/login", h.Login)
	})

	router.Group(func(r chi.Router) {
		r.Use(mw.Guard)

		r.Get("/dashboard", h.Dashboard)
		r.Get("/upload", h.Upload)
		r.Get("/document/{id}", h.DocumentDetail)
		r.Get("/approvals", h.Approvals)
		r.Get("/approved-documents", h.ApprovedDocs)
		r.Get("/assigned-documents", h.AssignedDocs)
		r.Get("/stats", h.Analytics)
		r.Get("/create-user", h.CreateUser)
		r.Get("/manager-dashboard", h.ManagerDashboard)
		r.Get("/admin", h.Admin)
		r.Get("/profile", h.Profile)
		r.Get("/alerts", h.Alerts)
	})

	return router
}
