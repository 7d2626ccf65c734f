package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAnnouncementRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/regions", handler.ListRegions)
	mux.HandleFunc("POST /v1/announcements/extract", handler.ExtractAnnouncements)
	mux.HandleFunc("POST /v1/announcements", handler.CreateAnnouncements)
	mux.HandleFunc("GET /v1/announcements", handler.ListAnnouncements)
	mux.HandleFunc("DELETE /v1/announcements/{announcementID}", handler.DeleteAnnouncement)
}
