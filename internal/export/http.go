// Copyright (c) 2026 Patriarchia. All rights reserved.

package export

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/copticarchive/patriarchia/internal/platform/respond"
)

// Handler exposes the CSV download endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the export routes. The caller mounts them behind the
// admin role middleware.
//
// # Endpoints
//   - GET /patriarchs.csv : Full catalogue snapshot as CSV.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/patriarchs.csv", handler.downloadCSV)

	return router
}

func (handler *Handler) downloadCSV(writer http.ResponseWriter, request *http.Request) {
	filename := fmt.Sprintf("patriarchs-%s.csv", time.Now().Format("2006-01-02"))

	writer.Header().Set("Content-Type", "text/csv; charset=utf-8")
	writer.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	if err := handler.service.WriteCSV(request.Context(), writer); err != nil {
		// Headers may already be on the wire; a JSON error is best effort.
		respond.Error(writer, request, err)
	}
}
