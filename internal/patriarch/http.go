// Copyright (c) 2026 Patriarchia. All rights reserved.

package patriarch

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/copticarchive/patriarchia/internal/platform/apperr"
	"github.com/copticarchive/patriarchia/internal/platform/middleware"
	requestutil "github.com/copticarchive/patriarchia/internal/platform/request"
	"github.com/copticarchive/patriarchia/internal/platform/respond"
	"github.com/copticarchive/patriarchia/internal/platform/sec"
	"github.com/copticarchive/patriarchia/pkg/pagination"
	"github.com/copticarchive/patriarchia/pkg/query"
)

// Handler implements the catalogue HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public, read-only catalogue routes.
//
// # Endpoints
//   - GET /           : Filtered, paginated listing.
//   - GET /eras       : Distinct era labels for the filter UI.
//   - GET /heresies   : Distinct normalized heresy names for the filter UI.
//   - GET /{identifier} : Single record by numeric ID or slug.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/eras", handler.listEras)
	router.Get("/heresies", handler.listHeresies)
	router.Get("/{identifier}", handler.get)

	return router
}

// AdminRoutes returns the administrative routes. The caller mounts them
// behind the curator role middleware; mutations additionally require the
// admin role.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	// Curators get the full listing, inactive records included.
	router.Get("/", handler.adminList)

	// Mutations are reserved for admins.
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireRole(sec.RoleAdmin))
		protected.Post("/", handler.create)
		protected.Patch("/{id}", handler.update)
		protected.Delete("/{id}", handler.softDelete)
		protected.Post("/{id}/restore", handler.restore)
	})

	return router
}

// # Public Endpoints

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()

	criteria := Filter{
		SearchText: params.Get("search"),
		Era:        params.Get("era"),
		Heresies:   query.StringSlice(params.Get("heresies")),
	}
	page := pagination.FromRequest(request)

	records, total, err := handler.service.List(request.Context(), criteria, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	record, err := handler.service.Get(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) listEras(writer http.ResponseWriter, request *http.Request) {
	eras, err := handler.service.Eras(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, eras)
}

func (handler *Handler) listHeresies(writer http.ResponseWriter, request *http.Request) {
	heresies, err := handler.service.Heresies(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, heresies)
}

// # Administrative Endpoints

// patriarchPayload is the JSON body shared by create and update.
//
// HeresiesFought stays untyped so payloads may send a JSON array or any of
// the legacy string encodings; the service normalizes either way.
type patriarchPayload struct {
	Name           *string `json:"name"`
	CopticName     *string `json:"coptic_name"`
	SequenceNumber *int    `json:"sequence_number"`
	StartYear      *int    `json:"start_year"`
	EndYear        *int    `json:"end_year"`
	Incumbent      *bool   `json:"incumbent"`
	Era            *string `json:"era"`
	Contributions  *string `json:"contributions"`
	Biography      *string `json:"biography"`
	HeresiesFought any     `json:"heresies_fought"`
}

func (handler *Handler) adminList(writer http.ResponseWriter, request *http.Request) {
	records, err := handler.service.AdminList(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, records)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload patriarchPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := CreateInput{
		Name:           deref(payload.Name),
		CopticName:     deref(payload.CopticName),
		SequenceNumber: derefInt(payload.SequenceNumber),
		StartYear:      derefInt(payload.StartYear),
		EndYear:        payload.EndYear,
		Era:            deref(payload.Era),
		Contributions:  deref(payload.Contributions),
		Biography:      deref(payload.Biography),
		HeresiesFought: payload.HeresiesFought,
	}

	record, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, record)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload patriarchPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := UpdateInput{
		Name:           payload.Name,
		CopticName:     payload.CopticName,
		SequenceNumber: payload.SequenceNumber,
		StartYear:      payload.StartYear,
		EndYear:        payload.EndYear,
		ClearEndYear:   payload.Incumbent != nil && *payload.Incumbent,
		Era:            payload.Era,
		Contributions:  payload.Contributions,
		Biography:      payload.Biography,
		HeresiesFought: payload.HeresiesFought,
	}

	record, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) softDelete(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SoftDelete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) restore(writer http.ResponseWriter, request *http.Request) {
	id, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Restore(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Handler Helpers

func pathID(request *http.Request) (int, error) {
	id, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		return 0, apperr.ValidationError("Record ID must be numeric")
	}
	return id, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
