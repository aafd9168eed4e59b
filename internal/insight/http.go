// Copyright (c) 2026 Patriarchia. All rights reserved.

package insight

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/copticarchive/patriarchia/internal/platform/apperr"
	requestutil "github.com/copticarchive/patriarchia/internal/platform/request"
	"github.com/copticarchive/patriarchia/internal/platform/respond"
)

// Handler exposes the generative endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the insight routes.
//
// # Endpoints
//   - POST /ask                      : Free-form history question.
//   - GET  /patriarchs/{id}/summary  : Generated summary for one record.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/ask", handler.ask)
	router.Get("/patriarchs/{id}/summary", handler.summary)

	return router
}

type askPayload struct {
	Question string `json:"question"`
}

type answerResponse struct {
	Answer string `json:"answer"`
}

func (handler *Handler) ask(writer http.ResponseWriter, request *http.Request) {
	var payload askPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	answer, err := handler.service.AskQuestion(request.Context(), payload.Question)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, answerResponse{Answer: answer})
}

func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Record ID must be numeric"))
		return
	}

	answer, err := handler.service.Summarize(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, answerResponse{Answer: answer})
}
