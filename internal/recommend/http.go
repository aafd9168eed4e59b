// Copyright (c) 2026 Patriarchia. All rights reserved.

package recommend

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/copticarchive/patriarchia/internal/patriarch"
	requestutil "github.com/copticarchive/patriarchia/internal/platform/request"
	"github.com/copticarchive/patriarchia/internal/platform/respond"
	"github.com/copticarchive/patriarchia/pkg/slice"
)

// Handler exposes the recommendation endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the recommendation routes.
//
// # Endpoints
//   - POST / : Score the catalogue against preference selections or a
//     free-form interest description.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.recommend)

	return router
}

// recommendPayload is the JSON request body. All fields are optional but
// at least one must carry a value.
type recommendPayload struct {
	Eras        []string `json:"eras"`
	Heresies    []string `json:"heresies"`
	Period      string   `json:"period"`
	Topic       string   `json:"topic"`
	Trait       string   `json:"trait"`
	Search      string   `json:"search"`
	Description string   `json:"description"`
}

// matchResponse flattens a scored match for the wire.
type matchResponse struct {
	Patriarch *patriarch.Patriarch `json:"patriarch"`
	Score     int                  `json:"score,omitempty"`
	Reasons   []string             `json:"reasons"`
	Advice    string               `json:"advice,omitempty"`
}

type recommendResponse struct {
	Mode    string          `json:"mode"`
	Matches []matchResponse `json:"matches"`
}

func (handler *Handler) recommend(writer http.ResponseWriter, request *http.Request) {
	var payload recommendPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := Input{
		Preferences: Preferences{
			Eras:       payload.Eras,
			Heresies:   payload.Heresies,
			Period:     payload.Period,
			Topic:      payload.Topic,
			Trait:      payload.Trait,
			SearchText: payload.Search,
		},
		Description: payload.Description,
	}

	result, err := handler.service.Recommend(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, recommendResponse{
		Mode: result.Mode,
		Matches: slice.Map(result.Matches, func(match Match) matchResponse {
			return matchResponse{
				Patriarch: match.Patriarch,
				Score:     match.Score,
				Reasons:   match.Reasons,
				Advice:    match.Advice,
			}
		}),
	})
}
