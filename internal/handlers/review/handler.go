package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"musafir/infras/otel"
	"musafir/internal/domains/review/model/dto"
	"musafir/internal/domains/review/service"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
	"musafir/shared/validator"
	"musafir/transport/http/response"
)

type Handler struct {
	service service.Review
	otel    otel.Otel
}

func New(service service.Review, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reviews", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReview)
		routerGroup.Get("/{entityType}/{entityID}", handler.GetReviews)
		routerGroup.Get("/{entityType}/{entityID}/summary", handler.GetSummary)
		routerGroup.Delete("/{id}", handler.DeleteReview)
	})
}

// CreateReview submits a review for a bookable entity.
// @Summary Create a review
// @Description Submit a rating and comment for a hotel, car, flight, umrah package, or property.
// @Tags Review
// @Accept json
// @Produce json
// @Param request body dto.CreateReviewRequest true "Create Review Request"
// @Success 201 {object} response.Message "Review created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews [post]
// @Security BearerAuth
func (handler *Handler) CreateReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReview")
	defer scope.End()

	req := dto.CreateReviewRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create review")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Review created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Review created successfully")
}

// GetReviews lists reviews for an entity.
// @Summary Get reviews for an entity
// @Description Retrieve the reviews of a given entity, newest first, with pagination.
// @Tags Review
// @Accept json
// @Produce json
// @Param entityType path string true "Entity type (hotel, car, flight, umrah, property)"
// @Param entityID path string true "Entity ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetReviewsResponse] "List of reviews"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/{entityType}/{entityID} [get]
func (handler *Handler) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviews")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	entityType := chi.URLParam(r, "entityType")
	entityID := chi.URLParam(r, "entityID")

	reviews, err := handler.service.ListByEntity(ctx, queryParams, entityType, entityID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reviews")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reviews retrieved successfully")

	response.WithJSON(w, http.StatusOK, reviews)
}

// GetSummary returns the rating aggregation for an entity.
// @Summary Get review summary for an entity
// @Description Retrieve the average rating and per-star breakdown for a given entity.
// @Tags Review
// @Accept json
// @Produce json
// @Param entityType path string true "Entity type (hotel, car, flight, umrah, property)"
// @Param entityID path string true "Entity ID"
// @Success 200 {object} response.Data[dto.ReviewSummaryResponse] "Rating summary"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/{entityType}/{entityID}/summary [get]
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	entityType := chi.URLParam(r, "entityType")
	entityID := chi.URLParam(r, "entityID")

	summary, err := handler.service.Summary(ctx, entityType, entityID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get review summary")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review summary retrieved successfully")

	response.WithJSON(w, http.StatusOK, summary)
}

// DeleteReview deletes a review by its ID.
// @Summary Delete a review by ID
// @Description Delete a review; only the author or an admin may delete it.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} response.Message "Review deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReview")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete review")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Review deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Review deleted successfully")
}
