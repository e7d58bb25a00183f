package flight

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"musafir/infras/otel"
	"musafir/internal/domains/flight/model"
	"musafir/internal/domains/flight/model/dto"
	"musafir/internal/domains/flight/service"
	"musafir/shared"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
	"musafir/shared/validator"
	"musafir/transport/http/response"
)

type Handler struct {
	service service.Flight
	otel    otel.Otel
}

func New(service service.Flight, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/flights", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTicket)
		routerGroup.Get("/", handler.GetTickets)
		routerGroup.Get("/search", handler.SearchTickets)
		routerGroup.Get("/my", handler.GetMyFlights)
		routerGroup.Get("/{id}", handler.GetTicketByID)
		routerGroup.Patch("/{id}", handler.UpdateTicket)
		routerGroup.Delete("/{id}", handler.DeleteTicket)
	})
}

// CreateTicket lists a new flight ticket.
// @Summary Create a new flight ticket
// @Description Create a flight ticket listing with the provided details.
// @Tags Flight
// @Accept json
// @Produce json
// @Param request body dto.CreateTicketRequest true "Create Ticket Request"
// @Success 201 {object} response.Message "Flight ticket created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/flights [post]
// @Security BearerAuth
func (handler *Handler) CreateTicket(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTicket")
	defer scope.End()

	req := dto.CreateTicketRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create flight ticket")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Flight ticket created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Flight ticket created successfully")
}

// GetTickets retrieves all flight tickets based on query parameters.
// @Summary Get all flight tickets
// @Description Retrieve all flight tickets with optional filtering and pagination.
// @Tags Flight
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param airline query string false "Filter by airline"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetTicketsResponse] "List of flight tickets"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/flights [get]
// @Security BearerAuth
func (handler *Handler) GetTickets(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTickets")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if airline := r.URL.Query().Get(model.FieldAirline); airline != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAirline,
			Operator: gDto.FilterOperatorLike,
			Value:    airline,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	tickets, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get flight tickets")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Flight tickets retrieved successfully")

	response.WithJSON(w, http.StatusOK, tickets)
}

// SearchTickets searches active tickets by route, date, and cabin.
// @Summary Search flight tickets
// @Description Search active flight tickets by origin, destination, departure date, and cabin.
// @Tags Flight
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param origin query string false "Origin airport code"
// @Param destination query string false "Destination airport code"
// @Param date query string false "Departure date (YYYY-MM-DD)"
// @Param cabin query string false "Cabin class (economy, business, first)"
// @Success 200 {object} response.Data[dto.GetTicketsResponse] "Matching flight tickets"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/flights/search [get]
func (handler *Handler) SearchTickets(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchTickets")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	req := dto.SearchTicketsRequest{
		Origin:      r.URL.Query().Get(model.FieldOrigin),
		Destination: r.URL.Query().Get(model.FieldDestination),
		Date:        r.URL.Query().Get("date"),
		Cabin:       r.URL.Query().Get(model.FieldCabin),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate search request")

		response.WithError(w, err)

		return
	}

	tickets, err := handler.service.Search(ctx, queryParams, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search flight tickets")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Flight tickets searched successfully")

	response.WithJSON(w, http.StatusOK, tickets)
}

// GetMyFlights partitions the caller's flight bookings into upcoming and past.
// @Summary Get own flights
// @Description Retrieve the authenticated user's flight bookings split into upcoming and past trips.
// @Tags Flight
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.MyFlightsResponse] "Upcoming and past flights"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/flights/my [get]
// @Security BearerAuth
func (handler *Handler) GetMyFlights(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyFlights")
	defer scope.End()

	flights, err := handler.service.MyFlights(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own flights")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Own flights retrieved successfully")

	response.WithJSON(w, http.StatusOK, flights)
}

// GetTicketByID retrieves a flight ticket by its ID.
// @Summary Get a flight ticket by ID
// @Description Retrieve a flight ticket by its unique identifier.
// @Tags Flight
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.Data[dto.TicketResponse] "Flight ticket details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/flights/{id} [get]
func (handler *Handler) GetTicketByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTicketByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	ticket, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get flight ticket by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Flight ticket retrieved successfully")

	response.WithJSON(w, http.StatusOK, ticket)
}

// UpdateTicket updates an existing flight ticket by its ID.
// @Summary Update a flight ticket by ID
// @Description Update the details of an existing flight ticket.
// @Tags Flight
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body dto.UpdateTicketRequest true "Update Ticket Request"
// @Success 200 {object} response.Message "Flight ticket updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/flights/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTicket")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTicketRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update flight ticket")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Flight ticket updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Flight ticket updated successfully")
}

// DeleteTicket deletes a flight ticket by its ID.
// @Summary Delete a flight ticket by ID
// @Description Delete a flight ticket using its unique identifier.
// @Tags Flight
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.Message "Flight ticket deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/flights/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTicket")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete flight ticket")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Flight ticket deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Flight ticket deleted successfully")
}
