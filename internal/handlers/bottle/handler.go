package bottle

import (
	"lodge/infras/otel"
	"lodge/internal/domains/bottle/model"
	"lodge/internal/domains/bottle/model/dto"
	"lodge/internal/domains/bottle/service"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/validator"
	"lodge/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Bottle
	otel    otel.Otel
}

func New(service service.Bottle, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bottles", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBottle)
		routerGroup.Get("/", handler.GetBottles)
		routerGroup.Get("/usage", handler.GetUsage)
		routerGroup.Get("/{id}", handler.GetBottleByID)
		routerGroup.Patch("/{id}", handler.UpdateBottle)
		routerGroup.Post("/{id}/wastage", handler.RecordWastage)
		routerGroup.Delete("/{id}", handler.DeleteBottle)
	})
}

// CreateBottle registers a bulk liquor container.
// @Summary Create a new bottle
// @Description Register a bulk container with its total volume and pour size. The current volume starts full.
// @Tags Bottle
// @Accept json
// @Produce json
// @Param request body dto.CreateBottleRequest true "Bottle details"
// @Success 201 {object} response.Data[dto.BottleResponse] "Bottle created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bottles [post]
// @Security BearerAuth
func (handler *Handler) CreateBottle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBottle")
	defer scope.End()

	var req dto.CreateBottleRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	bottle, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create bottle")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Bottle created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, bottle)
}

// GetBottles retrieves bottles based on query parameters.
// @Summary Get all bottles
// @Description Retrieve all bulk containers with optional filtering and pagination.
// @Tags Bottle
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetBottlesResponse] "List of bottles"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bottles [get]
// @Security BearerAuth
func (handler *Handler) GetBottles(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBottles")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldName),
				Table:    model.TableName,
			},
		},
	}

	bottles, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bottles")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bottles retrieved successfully")

	response.WithJSON(w, http.StatusOK, bottles)
}

// GetUsage reports pour and wastage volumes per bottle.
// @Summary Get bottle usage report
// @Description Report consumed volume, wastage and remaining servings for every bottle.
// @Tags Bottle
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.BottleUsageResponse] "Usage per bottle"
// @Failure 500 {object} response.Error
// @Router /v1/bottles/usage [get]
// @Security BearerAuth
func (handler *Handler) GetUsage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsage")
	defer scope.End()

	usage, err := handler.service.Usage(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bottle usage")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bottle usage retrieved successfully")

	response.WithJSON(w, http.StatusOK, usage)
}

// GetBottleByID retrieves a bottle by its ID.
// @Summary Get a bottle by ID
// @Description Retrieve a bulk container by its unique identifier.
// @Tags Bottle
// @Accept json
// @Produce json
// @Param id path string true "Bottle ID"
// @Success 200 {object} response.Data[dto.BottleResponse] "Bottle details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bottles/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBottleByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBottleByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	bottle, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bottle by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bottle retrieved successfully")

	response.WithJSON(w, http.StatusOK, bottle)
}

// UpdateBottle edits a bottle's attributes.
// @Summary Update a bottle by ID
// @Description Update the name, brand, serving size or low stock threshold of a bottle.
// @Tags Bottle
// @Accept json
// @Produce json
// @Param id path string true "Bottle ID"
// @Param request body dto.UpdateBottleRequest true "Fields to update"
// @Success 200 {object} response.Message "Bottle updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bottles/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBottle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBottle")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateBottleRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update bottle")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Bottle updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Bottle updated successfully")
}

// RecordWastage deducts a spilled or expired volume from a bottle.
// @Summary Record bottle wastage
// @Description Deduct a wasted volume from a bottle and accumulate it in the wastage counter.
// @Tags Bottle
// @Accept json
// @Produce json
// @Param id path string true "Bottle ID"
// @Param request body dto.RecordWastageRequest true "Wasted amount"
// @Success 200 {object} response.Data[dto.BottleResponse] "Wastage recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bottles/{id}/wastage [post]
// @Security BearerAuth
func (handler *Handler) RecordWastage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordWastage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.RecordWastageRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	bottle, err := handler.service.RecordWastage(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record wastage")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Wastage recorded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, bottle)
}

// DeleteBottle removes a bottle.
// @Summary Delete a bottle by ID
// @Description Delete a bulk container by its unique identifier.
// @Tags Bottle
// @Accept json
// @Produce json
// @Param id path string true "Bottle ID"
// @Success 200 {object} response.Message "Bottle deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bottles/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBottle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBottle")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete bottle")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Bottle deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Bottle deleted successfully")
}
