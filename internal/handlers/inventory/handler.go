package inventory

import (
	"net/http"
	"strconv"

	"lodge/infras/otel"
	"lodge/internal/domains/inventory/model"
	"lodge/internal/domains/inventory/model/dto"
	"lodge/internal/domains/inventory/service"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/validator"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Inventory
	otel    otel.Otel
}

func New(service service.Inventory, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/inventory", func(routerGroup chi.Router) {
		routerGroup.Route("/items", func(itemsGroup chi.Router) {
			itemsGroup.Post("/", handler.CreateItem)
			itemsGroup.Get("/", handler.GetItems)
			itemsGroup.Get("/{id}", handler.GetItemByID)
			itemsGroup.Patch("/{id}", handler.UpdateItem)
			itemsGroup.Delete("/{id}", handler.DeleteItem)
		})

		routerGroup.Route("/transactions", func(transactionsGroup chi.Router) {
			transactionsGroup.Post("/", handler.RecordTransaction)
			transactionsGroup.Get("/", handler.GetTransactions)
		})

		routerGroup.Route("/alerts", func(alertsGroup chi.Router) {
			alertsGroup.Get("/low-stock", handler.LowStockAlerts)
			alertsGroup.Get("/expiry", handler.ExpiryAlerts)
		})
	})
}

// CreateItem registers a consumable stock item.
// @Summary Create a stock item
// @Description Register a consumable stock item tracked by the back office.
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body dto.CreateStockItemRequest true "Stock item details"
// @Success 201 {object} response.Data[dto.StockItemResponse] "Stock item created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inventory/items [post]
// @Security BearerAuth
func (handler *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	var req dto.CreateStockItemRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	item, err := handler.service.CreateItem(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create stock item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Stock item created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, item)
}

// GetItems retrieves stock items based on query parameters.
// @Summary Get all stock items
// @Description Retrieve all stock items with optional filtering and pagination.
// @Tags Inventory
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Data[dto.GetStockItemsResponse] "List of stock items"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inventory/items [get]
func (handler *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItems")
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
				Table:    model.ItemTableName,
			},
			gDto.Filter{
				Field:    model.FieldCategory,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldCategory),
				Table:    model.ItemTableName,
			},
		},
	}

	items, err := handler.service.GetItems(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get stock items")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Stock items retrieved successfully")

	response.WithJSON(w, http.StatusOK, items)
}

// GetItemByID retrieves a stock item by its ID.
// @Summary Get a stock item by ID
// @Description Retrieve a stock item by its unique identifier.
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Stock item ID"
// @Success 200 {object} response.Data[dto.StockItemResponse] "Stock item details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inventory/items/{id} [get]
func (handler *Handler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItemByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	item, err := handler.service.GetItem(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get stock item by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Stock item retrieved successfully")

	response.WithJSON(w, http.StatusOK, item)
}

// UpdateItem updates a stock item by its ID.
// @Summary Update a stock item by ID
// @Description Update the details of a stock item. Quantity moves only through transactions.
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Stock item ID"
// @Param request body dto.UpdateStockItemRequest true "Fields to update"
// @Success 200 {object} response.Message "Stock item updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inventory/items/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItem")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateStockItemRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateItem(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update stock item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Stock item updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Stock item updated successfully")
}

// DeleteItem removes a stock item.
// @Summary Delete a stock item by ID
// @Description Delete a stock item by its unique identifier.
// @Tags Inventory
// @Accept json
// @Produce json
// @Param id path string true "Stock item ID"
// @Success 200 {object} response.Message "Stock item deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inventory/items/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteItem")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteItem(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete stock item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Stock item deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Stock item deleted successfully")
}

// RecordTransaction records a stock movement.
// @Summary Record a stock transaction
// @Description Record a stock-in, stock-out, adjustment or wastage movement and apply it to the item quantity.
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body dto.RecordTransactionRequest true "Transaction details"
// @Success 201 {object} response.Data[dto.TransactionResponse] "Transaction recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inventory/transactions [post]
// @Security BearerAuth
func (handler *Handler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordTransaction")
	defer scope.End()

	var req dto.RecordTransactionRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	transaction, err := handler.service.RecordTransaction(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record stock transaction")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Stock transaction recorded successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, transaction)
}

// GetTransactions retrieves the stock movement ledger.
// @Summary Get stock transactions
// @Description Retrieve stock transactions with optional filtering by item and type.
// @Tags Inventory
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param item_id query string false "Filter by stock item"
// @Param type query string false "Filter by transaction type"
// @Success 200 {object} response.Data[dto.GetTransactionsResponse] "List of stock transactions"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inventory/transactions [get]
func (handler *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransactions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldItemID,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldItemID),
				Table:    model.TransactionTableName,
			},
			gDto.Filter{
				Field:    model.FieldType,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldType),
				Table:    model.TransactionTableName,
			},
		},
	}

	transactions, err := handler.service.GetTransactions(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get stock transactions")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Stock transactions retrieved successfully")

	response.WithJSON(w, http.StatusOK, transactions)
}

// LowStockAlerts lists items at or below their reorder level.
// @Summary Get low stock alerts
// @Description List stock items whose quantity is at or below the reorder level.
// @Tags Inventory
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.StockAlertsResponse] "Items running low"
// @Failure 500 {object} response.Error
// @Router /v1/inventory/alerts/low-stock [get]
func (handler *Handler) LowStockAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".LowStockAlerts")
	defer scope.End()

	alerts, err := handler.service.LowStockAlerts(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get low stock alerts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Low stock alerts retrieved successfully")

	response.WithJSON(w, http.StatusOK, alerts)
}

// ExpiryAlerts lists items expiring within the given number of days.
// @Summary Get expiry alerts
// @Description List stock items expiring within the given number of days (default 7).
// @Tags Inventory
// @Accept json
// @Produce json
// @Param days query int false "Alert horizon in days"
// @Success 200 {object} response.Data[dto.StockAlertsResponse] "Items approaching expiry"
// @Failure 500 {object} response.Error
// @Router /v1/inventory/alerts/expiry [get]
func (handler *Handler) ExpiryAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExpiryAlerts")
	defer scope.End()

	days, _ := strconv.Atoi(r.URL.Query().Get(constant.RequestQueryDays))

	alerts, err := handler.service.ExpiryAlerts(ctx, days)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get expiry alerts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Expiry alerts retrieved successfully")

	response.WithJSON(w, http.StatusOK, alerts)
}
