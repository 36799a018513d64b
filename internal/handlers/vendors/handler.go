package vendor

import (
	"net/http"

	"lodge/infras/otel"
	"lodge/internal/domains/vendors/model"
	"lodge/internal/domains/vendors/model/dto"
	"lodge/internal/domains/vendors/service"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/validator"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Vendor
	otel    otel.Otel
}

func New(service service.Vendor, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/vendors", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateVendor)
		routerGroup.Get("/", handler.GetVendors)
		routerGroup.Get("/{id}", handler.GetVendorByID)
		routerGroup.Patch("/{id}", handler.UpdateVendor)
		routerGroup.Delete("/{id}", handler.DeleteVendor)
	})

	router.Route("/purchase-orders", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePurchaseOrder)
		routerGroup.Get("/", handler.GetPurchaseOrders)
		routerGroup.Get("/{id}", handler.GetPurchaseOrderByID)
		routerGroup.Patch("/{id}", handler.UpdatePurchaseOrder)
		routerGroup.Delete("/{id}", handler.DeletePurchaseOrder)
		routerGroup.Post("/{id}/receive", handler.ReceivePurchaseOrder)
	})
}

// CreateVendor registers a supplier.
// @Summary Create a vendor
// @Description Register a supplier for stock purchases.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param request body dto.CreateVendorRequest true "Vendor details"
// @Success 201 {object} response.Data[dto.VendorResponse] "Vendor created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vendors [post]
// @Security BearerAuth
func (handler *Handler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVendor")
	defer scope.End()

	var req dto.CreateVendorRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	vendor, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create vendor")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Vendor created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, vendor)
}

// GetVendors retrieves vendors based on query parameters.
// @Summary Get all vendors
// @Description Retrieve all vendors with optional filtering and pagination.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param active query string false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetVendorsResponse] "List of vendors"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vendors [get]
func (handler *Handler) GetVendors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVendors")
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
			gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldActive),
				Table:    model.TableName,
			},
		},
	}

	vendors, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get vendors")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Vendors retrieved successfully")

	response.WithJSON(w, http.StatusOK, vendors)
}

// GetVendorByID retrieves a vendor by its ID.
// @Summary Get a vendor by ID
// @Description Retrieve a vendor by its unique identifier.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} response.Data[dto.VendorResponse] "Vendor details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vendors/{id} [get]
func (handler *Handler) GetVendorByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVendorByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	vendor, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get vendor by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Vendor retrieved successfully")

	response.WithJSON(w, http.StatusOK, vendor)
}

// UpdateVendor updates a vendor by its ID.
// @Summary Update a vendor by ID
// @Description Update the details of a vendor, including deactivation.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Param request body dto.UpdateVendorRequest true "Fields to update"
// @Success 200 {object} response.Message "Vendor updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vendors/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateVendor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateVendorRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update vendor")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Vendor updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Vendor updated successfully")
}

// DeleteVendor removes a vendor without pending purchase orders.
// @Summary Delete a vendor by ID
// @Description Delete a vendor. Vendors with pending purchase orders cannot be deleted.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {object} response.Message "Vendor deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/vendors/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteVendor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete vendor")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Vendor deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Vendor deleted successfully")
}

// CreatePurchaseOrder raises a purchase order against a vendor.
// @Summary Create a purchase order
// @Description Raise a pending purchase order for stock items against an active vendor.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param request body dto.CreatePurchaseOrderRequest true "Purchase order details"
// @Success 201 {object} response.Data[dto.PurchaseOrderResponse] "Purchase order created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/purchase-orders [post]
// @Security BearerAuth
func (handler *Handler) CreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePurchaseOrder")
	defer scope.End()

	var req dto.CreatePurchaseOrderRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	order, err := handler.service.CreatePurchaseOrder(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create purchase order")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Purchase order created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, order)
}

// GetPurchaseOrders retrieves purchase orders based on query parameters.
// @Summary Get all purchase orders
// @Description Retrieve all purchase orders with optional filtering and pagination.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param vendor_id query string false "Filter by vendor"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetPurchaseOrdersResponse] "List of purchase orders"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/purchase-orders [get]
func (handler *Handler) GetPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPurchaseOrders")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldVendorID,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldVendorID),
				Table:    model.PurchaseOrderTableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldStatus),
				Table:    model.PurchaseOrderTableName,
			},
		},
	}

	orders, err := handler.service.GetPurchaseOrders(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get purchase orders")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Purchase orders retrieved successfully")

	response.WithJSON(w, http.StatusOK, orders)
}

// GetPurchaseOrderByID retrieves a purchase order by its ID.
// @Summary Get a purchase order by ID
// @Description Retrieve a purchase order by its unique identifier.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param id path string true "Purchase order ID"
// @Success 200 {object} response.Data[dto.PurchaseOrderResponse] "Purchase order details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/purchase-orders/{id} [get]
func (handler *Handler) GetPurchaseOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPurchaseOrderByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	order, err := handler.service.GetPurchaseOrder(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get purchase order by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Purchase order retrieved successfully")

	response.WithJSON(w, http.StatusOK, order)
}

// UpdatePurchaseOrder updates a pending purchase order.
// @Summary Update a purchase order by ID
// @Description Update the status or expected date of a purchase order that has not been received.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param id path string true "Purchase order ID"
// @Param request body dto.UpdatePurchaseOrderRequest true "Fields to update"
// @Success 200 {object} response.Message "Purchase order updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/purchase-orders/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePurchaseOrder")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdatePurchaseOrderRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdatePurchaseOrder(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update purchase order")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Purchase order updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Purchase order updated successfully")
}

// DeletePurchaseOrder removes a purchase order that has not been received.
// @Summary Delete a purchase order by ID
// @Description Delete a purchase order. Received orders cannot be deleted.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param id path string true "Purchase order ID"
// @Success 200 {object} response.Message "Purchase order deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/purchase-orders/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePurchaseOrder")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeletePurchaseOrder(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete purchase order")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Purchase order deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Purchase order deleted successfully")
}

// ReceivePurchaseOrder stocks in a purchase order.
// @Summary Receive a purchase order
// @Description Apply a stock-in for every line and mark the order received. Receiving twice returns the order unchanged.
// @Tags Vendor
// @Accept json
// @Produce json
// @Param id path string true "Purchase order ID"
// @Success 200 {object} response.Data[dto.PurchaseOrderResponse] "Purchase order received successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/purchase-orders/{id}/receive [post]
// @Security BearerAuth
func (handler *Handler) ReceivePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReceivePurchaseOrder")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	order, err := handler.service.ReceivePurchaseOrder(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to receive purchase order")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Purchase order received successfully by user " + user)

	response.WithJSON(w, http.StatusOK, order)
}
