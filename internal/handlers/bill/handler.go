package bill

import (
	"lodge/infras/otel"
	"lodge/internal/domains/bill/model"
	"lodge/internal/domains/bill/model/dto"
	"lodge/internal/domains/bill/service"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/validator"
	"lodge/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Bill
	otel    otel.Otel
}

func New(service service.Bill, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bills", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBill)
		routerGroup.Get("/", handler.GetBills)
		routerGroup.Get("/{id}", handler.GetBillByID)
		routerGroup.Patch("/{id}", handler.UpdateBill)
		routerGroup.Patch("/{id}/payment-status", handler.UpdatePaymentStatus)
		routerGroup.Delete("/{id}", handler.DeleteBill)
	})
}

// CreateBill creates a manual bill not produced by a checkout or an order.
// @Summary Create a manual bill
// @Description Create a bill from ad hoc line items, for walk-in charges not tied to a stay or a bar order.
// @Tags Bill
// @Accept json
// @Produce json
// @Param request body dto.CreateBillRequest true "Bill details"
// @Success 201 {object} response.Data[dto.BillResponse] "Bill created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills [post]
// @Security BearerAuth
func (handler *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBill")
	defer scope.End()

	var req dto.CreateBillRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	bill, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create bill")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Bill created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, bill)
}

// GetBills retrieves bills based on query parameters.
// @Summary Get all bills
// @Description Retrieve all bills with optional filtering and pagination.
// @Tags Bill
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param invoice_no query string false "Filter by invoice number"
// @Param payment_status query string false "Filter by payment status"
// @Param guest_id query string false "Filter by guest"
// @Success 200 {object} response.Data[dto.GetBillsResponse] "List of bills"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills [get]
func (handler *Handler) GetBills(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBills")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldInvoiceNo,
				Operator: gDto.FilterOperatorLike,
				Value:    r.URL.Query().Get(model.FieldInvoiceNo),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldPaymentStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldPaymentStatus),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldGuestID,
				Operator: gDto.FilterOperatorEq,
				Value:    r.URL.Query().Get(model.FieldGuestID),
				Table:    model.TableName,
			},
		},
	}

	bills, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bills")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bills retrieved successfully")

	response.WithJSON(w, http.StatusOK, bills)
}

// GetBillByID retrieves a bill by its ID.
// @Summary Get a bill by ID
// @Description Retrieve a bill by its unique identifier.
// @Tags Bill
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} response.Data[dto.BillResponse] "Bill details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/{id} [get]
func (handler *Handler) GetBillByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBillByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	bill, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bill by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bill retrieved successfully")

	response.WithJSON(w, http.StatusOK, bill)
}

// UpdateBill edits an unsettled bill.
// @Summary Update a bill by ID
// @Description Replace the line items or discount of an unsettled bill. Totals are recomputed.
// @Tags Bill
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param request body dto.UpdateBillRequest true "Fields to update"
// @Success 200 {object} response.Message "Bill updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBill")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateBillRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update bill")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Bill updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Bill updated successfully")
}

// UpdatePaymentStatus settles or reopens a bill.
// @Summary Update bill payment status
// @Description Move a bill between Paid, Pending and PartiallyPaid.
// @Tags Bill
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param request body dto.UpdatePaymentStatusRequest true "Target payment status"
// @Success 200 {object} response.Data[dto.BillResponse] "Payment status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/{id}/payment-status [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePaymentStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdatePaymentStatusRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	bill, err := handler.service.UpdatePaymentStatus(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update bill payment status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Bill payment status updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, bill)
}

// DeleteBill removes a bill.
// @Summary Delete a bill by ID
// @Description Delete a bill by its unique identifier.
// @Tags Bill
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} response.Message "Bill deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBill")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete bill")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Bill deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Bill deleted successfully")
}
