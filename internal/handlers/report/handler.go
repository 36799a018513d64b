package report

import (
	"net/http"
	"time"

	"lodge/infras/otel"
	"lodge/internal/domains/report/service"
	"lodge/shared/constant"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/sales", handler.SalesReport)
		routerGroup.Get("/gst", handler.GstReport)
	})
}

// parseRange reads from/to as date-only values; zero times mean unset and the
// service applies its default window.
func parseRange(r *http.Request) (time.Time, time.Time) {
	from, _ := time.Parse(constant.DateOnlyFormat, r.URL.Query().Get(constant.RequestQueryFrom))
	to, _ := time.Parse(constant.DateOnlyFormat, r.URL.Query().Get(constant.RequestQueryTo))

	return from, to
}

// SalesReport aggregates hotel and bar revenue per day.
// @Summary Get the sales report
// @Description Per-day hotel and bar revenue, GST collected and discounts given over the requested range.
// @Tags Report
// @Accept json
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.SalesReportResponse] "Sales report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/sales [get]
// @Security BearerAuth
func (handler *Handler) SalesReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SalesReport")
	defer scope.End()

	from, to := parseRange(r)

	report, err := handler.service.Sales(ctx, from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build sales report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Sales report built successfully")

	response.WithJSON(w, http.StatusOK, report)
}

// GstReport aggregates taxable value and GST per day.
// @Summary Get the GST report
// @Description Per-day taxable value and GST collected, split into CGST and SGST, over the requested range.
// @Tags Report
// @Accept json
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GstReportResponse] "GST report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/gst [get]
// @Security BearerAuth
func (handler *Handler) GstReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GstReport")
	defer scope.End()

	from, to := parseRange(r)

	report, err := handler.service.Gst(ctx, from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build GST report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("GST report built successfully")

	response.WithJSON(w, http.StatusOK, report)
}
