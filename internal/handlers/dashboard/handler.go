package dashboard

import (
	"net/http"
	"parkspot/infras/otel"
	"parkspot/internal/domains/dashboard/service"
	"parkspot/shared/constant"
	"parkspot/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/metrics", handler.GetMetrics)
	})
}

// GetMetrics retrieves the live dashboard view for the operator's facility.
// @Summary Get dashboard metrics
// @Description Live occupancy, availability, and revenue derived from the booking ledger.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.DashboardMetrics] "Dashboard metrics"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/metrics [get]
// @Security BearerAuth
func (handler *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMetrics")
	defer scope.End()

	metrics, err := handler.service.Metrics(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard metrics")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dashboard metrics retrieved successfully")

	response.WithJSON(w, http.StatusOK, metrics)
}
