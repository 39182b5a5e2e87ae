package stats

import (
	"net/http"
	"parkspot/infras/otel"
	"parkspot/internal/domains/stats/service"
	"parkspot/shared/constant"
	"parkspot/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Stats
	otel    otel.Otel
}

func New(service service.Stats, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/facilities/{id}/stats", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetStats)
		routerGroup.Post("/reconcile", handler.ReconcileStats)
	})
}

// GetStats retrieves the capacity ledger record of a facility.
// @Summary Get facility stats
// @Description Retrieve the stored capacity record. Available counters here are advisory; the dashboard derives live ones.
// @Tags Stats
// @Accept json
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} response.Data[dto.FacilityStatsResponse] "Facility stats"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id}/stats [get]
// @Security BearerAuth
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	stats, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get facility stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Facility stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}

// ReconcileStats rebuilds the capacity record from the booking ledger.
// @Summary Reconcile facility stats
// @Description Rebuild the capacity record wholesale from bookings whose stored status is Active.
// @Tags Stats
// @Accept json
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} response.Data[dto.FacilityStatsResponse] "Reconciled facility stats"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/facilities/{id}/stats/reconcile [post]
// @Security BearerAuth
func (handler *Handler) ReconcileStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReconcileStats")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	stats, err := handler.service.Reconcile(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile facility stats")

		response.WithError(w, err)

		return
	}

	operator, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Facility stats reconciled successfully by " + operator)

	response.WithJSON(w, http.StatusOK, stats)
}
