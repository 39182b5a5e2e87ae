package aggregator

import (
	"context"
	"parkspot/config"
	"parkspot/internal/domains/dashboard/service"
	facilityModel "parkspot/internal/domains/facility/model"
	facilityRepo "parkspot/internal/domains/facility/repository"
	gDto "parkspot/shared/dto"
	"time"

	"github.com/rs/zerolog/log"
)

// Aggregator keeps every active facility's dashboard snapshot warm by
// recomputing it on a fixed interval. Each cycle is stateless and the last
// write wins; dropping a cycle only leaves a snapshot a tick staler.
type Aggregator struct {
	dashboard    service.Dashboard
	facilityRepo facilityRepo.Facility
	interval     time.Duration
}

func New(dashboard service.Dashboard, facilityRepo facilityRepo.Facility, cfg *config.Config) *Aggregator {
	return &Aggregator{
		dashboard:    dashboard,
		facilityRepo: facilityRepo,
		interval:     time.Duration(cfg.Dashboard.RefreshIntervalSeconds) * time.Second,
	}
}

// Start blocks until the context is cancelled.
func (a *Aggregator) Start(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", a.interval).Msg("dashboard aggregator started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("dashboard aggregator stopped")

			return
		case <-ticker.C:
			a.RefreshAll(ctx)
		}
	}
}

// RefreshAll runs one refresh cycle over every active facility. A facility
// whose snapshot fails is logged and skipped; the cycle keeps going.
func (a *Aggregator) RefreshAll(ctx context.Context) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    facilityModel.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    facilityModel.TableName,
			},
		},
	}

	facilities, err := a.facilityRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("aggregator failed to list facilities")

		return
	}

	for _, facility := range facilities {
		if ctx.Err() != nil {
			return
		}

		if err := a.dashboard.SnapshotFacility(ctx, facility.ID); err != nil {
			log.Error().Err(err).Str("facilityID", facility.ID).Msg("aggregator failed to refresh snapshot")
		}
	}
}
