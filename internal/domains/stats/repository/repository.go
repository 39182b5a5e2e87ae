package repository

import (
	"context"
	"parkspot/infras/otel"
	"parkspot/infras/postgres"
	"parkspot/internal/domains/stats/model"
	gDto "parkspot/shared/dto"
	gRepo "parkspot/shared/repository"
)

type Stats interface {
	Insert(ctx context.Context, model model.FacilityStats) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.FacilityStats, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.FacilityStats]
}

func New(db *postgres.Connection, otel otel.Otel) Stats {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.FacilityStats](model.EntityName, model.TableName, model.FieldFacilityID, db, otel),
	}
}
