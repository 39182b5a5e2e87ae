package service

import (
	"context"
	b64 "encoding/base64"
	"fmt"
	"parkspot/config"
	"parkspot/infras/otel"
	"parkspot/infras/s3"
	"parkspot/internal/domains/facility/model"
	"parkspot/internal/domains/facility/model/dto"
	"parkspot/internal/domains/facility/repository"
	"parkspot/internal/integrations/geocoding"
	"parkspot/shared"
	"parkspot/shared/base64"
	"parkspot/shared/cache"
	"parkspot/shared/constant"
	gDto "parkspot/shared/dto"
	"parkspot/shared/failure"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetFacility  = "facility:get"
	cacheGetFacilites = "facility:gets"
)

type Facility interface {
	Register(ctx context.Context, req dto.RegisterFacilityRequest) (dto.FacilityResponse, error)
	Get(ctx context.Context, id string) (dto.FacilityResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetFacilitiesResponse, error)
	GetMine(ctx context.Context) (dto.FacilityResponse, error)
	Update(ctx context.Context, req dto.UpdateFacilityRequest, id string) error
	Search(ctx context.Context, query string, params gDto.QueryParams) (dto.SearchFacilitiesResponse, error)
}

type serviceImpl struct {
	repo     repository.Facility
	geocoder geocoding.Geocoder
	cfg      *config.Config
	cache    cache.RedisCache
	s3       s3.S3
	otel     otel.Otel
}

func New(repo repository.Facility, geocoder geocoding.Geocoder, cfg *config.Config, cache cache.RedisCache, s3 s3.S3, otel otel.Otel) Facility {
	return &serviceImpl{
		repo:     repo,
		geocoder: geocoder,
		cfg:      cfg,
		cache:    cache,
		s3:       s3,
		otel:     otel,
	}
}

// Register creates a facility owned by the requesting operator. The photo, if
// present, is a base64 data URI uploaded to S3 before the record is written.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterFacilityRequest) (res dto.FacilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	photoURL := constant.Empty

	if req.Photo != constant.Empty {
		photoURL, err = s.uploadPhoto(ctx, req.Photo)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload facility photo")

			return res, fmt.Errorf("failed to upload facility photo: %w", err)
		}
	}

	facility := req.ToModel(user, email, photoURL)

	if err = s.repo.Insert(ctx, facility); err != nil {
		log.Error().Err(err).Msg("failed to register facility")

		return res, fmt.Errorf("failed to register facility: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetFacilites)
	}()

	res.FromModel(facility)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FacilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetFacility, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for facility")

		return res, nil
	}

	facility, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility")

		return res, fmt.Errorf("failed to get facility: %w", err)
	}

	if facility.ID == constant.Empty {
		return res, failure.NotFound("facility not found") // nolint:wrapcheck
	}

	res.FromModel(facility)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save facility to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetFacilitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := activeFilter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetFacilites, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for facilities")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count facilities")

		return res, fmt.Errorf("failed to count facilities: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get facilities")

		return res, fmt.Errorf("failed to get facilities: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save facilities to cache")
		}
	}()

	return res, nil
}

// GetMine resolves the facility operated by the requesting user.
func (s *serviceImpl) GetMine(ctx context.Context) (res dto.FacilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	facility, err := s.repo.Get(ctx, shared.FilterByID(user, model.FieldOwnerID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get operated facility")

		return res, fmt.Errorf("failed to get operated facility: %w", err)
	}

	if facility.ID == constant.Empty {
		return res, failure.NotFound("facility not found") // nolint:wrapcheck
	}

	res.FromModel(facility)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateFacilityRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	facility, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility")

		return fmt.Errorf("failed to get facility: %w", err)
	}

	if facility.ID == constant.Empty || facility.OwnerID != user {
		return failure.NotFound("facility not found") // nolint:wrapcheck
	}

	oldPhoto := constant.Empty
	photoRequest := req.Photo
	req.Photo = constant.Empty

	updatedFields := shared.TransformFields(req, user)

	if photoRequest != constant.Empty {
		photoURL, err := s.uploadPhoto(ctx, photoRequest)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload facility photo")

			return fmt.Errorf("failed to upload facility photo: %w", err)
		}

		updatedFields[model.FieldPhoto] = photoURL
		oldPhoto = facility.Photo
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update facility")

		return fmt.Errorf("failed to update facility: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetFacility, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete facility from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetFacilites)

		if oldPhoto != constant.Empty {
			bucketName := s.cfg.External.S3.BucketName

			objectName := s.s3.GetObjectNameFromURL(bucketName, oldPhoto)
			if objectName == constant.Empty {
				return
			}

			if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
				log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete old facility photo")
			}
		}
	}()

	return nil
}

// Search seeds a map center from the geocoding collaborator and returns
// active facilities. Geocoding failure fails the search, nothing else.
func (s *serviceImpl) Search(ctx context.Context, query string, params gDto.QueryParams) (res dto.SearchFacilitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	if strings.TrimSpace(query) == constant.Empty {
		return res, failure.BadRequestFromString("search query is required") // nolint:wrapcheck
	}

	center, err := s.geocoder.Resolve(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("failed to resolve search location")

		return res, failure.BadRequestFromString("could not resolve search location") // nolint:wrapcheck
	}

	models, err := s.repo.GetAll(ctx, params, activeFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to get facilities")

		return res, fmt.Errorf("failed to get facilities: %w", err)
	}

	res.Center = dto.Coordinates{Latitude: center.Latitude, Longitude: center.Longitude}

	res.Facilities = make([]dto.FacilityResponse, len(models))
	for i, mod := range models {
		res.Facilities[i].FromModel(mod)
	}

	return res, nil
}

func (s *serviceImpl) uploadPhoto(ctx context.Context, dataURI string) (string, error) {
	contentType := base64.GetContentType(dataURI)
	payload := base64.StripDataURI(dataURI)

	data, err := b64.StdEncoding.DecodeString(payload)
	if err != nil {
		return constant.Empty, failure.BadRequestFromString("invalid photo encoding") // nolint:wrapcheck
	}

	fileName := uuid.NewString()

	url, err := s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, model.EntityName, fileName, contentType, data)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload photo: %w", err)
	}

	return url, nil
}

func activeFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}
}
