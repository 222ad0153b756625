package refdata

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/refdata/backend/internal/domain/refdata"
	"github.com/refdata/backend/internal/domain/shared"
)

// ListCache caches list responses. Implementations are best effort;
// a miss or failure simply falls through to the database.
type ListCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
	InvalidatePrefix(ctx context.Context, prefix string)
}

// cachedCityList is the cache payload for a city listing
type cachedCityList struct {
	Items []CityResponse `json:"items"`
	Total int64          `json:"total"`
}

// CityService handles the shared city directory. Reads are open to any
// authenticated caller; writes are restricted to superadmins.
type CityService struct {
	cityRepo refdata.CityRepository
	cache    ListCache
}

// NewCityService creates a new CityService. cache may be nil.
func NewCityService(cityRepo refdata.CityRepository, cache ListCache) *CityService {
	return &CityService{cityRepo: cityRepo, cache: cache}
}

// Create adds a city to the directory
func (s *CityService) Create(ctx context.Context, caller shared.Caller, req CreateCityRequest) (*CityResponse, error) {
	if err := refdata.RequireSuperadmin(caller); err != nil {
		return nil, err
	}

	city, err := refdata.NewCity(req.Name, req.Region, req.Code, req.ExternalID, req.Timezone)
	if err != nil {
		return nil, err
	}

	if err := s.cityRepo.Save(ctx, city); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	response := ToCityResponse(city)
	return &response, nil
}

// GetByID retrieves a city by ID
func (s *CityService) GetByID(ctx context.Context, id uuid.UUID) (*CityResponse, error) {
	city, err := s.cityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToCityResponse(city)
	return &response, nil
}

// List retrieves cities with filtering and pagination
func (s *CityService) List(ctx context.Context, filter CityListFilter) ([]CityResponse, int64, error) {
	query, err := shared.NewListQuery(filter.Page, filter.PageSize, filter.SortBy, filter.Order, refdata.CitySortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	query = query.WithContains("name", filter.Name)
	query = query.WithContains("region", filter.Region)
	query = query.WithContains("code", filter.Code)
	query = query.WithContains("external_id", filter.ExternalID)

	cacheKey := fmt.Sprintf("cities:%d:%d:%s:%s:%s:%s:%s:%s",
		query.Page, query.PageSize, query.SortBy, query.Order,
		filter.Name, filter.Region, filter.Code, filter.ExternalID)
	if s.cache != nil {
		var cached cachedCityList
		if s.cache.Get(ctx, cacheKey, &cached) {
			return cached.Items, cached.Total, nil
		}
	}

	cities, err := s.cityRepo.FindAll(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.cityRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	responses := ToCityResponses(cities)
	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, cachedCityList{Items: responses, Total: total})
	}
	return responses, total, nil
}

// Update applies a partial update to a city
func (s *CityService) Update(ctx context.Context, caller shared.Caller, id uuid.UUID, req UpdateCityRequest) (*CityResponse, error) {
	city, err := s.cityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := refdata.RequireSuperadmin(caller); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := city.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Region != nil {
		if *req.Region == "" {
			return nil, shared.NewValidationError("region cannot be empty")
		}
		city.Region = *req.Region
	}
	if req.Code != nil {
		city.Code = req.Code
	}
	if req.ExternalID != nil {
		city.ExternalID = req.ExternalID
	}
	if req.Timezone != nil {
		city.Timezone = *req.Timezone
	}

	if err := s.cityRepo.Save(ctx, city); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	response := ToCityResponse(city)
	return &response, nil
}

// Delete removes a city from the directory
func (s *CityService) Delete(ctx context.Context, caller shared.Caller, id uuid.UUID) error {
	if _, err := s.cityRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := refdata.RequireSuperadmin(caller); err != nil {
		return err
	}

	if err := s.cityRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *CityService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidatePrefix(ctx, "cities:")
	}
}
