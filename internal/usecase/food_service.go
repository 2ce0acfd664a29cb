package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/segmentio/ksuid"

	"github.com/nutrifactor/backend/internal/domain"
)

// FoodService handles food catalog concerns: searching the composition API,
// resolving records through the boundary cache, and the lifecycle of custom
// foods and favorite marks.
type FoodService struct {
	client domain.FoodDataClient
	cache  domain.FoodCache
	store  domain.Store
}

// NewFoodService creates a food service with its dependencies.
func NewFoodService(client domain.FoodDataClient, cache domain.FoodCache, store domain.Store) *FoodService {
	return &FoodService{
		client: client,
		cache:  cache,
		store:  store,
	}
}

// Search queries the composition API and persists the result set as the
// user's last search snapshot. A failed snapshot save does not fail the
// search; the in-memory result is already consistent.
func (s *FoodService) Search(ctx context.Context, userID, query string, page int) (*domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}
	if page < 1 {
		page = 1
	}

	result, err := s.client.SearchFoods(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailure, err)
	}

	snap := domain.SearchSnapshot{
		Query:      query,
		Records:    result.Records,
		TotalCount: result.TotalCount,
	}
	_ = s.store.SaveSearchSnapshot(ctx, userID, snap)

	for i := range result.Records {
		record := result.Records[i]
		s.cache.Put(record.FdcID, &record)
	}
	return result, nil
}

// Resolve returns the food record for an external id, from the cache when
// possible, fetching from the API otherwise.
func (s *FoodService) Resolve(ctx context.Context, fdcID int64) (*domain.RawFoodRecord, error) {
	if fdcID == 0 {
		return nil, domain.ErrInvalidRequest
	}
	if record, ok := s.cache.Get(fdcID); ok {
		return record, nil
	}
	record, err := s.client.FetchFood(ctx, fdcID)
	if err != nil {
		return nil, err
	}
	s.cache.Put(fdcID, record)
	return record, nil
}

// CreateCustomFood assigns a fresh identity and persists a user-authored
// food.
func (s *FoodService) CreateCustomFood(ctx context.Context, food domain.CustomFood) (domain.CustomFood, error) {
	if food.UserID == "" || food.Name == "" {
		return domain.CustomFood{}, domain.ErrInvalidRequest
	}
	food.ID = ksuid.New().String()
	if err := s.store.SaveCustomFood(ctx, food); err != nil {
		return domain.CustomFood{}, err
	}
	return food, nil
}

// GetCustomFood looks up one custom food by id.
func (s *FoodService) GetCustomFood(ctx context.Context, userID, foodID string) (*domain.CustomFood, error) {
	return s.store.GetCustomFood(ctx, userID, foodID)
}

// ListCustomFoods lists all of the user's custom foods.
func (s *FoodService) ListCustomFoods(ctx context.Context, userID string) ([]domain.CustomFood, error) {
	return s.store.ListCustomFoods(ctx, userID)
}

// DeleteCustomFood removes a custom food and cascades: its favorite mark is
// deleted and every log item referencing it is removed from the log.
func (s *FoodService) DeleteCustomFood(ctx context.Context, userID, foodID string) error {
	if err := s.store.DeleteCustomFood(ctx, userID, foodID); err != nil {
		return err
	}
	if err := s.store.DeleteFavorite(ctx, domain.FavoriteMark{UserID: userID, CustomFoodID: foodID}); err != nil {
		return err
	}

	items, err := s.store.LoadLog(ctx, userID)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if item.CustomFoodID != foodID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return s.store.ReplaceLog(ctx, userID, kept)
}

// SetFavorite adds or removes a favorite mark. The mark must reference
// exactly one of an external food or a custom food.
func (s *FoodService) SetFavorite(ctx context.Context, mark domain.FavoriteMark, favorited bool) error {
	external := mark.ExternalFoodID != 0
	custom := mark.CustomFoodID != ""
	if external == custom {
		if external {
			return domain.ErrConflictingSource
		}
		return domain.ErrInvalidRequest
	}
	if favorited {
		return s.store.PutFavorite(ctx, mark)
	}
	return s.store.DeleteFavorite(ctx, mark)
}

// ListFavorites lists the user's favorite marks.
func (s *FoodService) ListFavorites(ctx context.Context, userID string) ([]domain.FavoriteMark, error) {
	return s.store.ListFavorites(ctx, userID)
}
