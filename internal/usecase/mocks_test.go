package usecase

import (
	"context"

	"github.com/nutrifactor/backend/internal/domain"
)

// MockFoodDataClient is a mock implementation of domain.FoodDataClient
type MockFoodDataClient struct {
	searchResult *domain.SearchResult
	searchError  error
	fetchResult  *domain.RawFoodRecord
	fetchError   error
	searchCalled bool
	fetchCalled  bool
}

func NewMockFoodDataClient() *MockFoodDataClient {
	return &MockFoodDataClient{}
}

func (m *MockFoodDataClient) SearchFoods(ctx context.Context, query string, page int) (*domain.SearchResult, error) {
	m.searchCalled = true
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.searchResult, nil
}

func (m *MockFoodDataClient) FetchFood(ctx context.Context, fdcID int64) (*domain.RawFoodRecord, error) {
	m.fetchCalled = true
	if m.fetchError != nil {
		return nil, m.fetchError
	}
	return m.fetchResult, nil
}

// MockFoodCache is a mock implementation of domain.FoodCache
type MockFoodCache struct {
	data      map[int64]*domain.RawFoodRecord
	getCalled bool
	putCalled bool
}

func NewMockFoodCache() *MockFoodCache {
	return &MockFoodCache{data: make(map[int64]*domain.RawFoodRecord)}
}

func (m *MockFoodCache) Get(fdcID int64) (*domain.RawFoodRecord, bool) {
	m.getCalled = true
	record, ok := m.data[fdcID]
	return record, ok
}

func (m *MockFoodCache) Put(fdcID int64, record *domain.RawFoodRecord) {
	m.putCalled = true
	m.data[fdcID] = record
}

func (m *MockFoodCache) Has(fdcID int64) bool {
	_, ok := m.data[fdcID]
	return ok
}

// MockStore is an in-memory mock implementation of domain.Store
type MockStore struct {
	logs        map[string][]domain.LogItem
	customFoods map[string]domain.CustomFood
	favorites   []domain.FavoriteMark
	profiles    map[string]domain.Profile
	credentials map[string]string
	snapshots   map[string]domain.SearchSnapshot
	drafts      map[string]string

	loadLogError    error
	replaceLogError error
	snapshotError   error

	replaceLogCalls int
}

func NewMockStore() *MockStore {
	return &MockStore{
		logs:        make(map[string][]domain.LogItem),
		customFoods: make(map[string]domain.CustomFood),
		profiles:    make(map[string]domain.Profile),
		credentials: make(map[string]string),
		snapshots:   make(map[string]domain.SearchSnapshot),
		drafts:      make(map[string]string),
	}
}

func foodKey(userID, foodID string) string {
	return userID + "/" + foodID
}

func (m *MockStore) LoadLog(ctx context.Context, userID string) ([]domain.LogItem, error) {
	if m.loadLogError != nil {
		return nil, m.loadLogError
	}
	items := make([]domain.LogItem, len(m.logs[userID]))
	copy(items, m.logs[userID])
	return items, nil
}

func (m *MockStore) ReplaceLog(ctx context.Context, userID string, items []domain.LogItem) error {
	m.replaceLogCalls++
	if m.replaceLogError != nil {
		return m.replaceLogError
	}
	stored := make([]domain.LogItem, len(items))
	copy(stored, items)
	m.logs[userID] = stored
	return nil
}

func (m *MockStore) SaveCustomFood(ctx context.Context, food domain.CustomFood) error {
	m.customFoods[foodKey(food.UserID, food.ID)] = food
	return nil
}

func (m *MockStore) GetCustomFood(ctx context.Context, userID, foodID string) (*domain.CustomFood, error) {
	food, ok := m.customFoods[foodKey(userID, foodID)]
	if !ok {
		return nil, domain.ErrCustomFoodNotFound
	}
	return &food, nil
}

func (m *MockStore) ListCustomFoods(ctx context.Context, userID string) ([]domain.CustomFood, error) {
	var foods []domain.CustomFood
	for _, food := range m.customFoods {
		if food.UserID == userID {
			foods = append(foods, food)
		}
	}
	return foods, nil
}

func (m *MockStore) DeleteCustomFood(ctx context.Context, userID, foodID string) error {
	delete(m.customFoods, foodKey(userID, foodID))
	return nil
}

func (m *MockStore) PutFavorite(ctx context.Context, mark domain.FavoriteMark) error {
	for _, existing := range m.favorites {
		if existing == mark {
			return nil
		}
	}
	m.favorites = append(m.favorites, mark)
	return nil
}

func (m *MockStore) DeleteFavorite(ctx context.Context, mark domain.FavoriteMark) error {
	kept := m.favorites[:0]
	for _, existing := range m.favorites {
		if existing != mark {
			kept = append(kept, existing)
		}
	}
	m.favorites = kept
	return nil
}

func (m *MockStore) ListFavorites(ctx context.Context, userID string) ([]domain.FavoriteMark, error) {
	var marks []domain.FavoriteMark
	for _, mark := range m.favorites {
		if mark.UserID == userID {
			marks = append(marks, mark)
		}
	}
	return marks, nil
}

func (m *MockStore) SaveProfile(ctx context.Context, profile domain.Profile) error {
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *MockStore) LoadProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (m *MockStore) SaveCredential(ctx context.Context, userID, apiKey string) error {
	m.credentials[userID] = apiKey
	return nil
}

func (m *MockStore) LoadCredential(ctx context.Context, userID string) (string, error) {
	return m.credentials[userID], nil
}

func (m *MockStore) SaveSearchSnapshot(ctx context.Context, userID string, snap domain.SearchSnapshot) error {
	if m.snapshotError != nil {
		return m.snapshotError
	}
	m.snapshots[userID] = snap
	return nil
}

func (m *MockStore) LoadSearchSnapshot(ctx context.Context, userID string) (*domain.SearchSnapshot, error) {
	snap, ok := m.snapshots[userID]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (m *MockStore) SaveDraft(ctx context.Context, userID, draft string) error {
	m.drafts[userID] = draft
	return nil
}

func (m *MockStore) LoadDraft(ctx context.Context, userID string) (string, error) {
	return m.drafts[userID], nil
}
