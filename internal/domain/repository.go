package domain

import "context"

// FoodDataClient defines the interface for the food composition search API.
// Both calls are fallible: network and HTTP failures are surfaced to the
// caller, never swallowed.
type FoodDataClient interface {
	SearchFoods(ctx context.Context, query string, page int) (*SearchResult, error)
	FetchFood(ctx context.Context, fdcID int64) (*RawFoodRecord, error)
}

// FoodCache is the boundary-owned cache of fetched food records keyed by
// external id. The core never reaches into it; it only receives resolved
// records.
type FoodCache interface {
	Get(fdcID int64) (*RawFoodRecord, bool)
	Put(fdcID int64, record *RawFoodRecord)
	Has(fdcID int64) bool
}

// SearchSnapshot is the last search result set persisted for a user so the
// UI can restore it across sessions.
type SearchSnapshot struct {
	Query      string          `json:"query"`
	Records    []RawFoodRecord `json:"records"`
	TotalCount int             `json:"totalCount"`
}

// Store is the per-user persistence contract. All writes are idempotent
// upserts; the log is persisted by full replace (delete-all-then-insert), so
// callers hand over the complete current item list on every save.
type Store interface {
	LoadLog(ctx context.Context, userID string) ([]LogItem, error)
	ReplaceLog(ctx context.Context, userID string, items []LogItem) error

	SaveCustomFood(ctx context.Context, food CustomFood) error
	GetCustomFood(ctx context.Context, userID, foodID string) (*CustomFood, error)
	ListCustomFoods(ctx context.Context, userID string) ([]CustomFood, error)
	DeleteCustomFood(ctx context.Context, userID, foodID string) error

	PutFavorite(ctx context.Context, mark FavoriteMark) error
	DeleteFavorite(ctx context.Context, mark FavoriteMark) error
	ListFavorites(ctx context.Context, userID string) ([]FavoriteMark, error)

	SaveProfile(ctx context.Context, profile Profile) error
	LoadProfile(ctx context.Context, userID string) (*Profile, error)

	SaveCredential(ctx context.Context, userID, apiKey string) error
	LoadCredential(ctx context.Context, userID string) (string, error)

	SaveSearchSnapshot(ctx context.Context, userID string, snap SearchSnapshot) error
	LoadSearchSnapshot(ctx context.Context, userID string) (*SearchSnapshot, error)

	SaveDraft(ctx context.Context, userID, draft string) error
	LoadDraft(ctx context.Context, userID string) (string, error)
}
