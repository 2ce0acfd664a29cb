package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/nutrifactor/backend/internal/domain"
)

func TestFoodService_Search(t *testing.T) {
	t.Run("returns results and caches each record", func(t *testing.T) {
		client := NewMockFoodDataClient()
		client.searchResult = &domain.SearchResult{
			Records: []domain.RawFoodRecord{
				{FdcID: 100, Description: "Banana"},
				{FdcID: 200, Description: "Banana Bread"},
			},
			TotalCount: 2,
		}
		cache := NewMockFoodCache()
		store := NewMockStore()
		service := NewFoodService(client, cache, store)

		result, err := service.Search(context.Background(), "u1", "banana", 1)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(result.Records) != 2 {
			t.Errorf("len(Records) = %d, want 2", len(result.Records))
		}
		if !cache.Has(100) || !cache.Has(200) {
			t.Error("search results were not cached")
		}
	})

	t.Run("persists the search snapshot", func(t *testing.T) {
		client := NewMockFoodDataClient()
		client.searchResult = &domain.SearchResult{
			Records:    []domain.RawFoodRecord{{FdcID: 100, Description: "Banana"}},
			TotalCount: 41,
		}
		store := NewMockStore()
		service := NewFoodService(client, NewMockFoodCache(), store)

		if _, err := service.Search(context.Background(), "u1", "  banana  ", 1); err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		snap, ok := store.snapshots["u1"]
		if !ok {
			t.Fatal("snapshot was not saved")
		}
		if snap.Query != "banana" {
			t.Errorf("snapshot query = %q, want banana", snap.Query)
		}
		if snap.TotalCount != 41 {
			t.Errorf("snapshot total = %d, want 41", snap.TotalCount)
		}
	})

	t.Run("rejects blank query", func(t *testing.T) {
		client := NewMockFoodDataClient()
		service := NewFoodService(client, NewMockFoodCache(), NewMockStore())

		_, err := service.Search(context.Background(), "u1", "   ", 1)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
		if client.searchCalled {
			t.Error("client was called for a blank query")
		}
	})

	t.Run("wraps client failure as lookup failure", func(t *testing.T) {
		client := NewMockFoodDataClient()
		client.searchError = errors.New("connection refused")
		service := NewFoodService(client, NewMockFoodCache(), NewMockStore())

		_, err := service.Search(context.Background(), "u1", "banana", 1)
		if !errors.Is(err, domain.ErrLookupFailure) {
			t.Errorf("error = %v, want ErrLookupFailure", err)
		}
	})

	t.Run("snapshot save failure does not fail the search", func(t *testing.T) {
		client := NewMockFoodDataClient()
		client.searchResult = &domain.SearchResult{
			Records: []domain.RawFoodRecord{{FdcID: 100}},
		}
		store := NewMockStore()
		store.snapshotError = errors.New("disk full")
		service := NewFoodService(client, NewMockFoodCache(), store)

		if _, err := service.Search(context.Background(), "u1", "banana", 1); err != nil {
			t.Errorf("Search() error = %v, want nil", err)
		}
	})
}

func TestFoodService_Resolve(t *testing.T) {
	t.Run("cache hit skips the client", func(t *testing.T) {
		client := NewMockFoodDataClient()
		cache := NewMockFoodCache()
		cache.Put(100, &domain.RawFoodRecord{FdcID: 100, Description: "Banana"})
		service := NewFoodService(client, cache, NewMockStore())

		record, err := service.Resolve(context.Background(), 100)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if record.Description != "Banana" {
			t.Errorf("Description = %q, want Banana", record.Description)
		}
		if client.fetchCalled {
			t.Error("client was called on a cache hit")
		}
	})

	t.Run("cache miss fetches and populates cache", func(t *testing.T) {
		client := NewMockFoodDataClient()
		client.fetchResult = &domain.RawFoodRecord{FdcID: 100, Description: "Banana"}
		cache := NewMockFoodCache()
		service := NewFoodService(client, cache, NewMockStore())

		record, err := service.Resolve(context.Background(), 100)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if record.FdcID != 100 {
			t.Errorf("FdcID = %d, want 100", record.FdcID)
		}
		if !cache.Has(100) {
			t.Error("fetched record was not cached")
		}
	})

	t.Run("rejects zero id", func(t *testing.T) {
		service := NewFoodService(NewMockFoodDataClient(), NewMockFoodCache(), NewMockStore())
		if _, err := service.Resolve(context.Background(), 0); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("fetch error is passed through", func(t *testing.T) {
		client := NewMockFoodDataClient()
		client.fetchError = domain.ErrFoodNotFound
		service := NewFoodService(client, NewMockFoodCache(), NewMockStore())

		if _, err := service.Resolve(context.Background(), 999); !errors.Is(err, domain.ErrFoodNotFound) {
			t.Errorf("error = %v, want ErrFoodNotFound", err)
		}
	})
}

func TestFoodService_CreateCustomFood(t *testing.T) {
	store := NewMockStore()
	service := NewFoodService(NewMockFoodDataClient(), NewMockFoodCache(), store)

	food, err := service.CreateCustomFood(context.Background(), domain.CustomFood{
		UserID:       "u1",
		Name:         "Protein Bar",
		AmountGrams:  60,
		CaloriesKcal: 220,
		ProteinG:     20,
	})
	if err != nil {
		t.Fatalf("CreateCustomFood() error = %v", err)
	}
	if food.ID == "" {
		t.Error("food was not assigned an id")
	}
	if _, err := service.GetCustomFood(context.Background(), "u1", food.ID); err != nil {
		t.Errorf("GetCustomFood() error = %v", err)
	}
}

func TestFoodService_CreateCustomFood_Invalid(t *testing.T) {
	service := NewFoodService(NewMockFoodDataClient(), NewMockFoodCache(), NewMockStore())

	_, err := service.CreateCustomFood(context.Background(), domain.CustomFood{UserID: "u1"})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("error = %v, want ErrInvalidRequest", err)
	}
}

func TestFoodService_DeleteCustomFood_Cascades(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()
	service := NewFoodService(NewMockFoodDataClient(), NewMockFoodCache(), store)

	food, err := service.CreateCustomFood(ctx, domain.CustomFood{
		UserID: "u1", Name: "Protein Bar", AmountGrams: 60, CaloriesKcal: 220, ProteinG: 20,
	})
	if err != nil {
		t.Fatalf("CreateCustomFood() error = %v", err)
	}
	if err := service.SetFavorite(ctx, domain.FavoriteMark{UserID: "u1", CustomFoodID: food.ID}, true); err != nil {
		t.Fatalf("SetFavorite() error = %v", err)
	}
	store.logs["u1"] = []domain.LogItem{
		{ID: "keep", Name: "Banana", ExternalFoodID: 100, ServingGrams: 118},
		{ID: "drop", Name: food.Name, CustomFoodID: food.ID, ServingGrams: 60},
	}

	if err := service.DeleteCustomFood(ctx, "u1", food.ID); err != nil {
		t.Fatalf("DeleteCustomFood() error = %v", err)
	}

	if _, err := service.GetCustomFood(ctx, "u1", food.ID); !errors.Is(err, domain.ErrCustomFoodNotFound) {
		t.Errorf("food still present: error = %v", err)
	}
	marks, _ := service.ListFavorites(ctx, "u1")
	if len(marks) != 0 {
		t.Errorf("favorite mark survived the delete: %v", marks)
	}
	items := store.logs["u1"]
	if len(items) != 1 || items[0].ID != "keep" {
		t.Errorf("log after cascade = %v, want only the external item", items)
	}
}

func TestFoodService_DeleteCustomFood_NoLogRewriteWithoutReferences(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()
	service := NewFoodService(NewMockFoodDataClient(), NewMockFoodCache(), store)

	food, err := service.CreateCustomFood(ctx, domain.CustomFood{UserID: "u1", Name: "Protein Bar"})
	if err != nil {
		t.Fatalf("CreateCustomFood() error = %v", err)
	}
	store.logs["u1"] = []domain.LogItem{{ID: "keep", ExternalFoodID: 100}}
	store.replaceLogCalls = 0

	if err := service.DeleteCustomFood(ctx, "u1", food.ID); err != nil {
		t.Fatalf("DeleteCustomFood() error = %v", err)
	}
	if store.replaceLogCalls != 0 {
		t.Errorf("log was rewritten %d times, want 0", store.replaceLogCalls)
	}
}

func TestFoodService_SetFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("external mark round trip", func(t *testing.T) {
		store := NewMockStore()
		service := NewFoodService(NewMockFoodDataClient(), NewMockFoodCache(), store)
		mark := domain.FavoriteMark{UserID: "u1", ExternalFoodID: 100}

		if err := service.SetFavorite(ctx, mark, true); err != nil {
			t.Fatalf("SetFavorite(true) error = %v", err)
		}
		marks, _ := service.ListFavorites(ctx, "u1")
		if len(marks) != 1 {
			t.Fatalf("len(marks) = %d, want 1", len(marks))
		}
		if err := service.SetFavorite(ctx, mark, false); err != nil {
			t.Fatalf("SetFavorite(false) error = %v", err)
		}
		marks, _ = service.ListFavorites(ctx, "u1")
		if len(marks) != 0 {
			t.Errorf("len(marks) = %d, want 0", len(marks))
		}
	})

	t.Run("both references conflict", func(t *testing.T) {
		service := NewFoodService(NewMockFoodDataClient(), NewMockFoodCache(), NewMockStore())
		mark := domain.FavoriteMark{UserID: "u1", ExternalFoodID: 100, CustomFoodID: "cf1"}
		if err := service.SetFavorite(ctx, mark, true); !errors.Is(err, domain.ErrConflictingSource) {
			t.Errorf("error = %v, want ErrConflictingSource", err)
		}
	})

	t.Run("no reference is invalid", func(t *testing.T) {
		service := NewFoodService(NewMockFoodDataClient(), NewMockFoodCache(), NewMockStore())
		mark := domain.FavoriteMark{UserID: "u1"}
		if err := service.SetFavorite(ctx, mark, true); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})
}
