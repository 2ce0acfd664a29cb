package fdc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/nutrifactor/backend/internal/domain"
)

func newTestClient(baseURL string) *Client {
	client := NewClient("test-api-key", baseURL, zerolog.Nop())
	// No throttling in tests.
	client.rateLimiter = rate.NewLimiter(rate.Inf, 1)
	return client
}

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://api.example.com", zerolog.Nop())

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://api.example.com", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
}

func TestSearchFoods_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/foods/search", r.URL.Path)
		assert.Equal(t, "banana", r.URL.Query().Get("query"))
		assert.Equal(t, "test-api-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "2", r.URL.Query().Get("pageNumber"))

		response := map[string]interface{}{
			"foods": []map[string]interface{}{
				{"fdcId": 1102653, "description": "Banana, raw"},
			},
			"totalHits": 120,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.SearchFoods(context.Background(), "banana", 2)

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, int64(1102653), result.Records[0].FdcID)
	assert.Equal(t, "Banana, raw", result.Records[0].Description)
	assert.Equal(t, 120, result.TotalCount)
}

func TestFetchFood_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/food/1102653", r.URL.Path)

		response := map[string]interface{}{
			"fdcId":       1102653,
			"description": "Banana, raw",
			"foodNutrients": []map[string]interface{}{
				{
					"nutrient": map[string]interface{}{"id": 1003, "name": "Protein", "unitName": "g"},
					"amount":   1.09,
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	record, err := client.FetchFood(context.Background(), 1102653)

	require.NoError(t, err)
	assert.Equal(t, int64(1102653), record.FdcID)
	assert.Equal(t, "Banana, raw", record.Description)
	require.Len(t, record.FoodNutrients, 1)
	require.NotNil(t, record.FoodNutrients[0].Nutrient)
	assert.Equal(t, "Protein", record.FoodNutrients[0].Nutrient.Name)
}

func TestFetchFood_NotFoundDoesNotRetry(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchFood(context.Background(), 999)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFoodNotFound)
	assert.Equal(t, 1, requests)
}

func TestGetWithRetry_RecoversFromTransientFailure(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"fdcId": 100, "description": "Banana"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	record, err := client.FetchFood(context.Background(), 100)

	require.NoError(t, err)
	assert.Equal(t, "Banana", record.Description)
	assert.Equal(t, 3, requests)
}

func TestGetWithRetry_ExhaustsAttempts(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchFood(context.Background(), 100)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLookupFailure)
	assert.Equal(t, maxAttempts, requests)
}

func TestGetWithRetry_ContextCancellationIsTerminal(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := newTestClient(server.URL)
	_, err := client.FetchFood(ctx, 100)

	// Close waits for the in-flight handler, so the counter read is safe.
	server.Close()

	require.Error(t, err)
	assert.Equal(t, 1, requests)
}

func TestSearchFoods_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.SearchFoods(context.Background(), "banana", 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
