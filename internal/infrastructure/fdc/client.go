package fdc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/nutrifactor/backend/internal/domain"
)

const (
	// maxAttempts is one initial try plus two retries with a fixed delay.
	maxAttempts = 3
	retryDelay  = 500 * time.Millisecond

	defaultPageSize = 25
)

// Client talks to a FoodData Central style composition API.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	log         zerolog.Logger
}

// NewClient creates a food composition API client. The API allows 1000
// requests per hour, so the limiter runs at 1000/3600 ≈ 0.278 req/s with a
// small burst.
func NewClient(apiKey, baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(0.278), 10),
		log:         logger.With().Str("component", "fdc").Logger(),
	}
}

// SearchFoods searches the composition database, returning one page of raw
// records plus the total hit count.
func (c *Client) SearchFoods(ctx context.Context, query string, page int) (*domain.SearchResult, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Add("query", query)
	params.Add("api_key", c.apiKey)
	params.Add("dataType", "Survey (FNDDS),Foundation,Branded")
	params.Add("pageSize", strconv.Itoa(defaultPageSize))
	params.Add("pageNumber", strconv.Itoa(page))
	reqURL := fmt.Sprintf("%s/v1/foods/search?%s", c.baseURL, params.Encode())

	body, err := c.getWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var result domain.SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	c.log.Debug().Str("query", query).Int("hits", result.TotalCount).Msg("search completed")
	return &result, nil
}

// FetchFood retrieves one raw record by its external id.
func (c *Client) FetchFood(ctx context.Context, fdcID int64) (*domain.RawFoodRecord, error) {
	params := url.Values{}
	params.Add("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s/v1/food/%d?%s", c.baseURL, fdcID, params.Encode())

	body, err := c.getWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var record domain.RawFoodRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("failed to decode food response: %w", err)
	}
	return &record, nil
}

// getWithRetry executes a GET with the fixed retry policy: up to two extra
// attempts after a transient failure, with a fixed delay between them. A
// context timeout or cancellation is terminal and ends the attempt cycle at
// once; a 404 maps to ErrFoodNotFound without retrying.
func (c *Client) getWithRetry(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		body, err := c.get(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		if errors.Is(err, domain.ErrFoodNotFound) || ctx.Err() != nil ||
			errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}

		c.log.Warn().Err(err).Int("attempt", attempt).Msg("request failed")
		lastErr = err
		if attempt < maxAttempts {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "nutrifactor/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailure, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrFoodNotFound
	default:
		return nil, fmt.Errorf("%w: status %d", domain.ErrLookupFailure, resp.StatusCode)
	}
}
