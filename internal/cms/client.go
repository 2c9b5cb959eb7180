package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Strapi's default rate limit window tolerates a handful of requests
	// per second from a single client.
	rateLimit = 5
	rateBurst = 10

	maxRetries   = 3
	initialDelay = 1 * time.Second
	maxDelay     = 8 * time.Second
)

// Client talks to a Strapi-compatible CMS. Writes use the privileged service
// key; identity checks round-trip the caller's own token via Me.
type Client struct {
	baseURL     string
	serviceKey  string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:     baseURL,
		serviceKey:  serviceKey,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) ListRestaurants(ctx context.Context, q *Query) (*RestaurantListResponse, error) {
	var response RestaurantListResponse
	if err := c.get(ctx, "/api/restaurants", q, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch restaurants: %w", err)
	}
	return &response, nil
}

func (c *Client) ListAttributes(ctx context.Context, q *Query) (*AttributeListResponse, error) {
	var response AttributeListResponse
	if err := c.get(ctx, "/api/attributes", q, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch attributes: %w", err)
	}
	return &response, nil
}

func (c *Client) ListDishes(ctx context.Context, q *Query) (*DishListResponse, error) {
	var response DishListResponse
	if err := c.get(ctx, "/api/dishes", q, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch dishes: %w", err)
	}
	return &response, nil
}

func (c *Client) ListReviews(ctx context.Context, q *Query) (*ReviewListResponse, error) {
	var response ReviewListResponse
	if err := c.get(ctx, "/api/reviews", q, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return &response, nil
}

func (c *Client) ListReviewDetails(ctx context.Context, q *Query) (*ReviewDetailListResponse, error) {
	var response ReviewDetailListResponse
	if err := c.get(ctx, "/api/review-details", q, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch review details: %w", err)
	}
	return &response, nil
}

// Me validates a user token by round-tripping it to /api/users/me and returns
// the CMS identity it resolves to.
func (c *Client) Me(ctx context.Context, userToken string) (*User, error) {
	var user User
	if err := c.doRequest(ctx, http.MethodGet, "/api/users/me", nil, userToken, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) get(ctx context.Context, path string, q *Query, result interface{}) error {
	return c.doRequest(ctx, http.MethodGet, path, q, c.serviceKey, result)
}

// doRequest performs a rate-limited request with retries on 429 and 5xx.
func (c *Client) doRequest(ctx context.Context, method, path string, q *Query, token string, result interface{}) error {
	fullURL := c.baseURL + path
	if q != nil {
		if encoded := q.Encode(); encoded != "" {
			fullURL += "?" + encoded
		}
	}

	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				time.Sleep(delay)
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()

			if shouldRetry(resp.StatusCode) && attempt < maxRetries {
				lastErr = &UpstreamError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
				time.Sleep(delay)
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return &UpstreamError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
		}

		err = json.NewDecoder(resp.Body).Decode(result)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", maxRetries, lastErr)
}

func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
