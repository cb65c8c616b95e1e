package fleet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/redis/go-redis/v9"

	domainErrors "github.com/cripslk/dispatch/internal/domain/errors"
	"github.com/cripslk/dispatch/internal/domain/model"
)

// Client exposes operations to query the fleet service.
type Client interface {
	Driver(ctx context.Context, id string) (*model.Driver, error)
}

// HTTPClient implements Client via the fleet service HTTP API, with an
// optional Redis read-through cache for lookups.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger

	cache    *redis.Client
	cacheTTL time.Duration
}

// response mirrors JSON payload from the fleet service.
type response struct {
	DriverID  string `json:"driver_id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// NewHTTPClient creates HTTP fleet client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse fleet url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("fleet url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SetCache enables Redis caching of driver lookups. The client works
// without it; caching only trims repeated fleet round trips.
func (c *HTTPClient) SetCache(client *redis.Client, ttl time.Duration) {
	c.cache = client
	c.cacheTTL = ttl
}

// Driver resolves a driver by id. Unknown drivers map to
// ErrUnknownDriver; availability is reported as-is for the caller to
// judge.
func (c *HTTPClient) Driver(ctx context.Context, id string) (*model.Driver, error) {
	if driver := c.cached(ctx, id); driver != nil {
		return driver, nil
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/drivers/", id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusNoContent:
		return nil, domainErrors.ErrUnknownDriver
	default:
		return nil, fmt.Errorf("fleet service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload response
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode fleet response: %w", err)
	}
	if payload.DriverID == "" {
		payload.DriverID = id
	}

	driver := &model.Driver{ID: payload.DriverID, Name: payload.Name, Available: payload.Available}
	c.store(ctx, id, driver)
	return driver, nil
}

func (c *HTTPClient) cached(ctx context.Context, id string) *model.Driver {
	if c.cache == nil {
		return nil
	}
	raw, err := c.cache.Get(ctx, cacheKey(id)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("driver cache read failed", slog.String("driver", id), slog.String("error", err.Error()))
		}
		return nil
	}
	var driver model.Driver
	if err := json.Unmarshal([]byte(raw), &driver); err != nil {
		return nil
	}
	return &driver
}

func (c *HTTPClient) store(ctx context.Context, id string, driver *model.Driver) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(driver)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKey(id), data, c.cacheTTL).Err(); err != nil {
		c.logger.Warn("driver cache write failed", slog.String("driver", id), slog.String("error", err.Error()))
	}
}

func cacheKey(id string) string {
	return "driver:" + id
}
