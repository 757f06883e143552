// Package rates fetches the JPY conversion rate used for the live
// two-field currency converter. The base currency is fixed.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// ErrUnavailable is returned when no rate could be fetched.
var ErrUnavailable = errors.New("rates: rate unavailable")

// Rate is one fetched conversion rate and when it was current.
type Rate struct {
	JPYPerUnit float64
	FetchedAt  time.Time
}

// ToJPY converts an amount in the base currency to yen, rounded to the
// nearest whole yen.
func (r Rate) ToJPY(amount float64) int {
	return int(math.Round(amount * r.JPYPerUnit))
}

// FromJPY converts yen back to the base currency.
func (r Rate) FromJPY(jpy int) float64 {
	if r.JPYPerUnit == 0 {
		return 0
	}
	return float64(jpy) / r.JPYPerUnit
}

const (
	defaultEndpoint = "https://open.er-api.com/v6/latest/USD"
	requestTimeout  = 10 * time.Second
)

// Client fetches the current rate. Zero value uses the public endpoint;
// Now is injectable for tests.
type Client struct {
	Endpoint string
	HTTP     *http.Client
	Timeout  time.Duration
	Now      func() time.Time
}

// Fetch returns the current JPY rate with a freshness timestamp.
func (c *Client) Fetch(ctx context.Context) (Rate, error) {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Rate{}, fmt.Errorf("rates: build request: %w", err)
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return Rate{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Rate{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return Rate{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return Rate{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	jpy, ok := out.Rates["JPY"]
	if !ok || jpy <= 0 {
		return Rate{}, fmt.Errorf("%w: no JPY rate in response", ErrUnavailable)
	}

	now := c.Now
	if now == nil {
		now = time.Now
	}
	return Rate{JPYPerUnit: jpy, FetchedAt: now()}, nil
}
