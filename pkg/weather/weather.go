// Package weather resolves a free-text location to a current condition
// and a short forecast. Lookups are best-effort: callers fall back to a
// static display when any step fails.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ErrNoMatch is returned when geocoding finds nothing for the location.
var ErrNoMatch = errors.New("weather: no match for location")

// Current is the present condition at a location.
type Current struct {
	Code int
	Temp float64
}

// ForecastDay is one day of the multi-day outlook.
type ForecastDay struct {
	Date string
	Code int
	Max  float64
	Min  float64
}

// Report bundles a lookup result for one location.
type Report struct {
	Location string
	Current  Current
	Forecast []ForecastDay
}

const (
	defaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	requestTimeout     = 10 * time.Second
)

// Client looks up weather through a geocoding and a forecast endpoint.
// Zero value uses the public open-meteo services.
type Client struct {
	GeocodeURL  string
	ForecastURL string
	HTTP        *http.Client
	Timeout     time.Duration
}

var parenthetical = regexp.MustCompile(`[(（][^)）]*[)）]`)

// CleanLocation strips parentheticals, both ASCII and full-width, and
// keeps only the leading place name before any slash or comma. Day
// locations are written for humans ("Kyoto (day trip)", "Osaka / Nara")
// and need trimming before they geocode.
func CleanLocation(raw string) string {
	s := parenthetical.ReplaceAllString(raw, "")
	for _, sep := range []string{"/", ",", "、", "・"} {
		if i := strings.Index(s, sep); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

// Lookup geocodes the location and fetches current conditions plus a
// daily forecast. The cleaned location is echoed back in the report.
func (c *Client) Lookup(ctx context.Context, location string) (Report, error) {
	name := CleanLocation(location)
	if name == "" {
		return Report{}, ErrNoMatch
	}

	lat, lon, err := c.geocode(ctx, name)
	if err != nil {
		return Report{}, err
	}
	report, err := c.forecast(ctx, lat, lon)
	if err != nil {
		return Report{}, err
	}
	report.Location = name
	return report, nil
}

func (c *Client) geocode(ctx context.Context, name string) (lat, lon float64, err error) {
	endpoint := c.GeocodeURL
	if endpoint == "" {
		endpoint = defaultGeocodeURL
	}
	q := url.Values{"name": {name}, "count": {"1"}}

	var out struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, endpoint+"?"+q.Encode(), &out); err != nil {
		return 0, 0, err
	}
	if len(out.Results) == 0 {
		return 0, 0, ErrNoMatch
	}
	return out.Results[0].Latitude, out.Results[0].Longitude, nil
}

func (c *Client) forecast(ctx context.Context, lat, lon float64) (Report, error) {
	endpoint := c.ForecastURL
	if endpoint == "" {
		endpoint = defaultForecastURL
	}
	q := url.Values{
		"latitude":        {fmt.Sprintf("%.4f", lat)},
		"longitude":       {fmt.Sprintf("%.4f", lon)},
		"current_weather": {"true"},
		"daily":           {"weathercode,temperature_2m_max,temperature_2m_min"},
		"timezone":        {"auto"},
	}

	var out struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
		Daily struct {
			Time        []string  `json:"time"`
			WeatherCode []int     `json:"weathercode"`
			TempMax     []float64 `json:"temperature_2m_max"`
			TempMin     []float64 `json:"temperature_2m_min"`
		} `json:"daily"`
	}
	if err := c.getJSON(ctx, endpoint+"?"+q.Encode(), &out); err != nil {
		return Report{}, err
	}

	report := Report{
		Current: Current{Code: out.CurrentWeather.WeatherCode, Temp: out.CurrentWeather.Temperature},
	}
	for i, date := range out.Daily.Time {
		if i >= len(out.Daily.WeatherCode) || i >= len(out.Daily.TempMax) || i >= len(out.Daily.TempMin) {
			break
		}
		report.Forecast = append(report.Forecast, ForecastDay{
			Date: date,
			Code: out.Daily.WeatherCode[i],
			Max:  out.Daily.TempMax[i],
			Min:  out.Daily.TempMin[i],
		})
	}
	return report, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("weather: build request: %w", err)
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weather: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("weather: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather: status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("weather: decode response: %w", err)
	}
	return nil
}

// Icon maps a WMO weather code to a display glyph. Unknown codes get the
// cloudy fallback.
func Icon(code int) string {
	switch {
	case code == 0:
		return "☀️"
	case code <= 2:
		return "🌤️"
	case code == 3:
		return "☁️"
	case code >= 45 && code <= 48:
		return "🌫️"
	case code >= 51 && code <= 67:
		return "🌧️"
	case code >= 71 && code <= 77:
		return "❄️"
	case code >= 80 && code <= 82:
		return "🌧️"
	case code >= 85 && code <= 86:
		return "❄️"
	case code >= 95:
		return "⛈️"
	default:
		return "☁️"
	}
}
