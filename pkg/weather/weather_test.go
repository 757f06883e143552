package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCleanLocation(t *testing.T) {
	cases := map[string]string{
		"Kyoto":               "Kyoto",
		"Kyoto (day trip)":    "Kyoto",
		"京都（嵐山エリア）":           "京都",
		"Osaka / Nara":        "Osaka",
		"Tokyo, Shibuya":      "Tokyo",
		"  Hakone (onsen)  ":  "Hakone",
		"(all parenthetical)": "",
		"Nikko・Kinugawa":      "Nikko",
	}
	for in, want := range cases {
		if got := CleanLocation(in); got != want {
			t.Errorf("CleanLocation(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLookup(t *testing.T) {
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") != "Kyoto" {
			fmt.Fprint(w, `{"results":[]}`)
			return
		}
		fmt.Fprint(w, `{"results":[{"latitude":35.0116,"longitude":135.7681}]}`)
	}))
	defer geo.Close()

	fc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"current_weather":{"temperature":21.5,"weathercode":2},
			"daily":{
				"time":["2026-04-01","2026-04-02"],
				"weathercode":[2,61],
				"temperature_2m_max":[22.0,18.5],
				"temperature_2m_min":[12.0,11.0]
			}
		}`)
	}))
	defer fc.Close()

	c := &Client{GeocodeURL: geo.URL, ForecastURL: fc.URL}

	report, err := c.Lookup(context.Background(), "Kyoto (day trip)")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if report.Location != "Kyoto" {
		t.Errorf("location = %q, want Kyoto", report.Location)
	}
	if report.Current.Code != 2 || report.Current.Temp != 21.5 {
		t.Errorf("unexpected current %+v", report.Current)
	}
	if len(report.Forecast) != 2 || report.Forecast[1].Code != 61 || report.Forecast[1].Min != 11.0 {
		t.Errorf("unexpected forecast %+v", report.Forecast)
	}

	if _, err := c.Lookup(context.Background(), "Atlantis"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
	if _, err := c.Lookup(context.Background(), "（）"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch for empty cleaned location, got %v", err)
	}
}

func TestIcon(t *testing.T) {
	cases := map[int]string{
		0:   "☀️",
		1:   "🌤️",
		3:   "☁️",
		45:  "🌫️",
		61:  "🌧️",
		71:  "❄️",
		81:  "🌧️",
		95:  "⛈️",
		999: "☁️",
	}
	for code, want := range cases {
		if got := Icon(code); got != want {
			t.Errorf("Icon(%d) = %q, want %q", code, got, want)
		}
	}
}
