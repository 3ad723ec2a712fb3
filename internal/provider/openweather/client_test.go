package openweather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCurrentWeatherParsesResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/data/2.5/weather") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("units") != "metric" {
			t.Errorf("expected metric units, got %q", r.URL.Query().Get("units"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "main": {"temp": 33.5, "humidity": 68},
  "weather": [{"description": "clear sky", "icon": "01d"}]
}`))
	}))
	defer ts.Close()

	c := &Client{
		APIKey:     "demo",
		BaseURL:    ts.URL,
		HTTPClient: ts.Client(),
	}

	weather, err := c.CurrentWeather(context.Background(), 25.2048, 55.2708)
	if err != nil {
		t.Fatalf("current weather: %v", err)
	}
	if weather.Temperature != 33.5 {
		t.Fatalf("expected temperature 33.5, got %.1f", weather.Temperature)
	}
	if weather.Humidity != 68 {
		t.Fatalf("expected humidity 68, got %.0f", weather.Humidity)
	}
	if weather.Conditions != "clear sky" || weather.Icon != "01d" {
		t.Fatalf("unexpected conditions: %+v", weather)
	}
}

func TestCurrentWeatherRequiresAPIKey(t *testing.T) {
	t.Parallel()

	c := &Client{}
	if _, err := c.CurrentWeather(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestCurrentWeatherHTTPError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "bad", BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.CurrentWeather(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestReverseGeocodeParsesResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/geo/1.0/reverse") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name": "Dubai", "country": "AE"}]`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}

	place, err := c.ReverseGeocode(context.Background(), 25.2048, 55.2708)
	if err != nil {
		t.Fatalf("reverse geocode: %v", err)
	}
	if place.Name != "Dubai" || place.Country != "AE" {
		t.Fatalf("unexpected place: %+v", place)
	}
}

func TestReverseGeocodeEmptyResult(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.ReverseGeocode(context.Background(), 0, 0)
	if err == nil {
		t.Fatal("expected error for empty geocoding result")
	}
	if !errors.Is(err, ErrPlaceNotFound) {
		t.Errorf("error = %v, want ErrPlaceNotFound", err)
	}
}
