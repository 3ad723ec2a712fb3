// Package openweather 封装 OpenWeatherMap 天气与逆地理查询
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openweathermap.org"

// ErrPlaceNotFound 逆地理查询无结果
var ErrPlaceNotFound = errors.New("no place found for the given coordinates")

// Weather 当前天气
type Weather struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Conditions  string  `json:"conditions"`
	Icon        string  `json:"icon"`
}

// Place 逆地理结果
type Place struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Client OpenWeatherMap 客户端
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// CurrentWeather 查询坐标当前天气
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (Weather, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return Weather{}, fmt.Errorf("missing OpenWeatherMap API key")
	}

	endpoint := fmt.Sprintf("%s/data/2.5/weather?lat=%s&lon=%s&units=metric&appid=%s",
		c.baseURL(), formatCoord(lat), formatCoord(lon), url.QueryEscape(c.APIKey))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return Weather{}, err
	}

	var parsed weatherResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Weather{}, fmt.Errorf("decode weather response: %w", err)
	}

	out := Weather{
		Temperature: parsed.Main.Temp,
		Humidity:    parsed.Main.Humidity,
	}
	if len(parsed.Weather) > 0 {
		out.Conditions = parsed.Weather[0].Description
		out.Icon = parsed.Weather[0].Icon
	}

	return out, nil
}

// ReverseGeocode 把坐标解析为地名
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (Place, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return Place{}, fmt.Errorf("missing OpenWeatherMap API key")
	}

	endpoint := fmt.Sprintf("%s/geo/1.0/reverse?lat=%s&lon=%s&limit=1&appid=%s",
		c.baseURL(), formatCoord(lat), formatCoord(lon), url.QueryEscape(c.APIKey))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return Place{}, err
	}

	var parsed []geoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Place{}, fmt.Errorf("decode geocoding response: %w", err)
	}

	if len(parsed) == 0 {
		return Place{}, fmt.Errorf("%w: %.4f,%.4f", ErrPlaceNotFound, lat, lon)
	}

	return Place{
		Name:    strings.TrimSpace(parsed[0].Name),
		Country: strings.TrimSpace(parsed[0].Country),
	}, nil
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create weather request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute weather request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read weather response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("weather request failed with status %d", resp.StatusCode)
	}

	return body, nil
}

func formatCoord(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", v), "0"), ".")
}

type weatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

type geoResponse struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}
