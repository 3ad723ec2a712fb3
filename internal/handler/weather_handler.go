package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thewaterbar/waterbar/internal/provider/openweather"
	"github.com/thewaterbar/waterbar/internal/service"
)

// WeatherHandler 天气与逆地理代理处理器
type WeatherHandler struct {
	svc *service.Services
}

// NewWeatherHandler 创建天气处理器
func NewWeatherHandler(svc *service.Services) *WeatherHandler {
	return &WeatherHandler{svc: svc}
}

// CurrentWeather 查询当前天气
func (h *WeatherHandler) CurrentWeather(c *gin.Context) {
	lat, lon, ok := parseCoordinates(c)
	if !ok {
		return
	}

	weather, err := h.svc.Weather.CurrentWeather(c.Request.Context(), lat, lon)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, weather)
}

// ReverseGeocode 坐标转地名
func (h *WeatherHandler) ReverseGeocode(c *gin.Context) {
	lat, lon, ok := parseCoordinates(c)
	if !ok {
		return
	}

	place, err := h.svc.Weather.ReverseGeocode(c.Request.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, openweather.ErrPlaceNotFound) {
			NotFound(c, "No place found for these coordinates")
			return
		}
		Error(c, err)
		return
	}

	Success(c, place)
}

// parseCoordinates 解析并校验 lat/lon 查询参数
func parseCoordinates(c *gin.Context) (float64, float64, bool) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		BadRequest(c, "Missing lat or lon query parameter")
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		BadRequest(c, "Invalid lat: must be a number between -90 and 90")
		return 0, 0, false
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		BadRequest(c, "Invalid lon: must be a number between -180 and 180")
		return 0, 0, false
	}

	return lat, lon, true
}
