// Package weather implements the upstream weather lookup behind
// service.WeatherProvider. It talks to the Open-Meteo forecast API, which
// needs no API key.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/packup/packup/internal/domain"
	"github.com/packup/packup/internal/service"
)

const defaultEndpoint = "https://api.open-meteo.com/v1/forecast"

// weatherCodes maps the WMO interpretation codes Open-Meteo returns to short
// human-readable conditions. Unlisted codes fall back to the numeric code.
var weatherCodes = map[int]string{
	0:  "clear",
	1:  "mostly clear",
	2:  "partly cloudy",
	3:  "overcast",
	45: "fog",
	51: "drizzle",
	61: "rain",
	63: "rain",
	65: "heavy rain",
	71: "snow",
	73: "snow",
	75: "heavy snow",
	80: "rain showers",
	95: "thunderstorm",
}

// OpenMeteoProvider fetches current conditions and a short forecast from the
// Open-Meteo API.
type OpenMeteoProvider struct {
	httpClient *http.Client
	endpoint   string // swappable for tests
}

// NewOpenMeteoProvider constructs a provider. A nil httpClient gets a default
// with a 10 second timeout.
func NewOpenMeteoProvider(httpClient *http.Client) *OpenMeteoProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &OpenMeteoProvider{httpClient: httpClient, endpoint: defaultEndpoint}
}

var _ service.WeatherProvider = (*OpenMeteoProvider)(nil)

// openMeteoResponse is the subset of the forecast payload we read.
type openMeteoResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
		WeatherCode    []int     `json:"weather_code"`
	} `json:"daily"`
}

// Fetch implements service.WeatherProvider.
func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc domain.Location) (service.WeatherReport, error) {
	reqURL, err := url.Parse(p.endpoint)
	if err != nil {
		return service.WeatherReport{}, fmt.Errorf("weather.Fetch: parse endpoint: %w", err)
	}
	q := reqURL.Query()
	q.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', 4, 64))
	q.Set("current", "temperature_2m,weather_code")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,weather_code")
	q.Set("forecast_days", "3")
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return service.WeatherReport{}, fmt.Errorf("weather.Fetch: build request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return service.WeatherReport{}, fmt.Errorf("weather.Fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return service.WeatherReport{}, fmt.Errorf("weather.Fetch: upstream status %d", resp.StatusCode)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return service.WeatherReport{}, fmt.Errorf("weather.Fetch: decode response: %w", err)
	}

	report := service.WeatherReport{
		Conditions: fmt.Sprintf("%s, %.0f°C", codeToConditions(payload.Current.WeatherCode), payload.Current.Temperature),
		Forecast:   buildForecast(payload),
	}
	return report, nil
}

// codeToConditions translates a WMO weather code to words.
func codeToConditions(code int) string {
	if s, ok := weatherCodes[code]; ok {
		return s
	}
	return "code " + strconv.Itoa(code)
}

// buildForecast summarizes the daily outlook as one line per day.
func buildForecast(payload openMeteoResponse) string {
	d := payload.Daily
	n := len(d.WeatherCode)
	if len(d.TemperatureMax) < n {
		n = len(d.TemperatureMax)
	}
	if len(d.TemperatureMin) < n {
		n = len(d.TemperatureMin)
	}
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += "; "
		}
		out += fmt.Sprintf("day %d: %s, %.0f to %.0f°C", i+1, codeToConditions(d.WeatherCode[i]), d.TemperatureMin[i], d.TemperatureMax[i])
	}
	return out
}
