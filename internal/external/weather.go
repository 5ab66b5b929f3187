// Package external holds the thin HTTP clients for the briefing's enrichment
// services. Every client degrades to an error the briefing composer turns
// into a placeholder line; none of them are load-bearing.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultGeocodeBase = "https://geocoding-api.open-meteo.com"

// WeatherClient reads current conditions from the Open-Meteo API. Locations
// are free-form place names, resolved through Open-Meteo's own geocoder.
type WeatherClient struct {
	ForecastBase string
	GeocodeBase  string
	httpClient   *http.Client
}

func NewWeatherClient(forecastBase string) *WeatherClient {
	return &WeatherClient{
		ForecastBase: forecastBase,
		GeocodeBase:  defaultGeocodeBase,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

type geocodeResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Name      string  `json:"name"`
	} `json:"results"`
}

type forecastResponse struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		ApparentTemp  float64 `json:"apparent_temperature"`
		Precipitation float64 `json:"precipitation_probability"`
		WeatherCode   int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		TempMax []float64 `json:"temperature_2m_max"`
		TempMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func (c *WeatherClient) Current(ctx context.Context, location string) (string, error) {
	lat, lon, err := c.geocode(ctx, location)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("current", "temperature_2m,apparent_temperature,precipitation_probability,weather_code")
	q.Set("daily", "temperature_2m_max,temperature_2m_min")
	q.Set("forecast_days", "1")
	q.Set("timezone", "auto")

	var forecast forecastResponse
	err = c.getJSON(ctx, c.ForecastBase+"/v1/forecast?"+q.Encode(), &forecast)
	if err != nil {
		return "", fmt.Errorf("fetch forecast: %w", err)
	}

	out := fmt.Sprintf("%s, %.0f°C (feels like %.0f°C)",
		weatherDescription(forecast.Current.WeatherCode),
		forecast.Current.Temperature,
		forecast.Current.ApparentTemp,
	)
	if len(forecast.Daily.TempMax) > 0 && len(forecast.Daily.TempMin) > 0 {
		out += fmt.Sprintf("\nHigh %.0f°C / Low %.0f°C", forecast.Daily.TempMax[0], forecast.Daily.TempMin[0])
	}
	if forecast.Current.Precipitation >= 30 {
		out += fmt.Sprintf("\n☔ %.0f%% chance of rain, bring an umbrella!", forecast.Current.Precipitation)
	}
	return out, nil
}

func (c *WeatherClient) geocode(ctx context.Context, location string) (float64, float64, error) {
	q := url.Values{}
	q.Set("name", location)
	q.Set("count", "1")

	var resp geocodeResponse
	err := c.getJSON(ctx, c.GeocodeBase+"/v1/search?"+q.Encode(), &resp)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", location, err)
	}
	if len(resp.Results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding match for %q", location)
	}
	return resp.Results[0].Latitude, resp.Results[0].Longitude, nil
}

func (c *WeatherClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// weatherDescription maps WMO weather codes to short human text. Unknown
// codes fall back to something neutral rather than failing the briefing.
func weatherDescription(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code <= 2:
		return "Partly cloudy"
	case code == 3:
		return "Overcast"
	case code <= 48:
		return "Foggy"
	case code <= 57:
		return "Drizzle"
	case code <= 67:
		return "Rain"
	case code <= 77:
		return "Snow"
	case code <= 82:
		return "Rain showers"
	case code <= 86:
		return "Snow showers"
	case code <= 99:
		return "Thunderstorm"
	}
	return "Mixed conditions"
}
