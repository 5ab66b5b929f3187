package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultDirectionsBase = "https://maps.googleapis.com"

// ErrTransitDisabled is returned when no Maps API key is configured.
var ErrTransitDisabled = errors.New("transit lookups are not configured")

// TransitClient reads upcoming transit departures between two coordinate
// pairs from the Google Directions API.
type TransitClient struct {
	BaseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewTransitClient(apiKey string) *TransitClient {
	return &TransitClient{
		BaseURL:    defaultDirectionsBase,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Steps []struct {
				TravelMode     string `json:"travel_mode"`
				TransitDetails struct {
					Line struct {
						ShortName string `json:"short_name"`
						Name      string `json:"name"`
					} `json:"line"`
					DepartureTime struct {
						Text string `json:"text"`
					} `json:"departure_time"`
					Headsign string `json:"headsign"`
				} `json:"transit_details"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// NextDepartures returns a short list of upcoming transit options, one line
// per route alternative.
func (c *TransitClient) NextDepartures(ctx context.Context, originCoords, destCoords string) (string, error) {
	if c.apiKey == "" {
		return "", ErrTransitDisabled
	}

	q := url.Values{}
	q.Set("origin", originCoords)
	q.Set("destination", destCoords)
	q.Set("mode", "transit")
	q.Set("alternatives", "true")
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/maps/api/directions/json?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch directions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch directions: unexpected status %d", resp.StatusCode)
	}

	var directions directionsResponse
	err = json.NewDecoder(resp.Body).Decode(&directions)
	if err != nil {
		return "", err
	}
	if directions.Status != "OK" {
		return "", fmt.Errorf("directions status %s", directions.Status)
	}

	var lines []string
	for _, route := range directions.Routes {
		if len(lines) >= 3 {
			break
		}
		for _, leg := range route.Legs {
			for _, step := range leg.Steps {
				if step.TravelMode != "TRANSIT" {
					continue
				}
				line := step.TransitDetails.Line.ShortName
				if line == "" {
					line = step.TransitDetails.Line.Name
				}
				lines = append(lines, fmt.Sprintf("🚌 Route %s towards %s departs %s",
					line, step.TransitDetails.Headsign, step.TransitDetails.DepartureTime.Text))
				break
			}
			break
		}
	}

	if len(lines) == 0 {
		return "", errors.New("no transit routes found")
	}
	return strings.Join(lines, "\n"), nil
}
