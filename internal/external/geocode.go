package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// nominatimUserAgent identifies the bot per the usage policy; anonymous
// requests get rejected.
const nominatimUserAgent = "gentle-habits-bot/1.0"

// GeocodeClient resolves free-form addresses to coordinates through a
// Nominatim instance, used when users register bus stops.
type GeocodeClient struct {
	BaseURL    string
	httpClient *http.Client
}

func NewGeocodeClient(baseURL string) *GeocodeClient {
	return &GeocodeClient{
		BaseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Resolve returns "display_name::lat,lon" for the best match, the storage
// form the briefing preferences expect.
func (c *GeocodeClient) Resolve(ctx context.Context, address string) (string, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", nominatimUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode %q: unexpected status %d", address, resp.StatusCode)
	}

	var results []nominatimResult
	err = json.NewDecoder(resp.Body).Decode(&results)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no match for %q", address)
	}

	r := results[0]
	return fmt.Sprintf("%s::%s,%s", r.DisplayName, r.Lat, r.Lon), nil
}
