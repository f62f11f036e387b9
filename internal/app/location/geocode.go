package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// HTTPGeocoder talks to a reverse-geocode endpoint that answers JSON in the
// bigdatacloud style: locality, principalSubdivision, countryName.
type HTTPGeocoder struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGeocoder builds a geocoder for the given endpoint. The client may be
// nil, in which case http.DefaultClient is used; timeouts are expected to
// come from the caller's context.
func NewHTTPGeocoder(baseURL string, client *http.Client) *HTTPGeocoder {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGeocoder{baseURL: baseURL, client: client}
}

type geocodeResponse struct {
	Locality             string `json:"locality"`
	City                 string `json:"city"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
}

// ReverseGeocode resolves coordinates into "locality, subdivision, country",
// omitting missing parts.
func (g *HTTPGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", lat))
	q.Set("longitude", fmt.Sprintf("%f", lon))
	q.Set("localityLanguage", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode status %s", resp.Status)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("geocode decode: %w", err)
	}

	locality := body.Locality
	if locality == "" {
		locality = body.City
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{locality, body.PrincipalSubdivision, body.CountryName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("geocode returned empty address")
	}
	return strings.Join(parts, ", "), nil
}
