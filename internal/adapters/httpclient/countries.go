package httpclient

import (
	"context"
	"countries/internal/domain"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type CountriesClient struct {
	http *http.Client
	url  string
}

func (c *CountriesClient) GetCountries(ctx context.Context) ([]domain.SourceCountry, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse countries URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create countries request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute countries request: %w", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status code %d from countries api: %s", domain.ErrSourceUnavailable, resp.StatusCode, resp.Status)
	}

	var body []domain.SourceCountry
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode countries response: %w", err)
	}
	return body, nil
}

func NewCountriesClient(httpClient *http.Client, countriesURL string) *CountriesClient {
	return &CountriesClient{http: httpClient, url: countriesURL}
}
