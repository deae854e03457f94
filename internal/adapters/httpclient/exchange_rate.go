package httpclient

import (
	"context"
	"countries/internal/domain"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type ExchangeRateClient struct {
	http *http.Client
	url  string
}

type ratesResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// GetExchangeRates returns currency code -> rate relative to the API's base currency.
func (c *ExchangeRateClient) GetExchangeRates(ctx context.Context) (map[string]float64, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse exchange rates URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create exchange rates request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute exchange rates request: %w", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status code %d from exchange rates api: %s", domain.ErrSourceUnavailable, resp.StatusCode, resp.Status)
	}

	var body ratesResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode exchange rates response: %w", err)
	}

	// open.er-api reports failures in the body with a 200 status
	if body.Result != "" && body.Result != "success" {
		return nil, fmt.Errorf("%w: exchange rates api returned non-success result: %s", domain.ErrSourceUnavailable, body.Result)
	}

	if body.Rates == nil {
		body.Rates = map[string]float64{}
	}
	return body.Rates, nil
}

func NewExchangeRateClient(httpClient *http.Client, ratesURL string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, url: ratesURL}
}
