package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"countries/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestCountriesClient_Success(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
            {"name": "Testland", "capital": "Test City", "region": "TestRegion", "population": 1000,
             "flag": "http://x/flag.svg", "currencies": [{"code": "TST", "name": "Test dollar", "symbol": "$"}],
             "independent": false},
            {"name": "Nowhere", "population": 5}
        ]`))
	}))
	t.Cleanup(srv.Close)

	c := NewCountriesClient(srv.Client(), srv.URL+"/v2/all?fields=name,capital")

	got, err := c.GetCountries(context.Background())
	require.NoError(t, err)
	require.Equal(t, "fields=name,capital", gotQuery)
	require.Len(t, got, 2)

	require.Equal(t, "Testland", got[0].Name)
	require.Equal(t, "Test City", got[0].Capital)
	require.Equal(t, "TestRegion", got[0].Region)
	require.Equal(t, int64(1000), got[0].Population)
	require.Equal(t, "http://x/flag.svg", got[0].Flag)
	require.Equal(t, []domain.SourceCurrency{{Code: "TST", Name: "Test dollar", Symbol: "$"}}, got[0].Currencies)

	require.Equal(t, "Nowhere", got[1].Name)
	require.Empty(t, got[1].Currencies)
}

func TestCountriesClient_StatusCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := NewCountriesClient(srv.Client(), srv.URL)

	_, err := c.GetCountries(context.Background())
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
	require.Contains(t, err.Error(), "unexpected status code 502")
}

func TestCountriesClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := NewCountriesClient(&http.Client{}, addr)

	_, err := c.GetCountries(context.Background())
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestCountriesClient_JSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message": "not an array"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewCountriesClient(srv.Client(), srv.URL)

	_, err := c.GetCountries(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrSourceUnavailable)
	require.Contains(t, err.Error(), "failed to decode countries response")
}
