package handler

import (
	"context"
	"countries/internal/country"
	"countries/internal/domain"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

type Service interface {
	List(ctx context.Context, filter country.ListFilter) ([]domain.Country, error)
	GetByName(ctx context.Context, name string) (domain.Country, error)
	DeleteByName(ctx context.Context, name string) error
	SummaryImage(ctx context.Context) (string, error)
	Status(ctx context.Context) (country.Status, error)
}

type Refresher interface {
	Refresh(ctx context.Context) (country.RefreshResult, error)
}

type Handler struct {
	service   Service
	refresher Refresher
}

func NewCountryHandler(service Service, refresher Refresher) *Handler {
	return &Handler{service: service, refresher: refresher}
}

const internalErrorMsg = "Internal server error"

type errorResponse struct {
	Error   string `json:"error" example:"Country not found"`
	Details string `json:"details,omitempty" example:"Could not fetch data from API"`
}

type messageResponse struct {
	Message string `json:"message" example:"Nigeria deleted successfully"`
}

type CountryResponse struct {
	ID              int64    `json:"id" example:"1"`
	Name            string   `json:"name" example:"Nigeria"`
	Capital         *string  `json:"capital" example:"Abuja"`
	Region          *string  `json:"region" example:"Africa"`
	Population      int64    `json:"population" example:"206139589"`
	CurrencyCode    *string  `json:"currency_code" example:"NGN"`
	ExchangeRate    *float64 `json:"exchange_rate" example:"1600.23"`
	EstimatedGDP    float64  `json:"estimated_gdp" example:"25767448125.2"`
	FlagURL         *string  `json:"flag_url" example:"https://flagcdn.com/ng.svg"`
	LastRefreshedAt string   `json:"last_refreshed_at" example:"2025-01-02T15:04:05.000Z"`
}

func toCountryResponse(c domain.Country) CountryResponse {
	return CountryResponse{
		ID:              c.ID,
		Name:            c.Name,
		Capital:         c.Capital,
		Region:          c.Region,
		Population:      c.Population,
		CurrencyCode:    c.CurrencyCode,
		ExchangeRate:    c.ExchangeRate,
		EstimatedGDP:    c.EstimatedGDP,
		FlagURL:         c.FlagURL,
		LastRefreshedAt: c.LastRefreshedAt.UTC().Format(country.TimestampLayout),
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

// nameParam returns the trimmed {name} route parameter. chi matches on RawPath
// when it is set, so only then is the parameter still escaped.
func nameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(raw); err == nil {
			raw = unescaped
		}
	}
	return strings.TrimSpace(raw)
}
