package domain

import (
	"strings"
	"time"
)

type Country struct {
	ID              int64
	Name            string
	Capital         *string
	Region          *string
	Population      int64
	CurrencyCode    *string
	ExchangeRate    *float64
	EstimatedGDP    float64
	FlagURL         *string
	LastRefreshedAt time.Time
}

// Meta is the singleton row describing the last refresh.
type Meta struct {
	TotalCountries  int
	LastRefreshedAt time.Time
	SummarySVG      string
}

// SourceCountry is a country record as returned by the countries API.
type SourceCountry struct {
	Name       string           `json:"name"`
	Capital    string           `json:"capital"`
	Region     string           `json:"region"`
	Population int64            `json:"population"`
	Flag       string           `json:"flag"`
	Currencies []SourceCurrency `json:"currencies"`
}

type SourceCurrency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// CurrencyCode returns the first reported currency code or nil.
func (c SourceCountry) CurrencyCode() *string {
	if len(c.Currencies) == 0 || c.Currencies[0].Code == "" {
		return nil
	}
	code := c.Currencies[0].Code
	return &code
}

// NameKey is the case-folded form of a country name used for lookups.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
