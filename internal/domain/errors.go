package domain

import "errors"

var (
	ErrSourceUnavailable = errors.New("external data source unavailable")
	ErrCountryNotFound   = errors.New("country not found")
	ErrMetaNotFound      = errors.New("refresh metadata not found")
	ErrSummaryNotFound   = errors.New("summary image not found")
)
