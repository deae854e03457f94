package handler

import (
	"errors"
	"net/http"

	"countries/internal/country"
	"countries/internal/domain"

	"github.com/sirupsen/logrus"
)

type RefreshResponse struct {
	Message         string `json:"message" example:"Countries refreshed successfully"`
	LastRefreshedAt string `json:"last_refreshed_at" example:"2025-01-02T15:04:05.000Z"`
}

// Refresh godoc
// @Summary Refresh countries
// @Description Fetch countries and exchange rates, recompute estimated GDP and regenerate the summary image
// @Tags Countries
// @Produce json
// @Success 200 {object} RefreshResponse
// @Failure 503 {object} errorResponse "external data source unavailable"
// @Failure 500 {object} errorResponse
// @Router /countries/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	res, err := h.refresher.Refresh(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSourceUnavailable) {
			logrus.WithError(err).WithField("handler", "Refresh").Warn("refresh aborted")
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{
				Error:   "External data source unavailable",
				Details: "Could not fetch data from API",
			})
			return
		}
		logrus.WithError(err).WithField("handler", "Refresh").Error("refresh failed")
		writeError(w, http.StatusInternalServerError, internalErrorMsg)
		return
	}

	writeJSON(w, http.StatusOK, RefreshResponse{
		Message:         "Countries refreshed successfully",
		LastRefreshedAt: res.LastRefreshedAt.UTC().Format(country.TimestampLayout),
	})
}
