package handler

import (
	"net/http"

	"countries/internal/country"

	"github.com/sirupsen/logrus"
)

type StatusResponse struct {
	TotalCountries  int     `json:"total_countries" example:"250"`
	LastRefreshedAt *string `json:"last_refreshed_at" example:"2025-01-02T15:04:05.000Z"`
}

// Status godoc
// @Summary Refresh status
// @Description Country count and time of the last refresh (null before the first one)
// @Tags Status
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500 {object} errorResponse
// @Router /status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Status(r.Context())
	if err != nil {
		logrus.WithError(err).WithField("handler", "Status").Error("load status failed")
		writeError(w, http.StatusInternalServerError, internalErrorMsg)
		return
	}

	res := StatusResponse{TotalCountries: st.TotalCountries}
	if st.LastRefreshedAt != nil {
		ts := st.LastRefreshedAt.UTC().Format(country.TimestampLayout)
		res.LastRefreshedAt = &ts
	}
	writeJSON(w, http.StatusOK, res)
}
