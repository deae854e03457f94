package handler

import (
	"errors"
	"net/http"

	"countries/internal/domain"

	"github.com/sirupsen/logrus"
)

// GetByName godoc
// @Summary Get country by name
// @Description Case-insensitive lookup of a stored country
// @Tags Countries
// @Produce json
// @Param name path string true "Country name"
// @Success 200 {object} CountryResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /countries/{name} [get]
func (h *Handler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	c, err := h.service.GetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrCountryNotFound) {
			writeError(w, http.StatusNotFound, "Country not found")
			return
		}
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetByName", "name": name}).Error("get country failed")
		writeError(w, http.StatusInternalServerError, internalErrorMsg)
		return
	}

	writeJSON(w, http.StatusOK, toCountryResponse(c))
}
