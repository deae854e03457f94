package handler

import (
	"net/http"

	"countries/internal/country"

	"github.com/sirupsen/logrus"
)

// List godoc
// @Summary List countries
// @Description All stored countries, optionally filtered by region and currency code and sorted by estimated GDP
// @Tags Countries
// @Produce json
// @Param region query string false "Exact region, e.g. Africa"
// @Param currency query string false "Exact currency code, e.g. NGN"
// @Param sort query string false "Sort order" Enums(gdp_desc)
// @Success 200 {array} CountryResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /countries [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := country.ParseListFilter(q.Get("region"), q.Get("currency"), q.Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	countries, err := h.service.List(r.Context(), filter)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "List", "region": filter.Region, "currency": filter.Currency}).Error("list failed")
		writeError(w, http.StatusInternalServerError, internalErrorMsg)
		return
	}

	res := make([]CountryResponse, 0, len(countries))
	for _, c := range countries {
		res = append(res, toCountryResponse(c))
	}
	writeJSON(w, http.StatusOK, res)
}
