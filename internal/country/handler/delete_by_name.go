package handler

import (
	"errors"
	"net/http"

	"countries/internal/domain"

	"github.com/sirupsen/logrus"
)

// DeleteByName godoc
// @Summary Delete country by name
// @Tags Countries
// @Produce json
// @Param name path string true "Country name"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /countries/{name} [delete]
func (h *Handler) DeleteByName(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	if err := h.service.DeleteByName(r.Context(), name); err != nil {
		if errors.Is(err, domain.ErrCountryNotFound) {
			writeError(w, http.StatusNotFound, "Country not found")
			return
		}
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "DeleteByName", "name": name}).Error("delete country failed")
		writeError(w, http.StatusInternalServerError, internalErrorMsg)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: name + " deleted successfully"})
}
