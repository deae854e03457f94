package handler

import (
	"errors"
	"io"
	"net/http"

	"countries/internal/domain"

	"github.com/sirupsen/logrus"
)

// SummaryImage godoc
// @Summary Summary image
// @Description SVG generated by the last refresh
// @Tags Countries
// @Produce image/svg+xml
// @Produce json
// @Success 200 {string} string "SVG document"
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /countries/image [get]
func (h *Handler) SummaryImage(w http.ResponseWriter, r *http.Request) {
	svg, err := h.service.SummaryImage(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSummaryNotFound) {
			writeError(w, http.StatusNotFound, "Summary image not found")
			return
		}
		logrus.WithError(err).WithField("handler", "SummaryImage").Error("load summary image failed")
		writeError(w, http.StatusInternalServerError, internalErrorMsg)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, svg)
}
