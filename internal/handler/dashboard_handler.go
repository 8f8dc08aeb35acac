package handler

import (
	"net/http"

	"clinic-management-api/internal/analytics"
)

// Dashboard recomputes the derived metrics from the live collections on every
// call. Nothing here is cached or persisted.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	m := analytics.Compute(h.clinic.Patients(), h.clinic.Appointments(), h.now())
	h.writeJSON(w, http.StatusOK, m)
}
