package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/model"
)

func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.clinic.Patients())
}

type createPatientRequest struct {
	Name       string `json:"name"`
	DOB        string `json:"dob"`
	Contact    string `json:"contact"`
	Email      string `json:"email,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Address    string `json:"address,omitempty"`
	HealthInfo string `json:"healthInfo,omitempty"`
}

func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req createPatientRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.DOB == "" || req.Contact == "" {
		h.writeError(w, http.StatusBadRequest, "name, dob and contact required")
		return
	}

	p := h.clinic.AddPatient(model.Patient{
		Name:       req.Name,
		DOB:        req.DOB,
		Contact:    req.Contact,
		Email:      req.Email,
		Gender:     req.Gender,
		Address:    req.Address,
		HealthInfo: req.HealthInfo,
	})
	h.writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	p, ok := h.clinic.PatientByID(chi.URLParam(r, "id"))
	if !ok {
		h.writeError(w, http.StatusNotFound, "patient not found")
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	var patch model.PatientPatch
	if err := decode(r, &patch); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, ok := h.clinic.UpdatePatient(chi.URLParam(r, "id"), patch)
	if !ok {
		h.writeError(w, http.StatusNotFound, "patient not found")
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// release object URLs held by appointments about to be cascaded away
	for _, a := range h.clinic.AppointmentsFor(id) {
		for _, f := range a.Files {
			h.blobs.Revoke(f.URL)
		}
	}
	if !h.clinic.DeletePatient(id) {
		h.writeError(w, http.StatusNotFound, "patient not found")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) PatientAppointments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.clinic.PatientByID(id); !ok {
		h.writeError(w, http.StatusNotFound, "patient not found")
		return
	}
	appts := h.clinic.AppointmentsFor(id)
	if appts == nil {
		appts = []model.Appointment{}
	}
	h.writeJSON(w, http.StatusOK, appts)
}

// MyPatient serves the patient record linked to the logged-in patient user.
func (h *Handler) MyPatient(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())
	if u.PatientID == "" {
		h.writeError(w, http.StatusNotFound, "no linked patient record")
		return
	}
	p, ok := h.clinic.PatientByID(u.PatientID)
	if !ok {
		h.writeError(w, http.StatusNotFound, "no linked patient record")
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) MyAppointments(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())
	if u.PatientID == "" {
		h.writeError(w, http.StatusNotFound, "no linked patient record")
		return
	}
	appts := h.clinic.AppointmentsFor(u.PatientID)
	if appts == nil {
		appts = []model.Appointment{}
	}
	h.writeJSON(w, http.StatusOK, appts)
}
