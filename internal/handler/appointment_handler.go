package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"clinic-management-api/internal/analytics"
	"clinic-management-api/internal/blob"
	"clinic-management-api/internal/model"
)

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appts := h.clinic.Appointments()
	// optional filter by patient
	if pid := r.URL.Query().Get("patientId"); pid != "" {
		appts = h.clinic.AppointmentsFor(pid)
		if appts == nil {
			appts = []model.Appointment{}
		}
	}
	h.writeJSON(w, http.StatusOK, appts)
}

type createAppointmentRequest struct {
	PatientID       string                  `json:"patientId"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description,omitempty"`
	Comments        string                  `json:"comments,omitempty"`
	AppointmentDate string                  `json:"appointmentDate"`
	Cost            float64                 `json:"cost,omitempty"`
	Status          model.AppointmentStatus `json:"status,omitempty"`
	Treatment       string                  `json:"treatment,omitempty"`
	NextDate        string                  `json:"nextDate,omitempty"`
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PatientID == "" || req.Title == "" || req.AppointmentDate == "" {
		h.writeError(w, http.StatusBadRequest, "patientId, title and appointmentDate required")
		return
	}
	if _, ok := analytics.ParseDate(req.AppointmentDate, h.now().Location()); !ok {
		h.writeError(w, http.StatusBadRequest, "invalid appointmentDate")
		return
	}
	if _, ok := h.clinic.PatientByID(req.PatientID); !ok {
		h.writeError(w, http.StatusBadRequest, "unknown patient")
		return
	}
	status := req.Status
	if status == "" {
		status = model.StatusScheduled
	}
	if !model.ValidStatus(status) {
		h.writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	a := h.clinic.AddAppointment(model.Appointment{
		PatientID:       req.PatientID,
		Title:           req.Title,
		Description:     req.Description,
		Comments:        req.Comments,
		AppointmentDate: req.AppointmentDate,
		Cost:            req.Cost,
		Status:          status,
		Treatment:       req.Treatment,
		NextDate:        req.NextDate,
	})
	h.writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	a, ok := h.clinic.AppointmentByID(chi.URLParam(r, "id"))
	if !ok {
		h.writeError(w, http.StatusNotFound, "appointment not found")
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var patch model.AppointmentPatch
	if err := decode(r, &patch); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.Status != nil && !model.ValidStatus(*patch.Status) {
		h.writeError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if patch.AppointmentDate != nil {
		if _, ok := analytics.ParseDate(*patch.AppointmentDate, h.now().Location()); !ok {
			h.writeError(w, http.StatusBadRequest, "invalid appointmentDate")
			return
		}
	}
	a, ok := h.clinic.UpdateAppointment(chi.URLParam(r, "id"), patch)
	if !ok {
		h.writeError(w, http.StatusNotFound, "appointment not found")
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	a, ok := h.clinic.AppointmentByID(chi.URLParam(r, "id"))
	if !ok {
		h.writeError(w, http.StatusNotFound, "appointment not found")
		return
	}
	// release any object URLs the appointment still holds
	for _, f := range a.Files {
		h.blobs.Revoke(f.URL)
	}
	h.clinic.DeleteAppointment(a.ID)
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AttachFile accepts a multipart upload, validates it against the allow-list,
// registers the bytes as an in-memory blob and attaches {name, url} to the
// appointment.
func (h *Handler) AttachFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.clinic.AppointmentByID(id); !ok {
		h.writeError(w, http.StatusNotFound, "appointment not found")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "file field required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "unreadable upload")
		return
	}

	url, err := h.blobs.Create(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, blob.ErrTooLarge), errors.Is(err, blob.ErrBadType), errors.Is(err, blob.ErrEmptyUpload):
			h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.log.Error("register blob", zap.Error(err))
			h.writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	att := model.FileAttachment{Name: header.Filename, URL: url}
	if !h.clinic.AddFile(id, att) {
		// appointment vanished between the check and the attach
		h.blobs.Revoke(url)
		h.writeError(w, http.StatusNotFound, "appointment not found")
		return
	}
	h.writeJSON(w, http.StatusCreated, att)
}

// DetachFile removes the named attachment and releases its blob.
func (h *Handler) DetachFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name := chi.URLParam(r, "name")

	a, ok := h.clinic.AppointmentByID(id)
	if !ok {
		h.writeError(w, http.StatusNotFound, "appointment not found")
		return
	}
	for _, f := range a.Files {
		if f.Name == name {
			h.blobs.Revoke(f.URL)
		}
	}
	h.clinic.RemoveFile(id, name)
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ServeBlob streams a live blob back to the browser.
func (h *Handler) ServeBlob(w http.ResponseWriter, r *http.Request) {
	url := blob.URLPrefix + chi.URLParam(r, "id")
	name, contentType, data, err := h.blobs.Open(url)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `inline; filename="`+strings.ReplaceAll(name, `"`, "")+`"`)
	w.Write(data)
}
