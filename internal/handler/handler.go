package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"clinic-management-api/internal/auth"
	"clinic-management-api/internal/blob"
	"clinic-management-api/internal/clinic"
	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/model"
	"clinic-management-api/internal/store"
)

type Handler struct {
	clinic   *clinic.Service
	sessions *auth.Sessions
	blobs    *blob.Registry
	rs       store.RecordStore
	secret   string
	log      *zap.Logger
	now      func() time.Time
}

func New(cs *clinic.Service, sessions *auth.Sessions, blobs *blob.Registry, rs store.RecordStore, secret string, log *zap.Logger) *Handler {
	return &Handler{
		clinic:   cs,
		sessions: sessions,
		blobs:    blobs,
		rs:       rs,
		secret:   secret,
		log:      log,
		now:      time.Now,
	}
}

// Routes mounts the full API surface. Role gates are evaluated per request;
// staff routes 404 for the wrong role rather than 403.
func (h *Handler) Routes(loginLimiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Authenticate(h.secret, h.sessions))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimit(loginLimiter)).Post("/login", h.Login)
			r.Post("/logout", h.Logout)
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(middleware.RequireRoles(model.RoleAdmin, model.RoleDoctor, model.RolePatient))
			r.Get("/", h.Me)
			r.Put("/", h.UpdateMe)
		})

		r.Route("/patients", func(r chi.Router) {
			r.Use(middleware.RequireRoles(model.RoleAdmin, model.RoleDoctor))
			r.Get("/", h.ListPatients)
			r.Post("/", h.CreatePatient)
			r.Get("/{id}", h.GetPatient)
			r.Put("/{id}", h.UpdatePatient)
			r.Delete("/{id}", h.DeletePatient)
			r.Get("/{id}/appointments", h.PatientAppointments)
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Use(middleware.RequireRoles(model.RoleAdmin, model.RoleDoctor))
			r.Get("/", h.ListAppointments)
			r.Post("/", h.CreateAppointment)
			r.Get("/{id}", h.GetAppointment)
			r.Put("/{id}", h.UpdateAppointment)
			r.Delete("/{id}", h.DeleteAppointment)
			r.Post("/{id}/files", h.AttachFile)
			r.Delete("/{id}/files/{name}", h.DetachFile)
		})

		// the logged-in patient's own record and visits
		r.Route("/my", func(r chi.Router) {
			r.Use(middleware.RequireRoles(model.RolePatient))
			r.Get("/patient", h.MyPatient)
			r.Get("/appointments", h.MyAppointments)
		})

		r.With(middleware.RequireRoles(model.RoleAdmin, model.RoleDoctor)).
			Get("/dashboard", h.Dashboard)

		r.With(middleware.RequireRoles(model.RoleAdmin), middleware.RateLimit(loginLimiter)).
			Post("/admin/reset", h.AdminReset)

		r.Get("/blobs/{id}", h.ServeBlob)
	})

	return r
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("write response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// decode reads a JSON body, rejecting unknown fields so typos in patch
// payloads fail loudly instead of silently not updating.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// public strips the password before a user record leaves the API.
func public(u model.User) map[string]any {
	out := map[string]any{
		"id":    u.ID,
		"role":  u.Role,
		"email": u.Email,
	}
	if u.PatientID != "" {
		out["patientId"] = u.PatientID
	}
	return out
}
