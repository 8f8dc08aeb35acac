package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"clinic-management-api/internal/auth"
	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/seed"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	u, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.log.Error("login", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	tok, err := auth.MakeToken(u, h.secret)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"token": tok,
		"user":  public(*u),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout()
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())
	h.writeJSON(w, http.StatusOK, public(*u))
}

type updateMeRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// UpdateMe changes the caller's own email and/or password. New passwords are
// stored hashed; the demo seeds stay plaintext until changed.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFrom(r.Context())

	var req updateMeRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated := *u
	if req.Email != "" {
		updated.Email = req.Email
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		updated.Password = hash
	}

	if err := h.sessions.UpdateUser(updated); err != nil {
		h.log.Error("update user", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeJSON(w, http.StatusOK, public(updated))
}

// AdminReset reseeds the store with the demo dataset, discarding all current
// records. The session surviving the reset is handled like any stale session.
func (h *Handler) AdminReset(w http.ResponseWriter, r *http.Request) {
	if _, err := seed.Ensure(h.rs, true); err != nil {
		h.log.Error("reset", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	h.clinic.Reload()
	// every appointment that held an object URL is gone now
	h.blobs.RevokeAll()
	h.log.Warn("demo data reset", zap.String("by", middleware.UserFrom(r.Context()).ID))
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
