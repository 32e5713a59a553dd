package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/steiza/a2docstore/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Auth handles both sign-in and sign-out. Sign-in runs over HTTP Basic:
// only the password half of the credentials is checked, and success issues
// the marker cookie.
func (h *AuthHandler) Auth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("log_out") != "" {
		h.authService.ClearMarkerCookie(w)
		setNotification(w, "You have signed out")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	_, password, ok := r.BasicAuth()
	if !ok {
		h.challenge(w)
		return
	}

	err := h.authService.CheckPassword(password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidPassword) {
			slog.Error("password check failed", "error", err)
		}
		h.challenge(w)
		return
	}

	err = h.authService.SetMarkerCookie(w)
	if err != nil {
		slog.Error("failed to set marker cookie", "error", err)
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}

	setNotification(w, "You have signed in successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) challenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Basic realm=/auth/")
	w.WriteHeader(http.StatusUnauthorized)
}
