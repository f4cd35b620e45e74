package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/fitstudio/reassess/internal/service"
	"github.com/fitstudio/reassess/internal/web"
)

type loginData struct {
	Next         string
	ErrorMessage string
}

type AuthHandler struct {
	authService *service.AuthService
	views       *web.TemplateSet
}

func NewAuthHandler(authService *service.AuthService, views *web.TemplateSet) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		views:       views,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, "login.html", "Staff login", loginData{
		Next: r.URL.Query().Get("next"),
	})
}

// Login authenticates the single admin identity. Failures are generic by
// design: no distinction between bad email and bad password is surfaced.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	err := h.authService.Login(email, password)
	if err != nil {
		slog.Warn("admin login failed", "email", email)
		h.views.RenderStatus(w, r, http.StatusUnauthorized, "login.html", "Staff login", loginData{
			Next:         next,
			ErrorMessage: "Invalid email or password",
		})
		return
	}

	token, err := h.authService.SessionToken()
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		h.views.RenderStatus(w, r, http.StatusInternalServerError, "login.html", "Staff login", loginData{
			Next:         next,
			ErrorMessage: "An error occurred. Please try again.",
		})
		return
	}

	h.authService.SetSessionCookie(w, token)

	slog.Info("admin logged in")
	http.Redirect(w, r, service.SanitizeNext(next), http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
