package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	httpmiddleware "github.com/mateocampo1004/olimpiatec-portal/internal/http/middleware"
	"github.com/mateocampo1004/olimpiatec-portal/internal/guard"
	"github.com/mateocampo1004/olimpiatec-portal/internal/league"
	"github.com/mateocampo1004/olimpiatec-portal/internal/session"
	"github.com/mateocampo1004/olimpiatec-portal/internal/util"
)

// AuthClient son las llamadas de autenticación del backend.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

// AuthHandler maneja login, logout y recuperación de contraseña. El
// portal nunca guarda el token en el navegador: queda en el store de
// sesión y la cookie solo lleva el id.
type AuthHandler struct {
	client     AuthClient
	sessions   *session.Store
	cookie     string
	devCookies bool
}

func NewAuthHandler(client AuthClient, sessions *session.Store, cookieName string, devCookies bool) *AuthHandler {
	return &AuthHandler{client: client, sessions: sessions, cookie: cookieName, devCookies: devCookies}
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "payload inválido", nil)
		return
	}
	if err := util.ValidateEmail(payload.Email); util.IsInvalid(err) {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}
	if payload.Password == "" {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "La contraseña es obligatoria", nil)
		return
	}

	token, err := h.client.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, league.ErrUnauthorized) {
			WriteError(w, http.StatusUnauthorized, "AUTH", "Credenciales incorrectas", nil)
			return
		}
		var apiErr *league.APIError
		if errors.As(err, &apiErr) {
			WriteError(w, http.StatusBadGateway, "BACKEND", apiErr.Message, nil)
			return
		}
		WriteError(w, http.StatusBadGateway, "BACKEND", "Error de conexión con el servidor", nil)
		return
	}

	claims, err := session.Decode(token)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "BACKEND", "El servidor devolvió una sesión inválida", nil)
		return
	}
	if !claims.Valid(time.Now()) {
		WriteError(w, http.StatusBadGateway, "BACKEND", "El servidor devolvió una sesión vencida", nil)
		return
	}

	sid, err := h.sessions.Save(r.Context(), token)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "No se pudo guardar la sesión", nil)
		return
	}
	h.setCookie(w, sid, claims.ExpiresAt)

	WriteJSON(w, http.StatusOK, map[string]any{
		"role": claims.Role,
		"home": homeFor(claims.Role),
		"menu": guard.Menu(claims.Role),
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if sid := httpmiddleware.GetSessionID(r.Context()); sid != "" {
		_ = h.sessions.Delete(r.Context(), sid)
	}
	h.clearCookie(w)
	http.Redirect(w, r, "/campeonato", http.StatusSeeOther)
}

func (h *AuthHandler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "payload inválido", nil)
		return
	}
	if err := util.ValidateEmail(payload.Email); util.IsInvalid(err) {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	if err := h.client.ForgotPassword(r.Context(), payload.Email); err != nil {
		var apiErr *league.APIError
		if errors.As(err, &apiErr) {
			WriteError(w, http.StatusBadGateway, "BACKEND", apiErr.Message, nil)
			return
		}
		WriteError(w, http.StatusBadGateway, "BACKEND", "Error de conexión con el servidor", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Si el correo existe, recibirás un enlace de recuperación",
	})
}

func (h *AuthHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "payload inválido", nil)
		return
	}
	if payload.Token == "" {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "El enlace de recuperación es inválido", nil)
		return
	}
	if err := util.ValidatePassword(payload.NewPassword); util.IsInvalid(err) {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	if err := h.client.ResetPassword(r.Context(), payload.Token, payload.NewPassword); err != nil {
		var apiErr *league.APIError
		if errors.As(err, &apiErr) {
			WriteError(w, http.StatusBadGateway, "BACKEND", apiErr.Message, nil)
			return
		}
		WriteError(w, http.StatusBadGateway, "BACKEND", "Error de conexión con el servidor", nil)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"message": "Contraseña actualizada, ya puedes iniciar sesión"})
}

// me devuelve la sesión actual con su menú; anónimo responde 200 con
// session nula para que el navegador pinte la vista pública.
func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	claims := httpmiddleware.GetClaims(r.Context())
	if claims == nil || !claims.Valid(time.Now()) {
		WriteJSON(w, http.StatusOK, map[string]any{"session": nil, "menu": guard.Menu("")})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"session": map[string]any{
			"subject":   claims.Subject,
			"role":      claims.Role,
			"expiresAt": claims.ExpiresAt,
		},
		"home": homeFor(claims.Role),
		"menu": guard.Menu(claims.Role),
	})
}

// homeFor es la pantalla inicial de cada rol tras el login.
func homeFor(role session.Role) string {
	switch role {
	case session.RoleAdmin:
		return "/panel"
	case session.RoleJugador:
		return "/my-team"
	case session.RoleMesa:
		return "/matches"
	default:
		return "/campeonato"
	}
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, sid string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie,
		Value:    sid,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   !h.devCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !h.devCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
