package handlers

import (
	"errors"
	"net/http"

	"github.com/mhdyaseenvattappara/yazzfolio/auth"
	"github.com/mhdyaseenvattappara/yazzfolio/httpx"
	"github.com/mhdyaseenvattappara/yazzfolio/i18n"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/services"
	"github.com/mhdyaseenvattappara/yazzfolio/view"
	"go.uber.org/zap"
)

type AuthHandler struct {
	svc *services.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login shows the form (GET) or signs the admin in (POST). The first login
// on an empty store creates the account.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if _, ok := auth.OwnerIDFromContext(r.Context()); ok {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		view.Render(w, r, "login.html", nil)
		return
	}

	var req loginRequest
	if httpx.WantsJSON(r) {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			notify(w, r, http.StatusBadRequest, "bad_request", nil)
			return
		}
	} else {
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
	}

	acct, created, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) && !errors.Is(err, services.ErrWeakPassword) {
			h.log.Error("login failed", zap.Error(err))
		}
		status, code := errorStatus(err)
		if httpx.WantsJSON(r) {
			notify(w, r, status, code, nil)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		view.Render(w, r, "login.html", map[string]any{
			"Error": i18n.T(lang(r), code),
			"Email": req.Email,
		})
		return
	}
	if created {
		h.log.Info("admin account created", zap.String("email", acct.Email))
	}

	auth.CreateSession(w, acct.ID)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"id": acct.ID, "email": acct.Email, "created": created})
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
