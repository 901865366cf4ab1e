package handlers

import (
	"errors"
	"net/http"

	"github.com/mhdyaseenvattappara/yazzfolio/auth"
	"github.com/mhdyaseenvattappara/yazzfolio/gate"
	"github.com/mhdyaseenvattappara/yazzfolio/httpx"
	"github.com/mhdyaseenvattappara/yazzfolio/i18n"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/ai"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/export"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/media"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/services"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/store"
	"github.com/mhdyaseenvattappara/yazzfolio/validation"
	"go.uber.org/zap"
)

func ownerID(r *http.Request) string {
	id, _ := auth.OwnerIDFromContext(r.Context())
	return id
}

func lang(r *http.Request) string {
	if l := i18n.LangFromContext(r.Context()); l != "" {
		return l
	}
	return i18n.DetectLanguage(r.Header.Get("Accept-Language"))
}

// notify writes a JSON error whose message is translated for the client.
func notify(w http.ResponseWriter, r *http.Request, status int, code string, details any) {
	httpx.JSONNotice(w, status, code, i18n.T(lang(r), code), details)
}

func invalid(w http.ResponseWriter, r *http.Request, v validation.Violations) {
	notify(w, r, http.StatusBadRequest, "invalid", v)
}

// errorStatus maps domain errors to an HTTP status and an error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, gate.ErrUnauthorized), errors.Is(err, gate.ErrNoPolicyDefined):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, export.ErrExportInProgress):
		return http.StatusConflict, "export_in_progress"
	case errors.Is(err, ai.ErrRateLimited):
		return http.StatusTooManyRequests, "ai_rate_limited"
	case errors.Is(err, ai.ErrNotConfigured):
		return http.StatusServiceUnavailable, "ai_not_configured"
	case errors.Is(err, ai.ErrEmptyResponse):
		return http.StatusBadGateway, "ai_empty_response"
	case errors.Is(err, ai.ErrInvalidImage):
		return http.StatusBadRequest, "invalid_image"
	case errors.Is(err, media.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType, "unsupported_media_type"
	case errors.Is(err, services.ErrInvalidStatus):
		return http.StatusBadRequest, "invalid_status"
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, services.ErrWeakPassword):
		return http.StatusBadRequest, "weak_password"
	}
	return http.StatusInternalServerError, "internal_error"
}

// fail logs unexpected errors and writes the mapped JSON error.
func fail(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	}
	notify(w, r, status, code, nil)
}

// failPage is fail for HTML routes: not-found and forbidden become plain pages.
func failPage(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	if httpx.WantsJSON(r) {
		fail(w, r, log, err)
		return
	}
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	}
	http.Error(w, i18n.T(lang(r), code), status)
}
