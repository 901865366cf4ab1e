package handlers

import (
	"errors"
	"net/http"

	"github.com/mhdyaseenvattappara/yazzfolio/httpx"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/store"
	"github.com/mhdyaseenvattappara/yazzfolio/validation"
	"github.com/mhdyaseenvattappara/yazzfolio/view"
	"go.uber.org/zap"
)

// ProfileHandler edits the owner's public identity, which also provides the
// issuer defaults of new invoices.
type ProfileHandler struct {
	profiles store.Collection[models.AdminProfile]
	log      *zap.Logger
}

func NewProfileHandler(profiles store.Collection[models.AdminProfile], log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, log: log}
}

func (h *ProfileHandler) current(r *http.Request) (*models.AdminProfile, error) {
	owner := ownerID(r)
	p, err := h.profiles.Get(r.Context(), owner, owner)
	if errors.Is(err, store.ErrNotFound) {
		return &models.AdminProfile{Base: models.Base{ID: owner}}, nil
	}
	return p, err
}

// Edit shows the settings form, or the profile as JSON.
func (h *ProfileHandler) Edit(w http.ResponseWriter, r *http.Request) {
	p, err := h.current(r)
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, p)
		return
	}
	if err := view.Render(w, r, "admin/settings.html", map[string]any{"Profile": p}); err != nil {
		h.log.Error("render settings", zap.Error(err))
	}
}

// Update saves the profile from a form post or a JSON body.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := h.current(r)
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}

	if httpx.WantsJSON(r) {
		if err := httpx.DecodeJSON(r, p); err != nil {
			notify(w, r, http.StatusBadRequest, "bad_request", nil)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		p.Name = r.FormValue("name")
		p.Title = r.FormValue("title")
		p.Bio = r.FormValue("bio")
		p.Email = r.FormValue("email")
		p.Phone = r.FormValue("phone")
		p.Address = r.FormValue("address")
		p.LogoURL = r.FormValue("logo_url")
		p.AvatarURL = r.FormValue("avatar_url")
	}
	p.ID = ownerID(r)

	v := make(validation.Violations)
	validation.Struct(p, v)
	if !v.Empty() {
		if httpx.WantsJSON(r) {
			invalid(w, r, v)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		if err := view.Render(w, r, "admin/settings.html", map[string]any{"Profile": p, "Errors": v}); err != nil {
			h.log.Error("render settings", zap.Error(err))
		}
		return
	}

	if err := h.profiles.Save(r.Context(), ownerID(r), p); err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, p)
		return
	}
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}
