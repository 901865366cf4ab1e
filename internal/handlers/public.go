package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/mhdyaseenvattappara/yazzfolio/httpx"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/export"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/render"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/services"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/store"
	"github.com/mhdyaseenvattappara/yazzfolio/view"
	"go.uber.org/zap"
)

const handlePublic = "invoice-public"

// PublicHandler serves the marketing site and shared invoices of the single owner.
type PublicHandler struct {
	auth     *services.AuthService
	stores   *store.Stores
	inbox    *services.InboxService
	exporter *export.Exporter
	log      *zap.Logger
}

func NewPublicHandler(authSvc *services.AuthService, stores *store.Stores, inbox *services.InboxService, exporter *export.Exporter, log *zap.Logger) *PublicHandler {
	return &PublicHandler{auth: authSvc, stores: stores, inbox: inbox, exporter: exporter, log: log}
}

func (h *PublicHandler) owner(ctx context.Context) (string, error) {
	acct, err := h.auth.Owner(ctx)
	if err != nil {
		return "", err
	}
	return acct.ID, nil
}

// Site is everything the home page shows.
type Site struct {
	Profile      *models.AdminProfile   `json:"profile"`
	Portfolio    []models.PortfolioItem `json:"portfolio"`
	Services     []models.Service       `json:"services"`
	Testimonials []models.Testimonial   `json:"testimonials"`
	Timeline     []models.TimelineEvent `json:"timeline"`
	Tools        []models.Tool          `json:"tools"`
}

func (h *PublicHandler) site(ctx context.Context, owner string) (*Site, error) {
	s := &Site{Profile: &models.AdminProfile{}}
	p, err := h.stores.Profiles.Get(ctx, owner, owner)
	switch {
	case err == nil:
		s.Profile = p
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}
	if s.Portfolio, err = h.stores.Portfolio.List(ctx, owner, byOrder); err != nil {
		return nil, err
	}
	if s.Services, err = h.stores.Services.List(ctx, owner, byOrder); err != nil {
		return nil, err
	}
	if s.Testimonials, err = h.stores.Testimonials.List(ctx, owner, byNewest); err != nil {
		return nil, err
	}
	if s.Timeline, err = h.stores.Timeline.List(ctx, owner, byOrder); err != nil {
		return nil, err
	}
	if s.Tools, err = h.stores.Tools.List(ctx, owner, byOrder); err != nil {
		return nil, err
	}
	return s, nil
}

// Home renders the marketing page. Before the admin account exists it shows an empty site.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	site := &Site{Profile: &models.AdminProfile{}}
	owner, err := h.owner(r.Context())
	if err == nil {
		site, err = h.site(r.Context(), owner)
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		failPage(w, r, h.log, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, site)
		return
	}
	if err := view.Render(w, r, "index.html", map[string]any{"Site": site}); err != nil {
		h.log.Error("render home", zap.Error(err))
	}
}

func (h *PublicHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	owner, err := h.owner(r.Context())
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	item, err := h.stores.Portfolio.Get(r.Context(), owner, r.PathValue("id"))
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, item)
		return
	}
	if err := view.Render(w, r, "portfolio.html", map[string]any{"Item": item}); err != nil {
		h.log.Error("render portfolio item", zap.Error(err))
	}
}

func (h *PublicHandler) invoice(r *http.Request) (*models.Invoice, error) {
	owner, err := h.owner(r.Context())
	if err != nil {
		return nil, err
	}
	return h.stores.Invoices.Get(r.Context(), owner, r.PathValue("id"))
}

// Invoice shows a shared invoice with download links.
func (h *PublicHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoice(r)
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	page, err := render.Layout(inv, inv.TemplateID, handlePublic)
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"invoice": inv, "page": page})
		return
	}
	if err := view.Render(w, r, "invoice.html", map[string]any{"Invoice": inv, "Page": page}); err != nil {
		h.log.Error("render public invoice", zap.Error(err))
	}
}

func (h *PublicHandler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	h.exportInvoice(w, r, "pdf")
}

func (h *PublicHandler) InvoiceImage(w http.ResponseWriter, r *http.Request) {
	h.exportInvoice(w, r, "jpg")
}

func (h *PublicHandler) exportInvoice(w http.ResponseWriter, r *http.Request, format string) {
	inv, err := h.invoice(r)
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	page, err := render.Layout(inv, inv.TemplateID, handleExport)
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	sendExport(w, r, h.exporter, h.log, page, format)
}

// Contact stores a message from the public contact form.
func (h *PublicHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if httpx.WantsJSON(r) {
		if err := httpx.DecodeJSON(r, &msg); err != nil {
			notify(w, r, http.StatusBadRequest, "bad_request", nil)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		msg.Name = r.FormValue("name")
		msg.Email = r.FormValue("email")
		msg.Subject = r.FormValue("subject")
		msg.Message = r.FormValue("message")
	}

	owner, err := h.owner(r.Context())
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	v, err := h.inbox.Submit(r.Context(), owner, &msg)
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if !v.Empty() {
		if httpx.WantsJSON(r) {
			invalid(w, r, v)
			return
		}
		http.Redirect(w, r, "/?contact=invalid#contact", http.StatusSeeOther)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, map[string]any{"id": msg.ID, "message": "message_sent"})
		return
	}
	http.Redirect(w, r, "/?contact=sent#contact", http.StatusSeeOther)
}

func Health(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
