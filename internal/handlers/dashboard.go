package handlers

import (
	"net/http"

	"github.com/mhdyaseenvattappara/yazzfolio/httpx"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/services"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/store"
	"github.com/mhdyaseenvattappara/yazzfolio/view"
	"go.uber.org/zap"
)

const recentInvoices = 5

type DashboardHandler struct {
	invoices *services.InvoiceService
	inbox    *services.InboxService
	stores   *store.Stores
	log      *zap.Logger
}

func NewDashboardHandler(invoices *services.InvoiceService, inbox *services.InboxService, stores *store.Stores, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{invoices: invoices, inbox: inbox, stores: stores, log: log}
}

type dashboardStats struct {
	Revenue        services.Revenue `json:"revenue"`
	Unread         int              `json:"unread"`
	Projects       int              `json:"projects"`
	Testimonials   int              `json:"testimonials"`
	RecentInvoices []models.Invoice `json:"recent_invoices"`
}

func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := ownerID(r)

	var (
		stats dashboardStats
		err   error
	)
	if stats.Revenue, err = h.invoices.Revenue(ctx, owner); err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if stats.Unread, err = h.inbox.Unread(ctx, owner); err != nil {
		failPage(w, r, h.log, err)
		return
	}
	projects, err := h.stores.Portfolio.List(ctx, owner, store.Query{})
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	stats.Projects = len(projects)
	testimonials, err := h.stores.Testimonials.List(ctx, owner, store.Query{})
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	stats.Testimonials = len(testimonials)

	invoices, err := h.invoices.List(ctx, owner)
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if len(invoices) > recentInvoices {
		invoices = invoices[:recentInvoices]
	}
	stats.RecentInvoices = invoices

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, stats)
		return
	}
	if err := view.Render(w, r, "admin/dashboard.html", map[string]any{"Stats": stats}); err != nil {
		h.log.Error("render dashboard", zap.Error(err))
	}
}
