package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/mhdyaseenvattappara/yazzfolio/gate"
	"github.com/mhdyaseenvattappara/yazzfolio/httpx"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/export"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/render"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/services"
	"github.com/mhdyaseenvattappara/yazzfolio/validation"
	"github.com/mhdyaseenvattappara/yazzfolio/view"
	"go.uber.org/zap"
)

// Authorizer checks the session owner against a resource's policy.
type Authorizer interface {
	Authorize(ctx context.Context, action gate.Action, resourceType string, resource any) error
}

const resourceInvoices = "invoices"

// DOM handles of the page instances that can share one document.
const (
	handlePreview = "invoice-preview"
	handleExport  = "invoice-export"
	handlePrint   = "invoice-print"
)

var statuses = []models.InvoiceStatus{models.InvoiceStatusDraft, models.InvoiceStatusPending, models.InvoiceStatusPaid}

// maxFormBytes bounds editor posts; logos may arrive inline as data URLs.
const maxFormBytes = 10 << 20

type InvoiceHandler struct {
	svc      *services.InvoiceService
	exporter *export.Exporter
	authz    Authorizer
	log      *zap.Logger
}

func NewInvoiceHandler(svc *services.InvoiceService, exporter *export.Exporter, authz Authorizer, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, exporter: exporter, authz: authz, log: log}
}

func (h *InvoiceHandler) load(r *http.Request, action gate.Action) (*models.Invoice, error) {
	inv, err := h.svc.Get(r.Context(), ownerID(r), r.PathValue("id"))
	if err != nil {
		return nil, err
	}
	if err := h.authz.Authorize(r.Context(), action, resourceInvoices, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// input reads editor state from a JSON body or an urlencoded form.
func (h *InvoiceHandler) input(w http.ResponseWriter, r *http.Request) (services.InvoiceInput, validation.Violations, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if httpx.WantsJSON(r) {
		var in services.InvoiceInput
		if err := httpx.DecodeJSON(r, &in); err != nil {
			return in, nil, err
		}
		return in, validation.Violations{}, nil
	}
	if err := r.ParseForm(); err != nil {
		return services.InvoiceInput{}, nil, err
	}
	in, v := services.InvoiceInputFromForm(r.PostForm)
	return in, v, nil
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.List(r.Context(), ownerID(r))
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": invoices, "total": len(invoices)})
		return
	}
	if err := view.Render(w, r, "admin/invoices/index.html", map[string]any{
		"Invoices": invoices,
		"Statuses": statuses,
	}); err != nil {
		h.log.Error("render invoice list", zap.Error(err))
	}
}

// New opens the editor on a provisional draft. Nothing is stored until Save.
func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	draft, err := h.svc.NewDraft(r.Context(), ownerID(r))
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, services.InputFromInvoice(draft))
		return
	}
	h.editor(w, r, http.StatusOK, services.InputFromInvoice(draft), nil)
}

func (h *InvoiceHandler) Edit(w http.ResponseWriter, r *http.Request) {
	inv, err := h.load(r, gate.ActionUpdate)
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, services.InputFromInvoice(inv))
		return
	}
	h.editor(w, r, http.StatusOK, services.InputFromInvoice(inv), nil)
}

func (h *InvoiceHandler) editor(w http.ResponseWriter, r *http.Request, status int, in services.InvoiceInput, errs validation.Violations) {
	inv, _ := in.Build()
	page, err := render.Layout(inv, inv.TemplateID, handlePreview)
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if status != http.StatusOK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
	}
	if err := view.Render(w, r, "admin/invoices/editor.html", map[string]any{
		"Input":      in,
		"Page":       page,
		"Errors":     errs,
		"Currencies": models.Currencies,
		"Templates":  models.Templates,
		"Statuses":   statuses,
	}); err != nil {
		h.log.Error("render editor", zap.Error(err))
	}
}

// Save creates or replaces an invoice from editor state.
func (h *InvoiceHandler) Save(w http.ResponseWriter, r *http.Request) {
	in, v, err := h.input(w, r)
	if err != nil {
		notify(w, r, http.StatusBadRequest, "bad_request", nil)
		return
	}
	inv, bv := in.Build()
	for k, msg := range bv {
		if _, exists := v[k]; !exists {
			v[k] = msg
		}
	}
	if !v.Empty() {
		if httpx.WantsJSON(r) {
			invalid(w, r, v)
			return
		}
		h.editor(w, r, http.StatusBadRequest, in, v)
		return
	}

	created := inv.ID == ""
	if !created {
		existing, err := h.svc.Get(r.Context(), ownerID(r), inv.ID)
		if err == nil {
			err = h.authz.Authorize(r.Context(), gate.ActionUpdate, resourceInvoices, existing)
		}
		if err != nil {
			failPage(w, r, h.log, err)
			return
		}
	}
	if err := h.svc.Save(r.Context(), ownerID(r), inv); err != nil {
		failPage(w, r, h.log, err)
		return
	}

	if httpx.WantsJSON(r) {
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		httpx.JSON(w, status, inv)
		return
	}
	http.Redirect(w, r, "/admin/invoices", http.StatusSeeOther)
}

type statusRequest struct {
	Status models.InvoiceStatus `json:"status"`
}

// Status changes only the invoice status.
func (h *InvoiceHandler) Status(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if httpx.WantsJSON(r) {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			notify(w, r, http.StatusBadRequest, "bad_request", nil)
			return
		}
	} else {
		req.Status = models.InvoiceStatus(r.FormValue("status"))
	}

	inv, err := h.load(r, gate.ActionUpdate)
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if err := h.svc.SetStatus(r.Context(), ownerID(r), inv.ID, req.Status); err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"id": inv.ID, "status": req.Status})
		return
	}
	http.Redirect(w, r, "/admin/invoices", http.StatusSeeOther)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	inv, err := h.load(r, gate.ActionDelete)
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if err := h.svc.Delete(r.Context(), ownerID(r), inv.ID); err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if httpx.WantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/admin/invoices", http.StatusSeeOther)
}

// Preview lays out unsaved editor state. Fields that fail validation are
// rendered as parsed; the invoice is never stored.
func (h *InvoiceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	in, _, err := h.input(w, r)
	if err != nil {
		notify(w, r, http.StatusBadRequest, "bad_request", nil)
		return
	}
	inv, _ := in.Build()
	page, err := render.Layout(inv, inv.TemplateID, handlePreview)
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, page)
		return
	}
	if err := view.Partial(w, r, "admin/invoices/preview.html", map[string]any{"Page": page}); err != nil {
		h.log.Error("render preview", zap.Error(err))
	}
}

// Export renders unsaved editor state to a file without storing it.
// The format comes from ?format= (pdf or jpg).
func (h *InvoiceHandler) Export(w http.ResponseWriter, r *http.Request) {
	in, v, err := h.input(w, r)
	if err != nil {
		notify(w, r, http.StatusBadRequest, "bad_request", nil)
		return
	}
	inv, bv := in.Build()
	for k, msg := range bv {
		v[k] = msg
	}
	if !v.Empty() {
		invalid(w, r, v)
		return
	}
	page, err := render.Layout(inv, inv.TemplateID, handleExport)
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	sendExport(w, r, h.exporter, h.log, page, r.URL.Query().Get("format"))
}

func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	h.exportStored(w, r, "pdf")
}

func (h *InvoiceHandler) Image(w http.ResponseWriter, r *http.Request) {
	h.exportStored(w, r, "jpg")
}

func (h *InvoiceHandler) exportStored(w http.ResponseWriter, r *http.Request, format string) {
	inv, err := h.load(r, gate.ActionView)
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

// sendExport renders page to the requested format and writes it as a download.
// An empty format means PDF.
func sendExport(w http.ResponseWriter, r *http.Request, exporter *export.Exporter, log *zap.Logger, page *render.Page, format string) {
	var (
		f   *export.File
		err error
	)
	switch format {
	case "pdf", "":
		f, err = exporter.PDF(r.Context(), page)
	case "jpg", "jpeg", "image":
		f, err = exporter.Image(r.Context(), page)
	default:
		notify(w, r, http.StatusBadRequest, "bad_request", map[string]string{"format": "invalid"})
		return
	}
	if err != nil {
		if !errors.Is(err, export.ErrExportInProgress) {
			log.Error("export failed", zap.String("invoice", page.InvoiceNumber), zap.Error(err))
			notify(w, r, http.StatusInternalServerError, "export_failed", nil)
			return
		}
		fail(w, r, log, err)
		return
	}
	httpx.Attachment(w, f.ContentType, f.Filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f.Body)
}

// Print renders the document alone; the page opens the print dialog itself.
func (h *InvoiceHandler) Print(w http.ResponseWriter, r *http.Request) {
	inv, err := h.load(r, gate.ActionView)
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	page, err := render.Layout(inv, inv.TemplateID, handlePrint)
	if err != nil {
		failPage(w, r, h.log, err)
		return
	}
	if err := view.Render(w, r, "admin/invoices/print.html", map[string]any{
		"Page":    page,
		"Invoice": inv,
	}); err != nil {
		h.log.Error("render print view", zap.Error(err))
	}
}
