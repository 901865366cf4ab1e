package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mhdyaseenvattappara/yazzfolio/internal/handlers"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/render"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOwner(t *testing.T, e *testEnv) string {
	t.Helper()
	acct := &models.Account{Email: "admin@example.com", PasswordHash: "hash"}
	require.NoError(t, e.stores.Accounts.Save(ctxBG, "", acct))
	return acct.ID
}

func TestPublicHandler_HomeBeforeBootstrap(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.do(t, "", http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	site := decode[handlers.Site](t, rec)
	assert.Empty(t, site.Portfolio)
}

func TestPublicHandler_Home(t *testing.T) {
	e := newEnv(t, nil)
	id := seedOwner(t, e)
	require.NoError(t, e.stores.Profiles.Save(ctxBG, id, &models.AdminProfile{Base: models.Base{ID: id}, Name: "Yazz"}))
	require.NoError(t, e.stores.Services.Save(ctxBG, id, &models.Service{Title: "Branding", Description: "Logos", Icon: models.IconPalette, Order: 2}))
	require.NoError(t, e.stores.Services.Save(ctxBG, id, &models.Service{Title: "Print", Description: "Posters", Icon: models.IconPen, Order: 1}))

	site := decode[handlers.Site](t, e.do(t, "", http.MethodGet, "/", nil))
	assert.Equal(t, "Yazz", site.Profile.Name)
	require.Len(t, site.Services, 2)
	assert.Equal(t, "Print", site.Services[0].Title)
}

func TestPublicHandler_Contact(t *testing.T) {
	e := newEnv(t, nil)

	msg := map[string]string{"name": "Ana", "email": "ana@example.com", "message": "Hello"}
	assert.Equal(t, http.StatusNotFound, e.do(t, "", http.MethodPost, "/contact", msg).Code)

	id := seedOwner(t, e)
	assert.Equal(t, http.StatusBadRequest, e.do(t, "", http.MethodPost, "/contact", map[string]string{"name": "Ana", "email": "nope"}).Code)

	rec := e.do(t, "", http.MethodPost, "/contact", msg)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	unread, err := e.inbox.Unread(ctxBG, id)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestPublicHandler_Invoice(t *testing.T) {
	e := newEnv(t, nil)
	id := seedOwner(t, e)
	inv, v := invoiceInput("005").Build()
	require.Empty(t, v)
	require.NoError(t, e.invoices.Save(ctxBG, id, inv))

	rec := e.do(t, "", http.MethodGet, "/invoice/"+inv.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[struct {
		Invoice models.Invoice `json:"invoice"`
		Page    render.Page    `json:"page"`
	}](t, rec)
	assert.Equal(t, "005", got.Invoice.InvoiceNumber)
	assert.Equal(t, "invoice-public", got.Page.Handle)

	assert.Equal(t, http.StatusNotFound, e.do(t, "", http.MethodGet, "/invoice/nope", nil).Code)
}

func TestDashboardHandler_Show(t *testing.T) {
	e := newEnv(t, nil)
	for i, status := range []string{"paid", "pending", "paid"} {
		in := invoiceInput([]string{"001", "002", "003"}[i])
		in.Status = status
		require.Equal(t, http.StatusCreated, e.do(t, owner, http.MethodPost, "/admin/invoices", in).Code)
	}
	seedMessage(t, e)

	rec := e.do(t, owner, http.MethodGet, "/admin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[struct {
		Revenue        services.Revenue `json:"revenue"`
		Unread         int              `json:"unread"`
		RecentInvoices []models.Invoice `json:"recent_invoices"`
	}](t, rec)
	assert.InDelta(t, 286.0, stats.Revenue.Paid, 0.001)
	assert.InDelta(t, 143.0, stats.Revenue.Pending, 0.001)
	assert.Equal(t, 3, stats.Revenue.Count)
	assert.Equal(t, 1, stats.Unread)
	require.Len(t, stats.RecentInvoices, 3)
	assert.Equal(t, "003", stats.RecentInvoices[0].InvoiceNumber)
}

func TestProfileHandler_Update(t *testing.T) {
	e := newEnv(t, nil)

	rec := e.do(t, owner, http.MethodPut, "/admin/api/profile", map[string]any{"name": "Yazz", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, owner, http.MethodPut, "/admin/api/profile", map[string]any{"name": "Yazz", "email": "hi@yazz.studio", "address": "Kochi"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[models.AdminProfile](t, e.do(t, owner, http.MethodGet, "/admin/api/profile", nil))
	assert.Equal(t, owner, got.ID)
	assert.Equal(t, "Kochi", got.Address)

	// new drafts copy the issuer defaults
	draft := decode[services.InvoiceInput](t, e.do(t, owner, http.MethodGet, "/admin/invoices/new", nil))
	assert.Equal(t, "Yazz", draft.IssuerName)
	assert.Equal(t, "hi@yazz.studio", draft.IssuerEmail)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
