package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mhdyaseenvattappara/yazzfolio/auth"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/db"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/export"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/handlers"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/mail"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/policy"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/render"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/services"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const owner = "owner-1"

var ctxBG = context.Background()

type sentMail struct{ msgs []mail.Message }

func (s *sentMail) Send(_ context.Context, msg mail.Message) error {
	s.msgs = append(s.msgs, msg)
	return nil
}

type testEnv struct {
	stores   *store.Stores
	invoices *services.InvoiceService
	inbox    *services.InboxService
	authSvc  *services.AuthService
	exporter *export.Exporter
	mailer   *sentMail
	mux      *http.ServeMux
}

func newEnv(t *testing.T, loader render.ImageLoader) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	log := zap.NewNop()
	e := &testEnv{stores: store.NewGormStores(conn), mailer: &sentMail{}, mux: http.NewServeMux()}
	e.invoices = services.NewInvoiceService(e.stores.Invoices, e.stores.Profiles)
	e.inbox = services.NewInboxService(e.stores.Messages, e.mailer)
	e.authSvc = services.NewAuthService(e.stores.Accounts, "", nil)
	e.exporter = export.NewExporter(loader, log)

	authz := policy.NewAuthGate()
	ownership := policy.NewOwnershipPolicy()
	authz.RegisterPolicy("invoices", ownership)
	for _, c := range handlers.ContentCollections {
		authz.RegisterPolicy(c, ownership)
	}

	ih := handlers.NewInvoiceHandler(e.invoices, e.exporter, authz, log)
	e.mux.HandleFunc("GET /admin/invoices", ih.List)
	e.mux.HandleFunc("GET /admin/invoices/new", ih.New)
	e.mux.HandleFunc("POST /admin/invoices", ih.Save)
	e.mux.HandleFunc("GET /admin/invoices/{id}/edit", ih.Edit)
	e.mux.HandleFunc("POST /admin/invoices/{id}/status", ih.Status)
	e.mux.HandleFunc("POST /admin/invoices/{id}/delete", ih.Delete)
	e.mux.HandleFunc("POST /admin/invoices/preview", ih.Preview)
	e.mux.HandleFunc("POST /admin/invoices/export", ih.Export)
	e.mux.HandleFunc("GET /admin/invoices/{id}/pdf", ih.PDF)

	ch := handlers.NewContentHandler(e.stores, authz, log)
	e.mux.HandleFunc("GET /admin/api/{collection}", ch.List)
	e.mux.HandleFunc("POST /admin/api/{collection}", ch.Create)
	e.mux.HandleFunc("GET /admin/api/{collection}/{id}", ch.Get)
	e.mux.HandleFunc("PUT /admin/api/{collection}/{id}", ch.Replace)
	e.mux.HandleFunc("DELETE /admin/api/{collection}/{id}", ch.Delete)

	inh := handlers.NewInboxHandler(e.inbox, authz, log)
	e.mux.HandleFunc("POST /admin/api/messages/{id}/read", inh.ToggleRead)
	e.mux.HandleFunc("POST /admin/api/messages/{id}/reply", inh.Reply)

	ph := handlers.NewPublicHandler(e.authSvc, e.stores, e.inbox, e.exporter, log)
	e.mux.HandleFunc("GET /{$}", ph.Home)
	e.mux.HandleFunc("GET /invoice/{id}", ph.Invoice)
	e.mux.HandleFunc("POST /contact", ph.Contact)

	dh := handlers.NewDashboardHandler(e.invoices, e.inbox, e.stores, log)
	e.mux.HandleFunc("GET /admin", dh.Show)

	prof := handlers.NewProfileHandler(e.stores.Profiles, log)
	e.mux.HandleFunc("GET /admin/api/profile", prof.Edit)
	e.mux.HandleFunc("PUT /admin/api/profile", prof.Update)
	return e
}

// do sends a JSON request as the given owner; an empty owner is anonymous.
func (e *testEnv) do(t *testing.T, as, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != "" {
		req = req.WithContext(auth.WithOwnerID(req.Context(), as))
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func invoiceInput(number string) services.InvoiceInput {
	return services.InvoiceInput{
		InvoiceNumber: number,
		IssuerName:    "Yazz Studio",
		ClientName:    "Acme Corp",
		ClientAddress: "1 Main St",
		Items: []models.LineItem{
			{Description: "Logo design", Quantity: 2, UnitPrice: 50},
			{Description: "Poster", Quantity: 1, UnitPrice: 30},
		},
		Tax:        10,
		Currency:   "USD",
		IssueDate:  "2024-03-01",
		DueDate:    "2024-03-31",
		Status:     "pending",
		TemplateID: "modern",
	}
}

// gatedLoader blocks every load until release is closed.
type gatedLoader struct {
	started chan struct{}
	release chan struct{}
}

func (l *gatedLoader) Load(ctx context.Context, _ string) (image.Image, error) {
	close(l.started)
	select {
	case <-l.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}
