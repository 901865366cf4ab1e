package main

import (
	"net/http"

	"github.com/mhdyaseenvattappara/yazzfolio/auth"
	"github.com/mhdyaseenvattappara/yazzfolio/gate"
	"github.com/mhdyaseenvattappara/yazzfolio/i18n"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/handlers"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/logging"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/policy"
	"github.com/mhdyaseenvattappara/yazzfolio/view"
	"go.uber.org/zap"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux       *http.ServeMux
	routerCfg *policy.RouterConfig
	handler   http.Handler
}

// NewApp creates a new application with all routes configured.
func NewApp(routerCfg *policy.RouterConfig, log *zap.Logger) *App {
	app := &App{
		mux:       http.NewServeMux(),
		routerCfg: routerCfg,
	}
	app.setupRoutes()

	// Apply global middleware: recovery, request log, auth context, preferences
	app.handler = logging.Recover(log)(logging.Middleware(log)(auth.Middleware(withPreferences(app.mux))))
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Public routes (no auth required)
	// ─────────────────────────────────────────────────────────────────────────
	ah := a.routerCfg.AuthHandler
	ph := a.routerCfg.PublicHandler

	a.mux.HandleFunc("GET /{$}", ph.Home)
	a.mux.HandleFunc("GET /portfolio/{id}", ph.Portfolio)
	a.mux.HandleFunc("GET /invoice/{id}", ph.Invoice)
	a.mux.HandleFunc("GET /invoice/{id}/pdf", ph.InvoicePDF)
	a.mux.HandleFunc("GET /invoice/{id}/image", ph.InvoiceImage)
	a.mux.HandleFunc("POST /contact", ph.Contact)
	a.mux.HandleFunc("GET /login", ah.Login)
	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("POST /logout", ah.Logout)
	a.mux.HandleFunc("GET /healthz", handlers.Health)

	// ─────────────────────────────────────────────────────────────────────────
	// Admin pages (session required)
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.Handle("GET /admin", a.requireAuth(a.routerCfg.DashboardHandler.Show))
	a.mux.Handle("GET /admin/inbox", a.requireAuth(a.routerCfg.InboxHandler.Index))
	a.mux.Handle("GET /admin/content/{collection}", a.requireAuth(a.routerCfg.ContentHandler.Page))

	sh := a.routerCfg.ProfileHandler
	a.mux.Handle("GET /admin/settings", a.requireAuth(sh.Edit))
	a.mux.Handle("POST /admin/settings", a.requireAuth(sh.Update))
	a.mux.Handle("GET /admin/api/profile", a.requireAuth(sh.Edit))
	a.mux.Handle("PUT /admin/api/profile", a.requireAuth(sh.Update))

	// ─────────────────────────────────────────────────────────────────────────
	// Invoices
	// ─────────────────────────────────────────────────────────────────────────
	ih := a.routerCfg.InvoiceHandler
	a.mux.Handle("GET /admin/invoices", a.requireAuth(ih.List))
	a.mux.Handle("GET /admin/invoices/new", a.requireAuth(ih.New))
	a.mux.Handle("POST /admin/invoices", a.requireAuth(ih.Save))
	a.mux.Handle("POST /admin/invoices/preview", a.requireAuth(ih.Preview))
	a.mux.Handle("POST /admin/invoices/export", a.requireAuth(ih.Export))
	a.mux.Handle("GET /admin/invoices/{id}/edit", a.requireAuth(ih.Edit))
	a.mux.Handle("POST /admin/invoices/{id}/status", a.requireAuth(ih.Status))
	a.mux.Handle("POST /admin/invoices/{id}/delete", a.requireAuth(ih.Delete))
	a.mux.Handle("GET /admin/invoices/{id}/pdf", a.requireAuth(ih.PDF))
	a.mux.Handle("GET /admin/invoices/{id}/image", a.requireAuth(ih.Image))
	a.mux.Handle("GET /admin/invoices/{id}/print", a.requireAuth(ih.Print))

	// ─────────────────────────────────────────────────────────────────────────
	// Content API: unknown collections are refused before any lookup
	// ─────────────────────────────────────────────────────────────────────────
	ch := a.routerCfg.ContentHandler
	a.mux.Handle("GET /admin/api/{collection}", a.requireContent(gate.ActionList, ch.List))
	a.mux.Handle("POST /admin/api/{collection}", a.requireContent(gate.ActionCreate, ch.Create))
	a.mux.Handle("GET /admin/api/{collection}/{id}", a.requireContent(gate.ActionView, ch.Get))
	a.mux.Handle("PUT /admin/api/{collection}/{id}", a.requireContent(gate.ActionUpdate, ch.Replace))
	a.mux.Handle("DELETE /admin/api/{collection}/{id}", a.requireContent(gate.ActionDelete, ch.Delete))

	inh := a.routerCfg.InboxHandler
	a.mux.Handle("POST /admin/api/messages/{id}/read", a.requireAuth(inh.ToggleRead))
	a.mux.Handle("POST /admin/api/messages/{id}/reply", a.requireAuth(inh.Reply))

	a.mux.Handle("POST /admin/api/ai/{flow}", a.requireAuth(a.routerCfg.AIHandler.Run))
	a.mux.Handle("POST /admin/api/uploads", a.requireAuth(a.routerCfg.UploadHandler.Upload))

	// ─────────────────────────────────────────────────────────────────────────
	// Static files
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
}

// ─────────────────────────────────────────────────────────────────────────────
// Middleware
// ─────────────────────────────────────────────────────────────────────────────

// requireAuth wraps a handler to require a signed-in owner.
func (a *App) requireAuth(h http.HandlerFunc) http.Handler {
	return auth.RequireAuth(h)
}

// requireContent adds the gate's policy check for the addressed collection.
func (a *App) requireContent(action gate.Action, h http.HandlerFunc) http.Handler {
	return auth.RequireAuth(a.routerCfg.AuthGate.RequirePolicy(handlers.Collection, action)(h))
}

// withPreferences injects language and theme preferences from cookies/query.
func withPreferences(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		if c, err := r.Cookie("lang"); err == nil && i18n.Supported(c.Value) {
			lang = c.Value
		}
		if q := r.URL.Query().Get("lang"); i18n.Supported(q) {
			lang = q
			setPreference(w, "lang", q)
		}
		ctx = i18n.WithLang(ctx, lang)

		theme := "system"
		if c, err := r.Cookie("theme"); err == nil && validTheme(c.Value) {
			theme = c.Value
		}
		if q := r.URL.Query().Get("theme"); validTheme(q) {
			theme = q
			setPreference(w, "theme", q)
		}
		ctx = view.WithTheme(ctx, theme)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validTheme(t string) bool {
	return t == "light" || t == "dark" || t == "system"
}

func setPreference(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   86400 * 365,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
