package policy

import (
	"github.com/mhdyaseenvattappara/yazzfolio/internal/export"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/handlers"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/mail"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/media"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/render"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/services"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/store"
	"go.uber.org/zap"
)

// Deps are the collaborators built by main before the router.
type Deps struct {
	Stores     *store.Stores
	Mailer     mail.Sender
	Uploader   media.Uploader
	Assistant  handlers.Assistant
	Loader     render.ImageLoader
	AdminEmail string
	Log        *zap.Logger

	// OnAccountCreated runs after the admin account is bootstrapped, e.g. to seed content.
	OnAccountCreated services.AccountCreatedFunc
}

// RouterConfig holds configured handlers and middleware for the application.
type RouterConfig struct {
	// AuthGate provides authorization checks and middleware
	AuthGate *AuthGate

	AuthHandler      *handlers.AuthHandler
	PublicHandler    *handlers.PublicHandler
	DashboardHandler *handlers.DashboardHandler
	InvoiceHandler   *handlers.InvoiceHandler
	ContentHandler   *handlers.ContentHandler
	InboxHandler     *handlers.InboxHandler
	ProfileHandler   *handlers.ProfileHandler
	AIHandler        *handlers.AIHandler
	UploadHandler    *handlers.UploadHandler

	AuthService    *services.AuthService
	InvoiceService *services.InvoiceService
	Exporter       *export.Exporter
}

// NewRouterConfig wires the gate, its policies, services and handlers.
func NewRouterConfig(d Deps) *RouterConfig {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	// every resource is owned by the signed-in account
	authGate := NewAuthGate()
	ownershipPolicy := NewOwnershipPolicy()
	authGate.RegisterPolicy(store.CollectionInvoices, ownershipPolicy)
	for _, c := range handlers.ContentCollections {
		authGate.RegisterPolicy(c, ownershipPolicy)
	}

	authService := services.NewAuthService(d.Stores.Accounts, d.AdminEmail, d.OnAccountCreated)
	invoiceService := services.NewInvoiceService(d.Stores.Invoices, d.Stores.Profiles)
	inboxService := services.NewInboxService(d.Stores.Messages, d.Mailer)
	exporter := export.NewExporter(d.Loader, log.Named("export"))

	return &RouterConfig{
		AuthGate:         authGate,
		AuthHandler:      handlers.NewAuthHandler(authService, log),
		PublicHandler:    handlers.NewPublicHandler(authService, d.Stores, inboxService, exporter, log),
		DashboardHandler: handlers.NewDashboardHandler(invoiceService, inboxService, d.Stores, log),
		InvoiceHandler:   handlers.NewInvoiceHandler(invoiceService, exporter, authGate, log),
		ContentHandler:   handlers.NewContentHandler(d.Stores, authGate, log),
		InboxHandler:     handlers.NewInboxHandler(inboxService, authGate, log),
		ProfileHandler:   handlers.NewProfileHandler(d.Stores.Profiles, log),
		AIHandler:        handlers.NewAIHandler(d.Assistant, log.Named("ai")),
		UploadHandler:    handlers.NewUploadHandler(d.Uploader, log.Named("media")),
		AuthService:      authService,
		InvoiceService:   invoiceService,
		Exporter:         exporter,
	}
}
