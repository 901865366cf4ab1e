package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/mhdyaseenvattappara/yazzfolio/auth"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/ai"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/config"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/db"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/export"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/logging"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/mail"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/media"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/policy"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/store"
	"go.uber.org/zap"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Seed the admin's content from SEED_FILE and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logging.New(cfg.App.Dev, cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) (err error) {
	ctx := context.Background()

	var closers []io.Closer
	defer func() {
		if cerr := closeAll(closers); cerr != nil {
			err = multierror.Append(err, cerr)
		}
	}()

	stores, closer, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	closers = append(closers, closer)

	if *migrateOnlyFlag {
		log.Info("migrations completed")
		return nil
	}

	var seed *db.SeedData
	if cfg.App.SeedFile != "" {
		if seed, err = db.LoadSeedFile(cfg.App.SeedFile); err != nil {
			return err
		}
	}
	seedOwner := func(ctx context.Context, acct *models.Account) error {
		return db.Seed(ctx, stores, acct.ID, seed)
	}

	uploader, err := media.New(ctx, cfg.Media, log.Named("media"))
	if err != nil {
		return err
	}
	if c, ok := uploader.(io.Closer); ok {
		closers = append(closers, c)
	}

	routerCfg := policy.NewRouterConfig(policy.Deps{
		Stores:           stores,
		Mailer:           newMailer(cfg.Mail, log),
		Uploader:         uploader,
		Assistant:        ai.New(cfg.AI, log.Named("ai")),
		Loader:           export.NewHTTPLoader(nil),
		AdminEmail:       cfg.App.AdminEmail,
		Log:              log,
		OnAccountCreated: seedOwner,
	})

	if *seedOnlyFlag {
		acct, err := routerCfg.AuthService.Owner(ctx)
		if err != nil {
			return fmt.Errorf("seed: no admin account yet: %w", err)
		}
		if err := seedOwner(ctx, acct); err != nil {
			return err
		}
		log.Info("seeding completed", zap.String("owner", acct.ID))
		return nil
	}

	auth.SetSecret(cfg.App.SessionSecret)
	auth.SetOwnerVerifier(routerCfg.AuthService.Exists)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      NewApp(routerCfg, log),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port), zap.Bool("dev", cfg.App.Dev), zap.String("store", cfg.Store.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case <-quit:
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped gracefully")
	return nil
}

// openStores connects the configured backend and returns the collections with
// a closer for the underlying connection.
func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*store.Stores, io.Closer, error) {
	switch cfg.Store.Backend {
	case "firestore":
		client, err := db.OpenFirestore(ctx, cfg.Store)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using firestore", zap.String("project", cfg.Store.FirebaseProjectID))
		return store.NewFirestoreStores(client), client, nil

	case "sql", "":
		conn, err := db.Open(cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		if cfg.App.Migrations || *migrateOnlyFlag {
			if err := db.Migrate(conn); err != nil {
				return nil, nil, err
			}
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, nil, err
		}
		log.Info("using sql", zap.String("driver", cfg.Database.Driver), zap.String("db", cfg.Database.DBName))
		return store.NewGormStores(conn), sqlDB, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Store.Backend)
}

// newMailer sends through SendGrid when a key is configured and only logs otherwise.
func newMailer(cfg config.MailConfig, log *zap.Logger) mail.Sender {
	if cfg.SendGridAPIKey == "" {
		log.Warn("SENDGRID_API_KEY not set, replies are logged instead of sent")
		return mail.NewLogSender(log.Named("mail"))
	}
	return mail.NewSendGridSender(cfg.SendGridAPIKey, cfg.From, "")
}

func closeAll(closers []io.Closer) error {
	var result *multierror.Error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
