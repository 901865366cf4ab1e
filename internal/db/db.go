// Package db opens the configured persistence backends and seeds initial content.
package db

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/config"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const connectAttempts = 5

// Open connects to the SQL database, retrying while Postgres starts up.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
	}

	var (
		conn *gorm.DB
		err  error
	)
	for i := 0; i < connectAttempts; i++ {
		conn, err = gorm.Open(dialector, &gorm.Config{})
		if err == nil {
			break
		}
		log.Warn("database connection failed, retrying",
			zap.Int("attempt", i+1),
			zap.String("driver", cfg.Driver),
			zap.Error(err),
		)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return conn, nil
}

// Models lists every table managed by AutoMigrate.
func Models() []any {
	return []any{
		&models.Account{},
		&models.AdminProfile{},
		&models.Invoice{},
		&models.PortfolioItem{},
		&models.Testimonial{},
		&models.Service{},
		&models.TimelineEvent{},
		&models.Tool{},
		&models.ContactMessage{},
	}
}

// Migrate applies the gorm schema.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// OpenFirestore creates a Firestore client through the Firebase Admin SDK.
// Without a credentials file, application default credentials are used.
func OpenFirestore(ctx context.Context, cfg config.StoreConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return client, nil
}
