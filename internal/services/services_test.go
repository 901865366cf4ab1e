package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/mhdyaseenvattappara/yazzfolio/internal/db"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/store"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStores(t *testing.T) *store.Stores {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return store.NewGormStores(conn)
}

var ctx = context.Background()
