package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DATABASE_DSN", "DB_NAME", "STORE_BACKEND", "MEDIA_BACKEND", "DEV"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q", cfg.Server.Port)
	}
	if cfg.Store.Backend != "sql" {
		t.Errorf("Store.Backend = %q", cfg.Store.Backend)
	}
	if got := cfg.Database.DSN(); got != "yazzfolio.db" {
		t.Errorf("sqlite DSN = %q", got)
	}
	if !cfg.App.Dev {
		t.Error("expected dev mode by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("DB_HOST", "db")
	for _, k := range []string{"DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE"} {
		t.Setenv(k, "")
	}
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("DEV", "no")
	t.Setenv("STORE_BACKEND", "firestore")

	cfg := Load()
	if cfg.Server.Port != "9000" {
		t.Errorf("Port = %q", cfg.Server.Port)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("invalid DB_PORT should fall back to default, got %d", cfg.Database.Port)
	}
	if cfg.App.Dev {
		t.Error("DEV=no should disable dev mode")
	}
	if cfg.Store.Backend != "firestore" {
		t.Errorf("Store.Backend = %q", cfg.Store.Backend)
	}
	want := "host=db port=5432 user=yazzfolio password=yazzfolio dbname=yazzfolio sslmode=disable"
	if got := cfg.Database.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}

func TestDSNOverride(t *testing.T) {
	d := DatabaseConfig{Driver: "postgres", URL: "postgres://u:p@h/db"}
	if d.DSN() != "postgres://u:p@h/db" {
		t.Errorf("DSN override ignored: %q", d.DSN())
	}
}
