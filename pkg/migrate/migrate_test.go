package migrate_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/crmgraphql-backend/pkg/config"
	"github.com/angelmondragon/crmgraphql-backend/pkg/logger"
	"github.com/angelmondragon/crmgraphql-backend/pkg/migrate"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "001_bad_version.sql"), "-- +goose Up\n-- +goose Down\n")

	err := migrate.ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "invalid migration filename") {
		t.Fatalf("expected filename error, got %v", err)
	}
}

func TestValidateDirRejectsMissingDownSection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "20250612093000_no_down.sql"), "-- +goose Up\nSELECT 1;\n")

	err := migrate.ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "+goose Down") {
		t.Fatalf("expected missing down error, got %v", err)
	}
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	dir := t.TempDir()

	path, err := migrate.CreateSQLMigration(dir, "Add Client Notes!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_client_notes.sql") {
		t.Fatalf("unexpected filename %q", path)
	}

	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("created migration failed validation: %v", err)
	}
}

func TestMaybeRunDevSkipsOutsideDev(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "migrate-test"})

	cases := []struct {
		name string
		cfg  config.Config
	}{
		{
			name: "production env",
			cfg: config.Config{
				App:          config.AppConfig{Env: "production"},
				FeatureFlags: config.FeatureFlagsConfig{AutoMigrate: true},
			},
		},
		{
			name: "flag disabled",
			cfg: config.Config{
				App:          config.AppConfig{Env: "dev"},
				FeatureFlags: config.FeatureFlagsConfig{AutoMigrate: false},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// a nil client proves the DB is never touched on the skip path
			if err := migrate.MaybeRunDev(context.Background(), &tc.cfg, logg, nil); err != nil {
				t.Fatalf("expected skip, got %v", err)
			}
		})
	}
}
