package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPurchasesMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_purchases_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no purchases migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS purchases",
		"CREATE TABLE IF NOT EXISTS purchase_items",
		"FOREIGN KEY (purchase_id) REFERENCES purchases(id) ON DELETE CASCADE",
		"status     text NOT NULL DEFAULT 'Pending'",
		"CHECK (quantity > 0)",
		"CREATE INDEX IF NOT EXISTS idx_purchases_seller_id",
		"CREATE INDEX IF NOT EXISTS idx_purchase_items_purchase_id",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
