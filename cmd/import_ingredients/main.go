// Command import_ingredients loads a supplier price list (CSV or PDF) into the
// ingredient library, creating new ingredients and repricing existing ones.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"kitchenos/internal/config"
	"kitchenos/internal/db"
	"kitchenos/internal/pricelist"
	"kitchenos/internal/store"
)

var (
	loadConfigFunc = config.Load
	openDatabase   = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		return db.Configure(cfg)
	}
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import_ingredients <price-list.csv|price-list.pdf>")
		os.Exit(2)
	}

	if err := run(context.Background(), os.Args[1], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string, out io.Writer) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("price list path must not be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read price list: %w", err)
	}

	result, err := pricelist.Parse(filepath.Base(path), data)
	if err != nil {
		return fmt.Errorf("parse price list: %w", err)
	}

	cfg, err := loadConfigFunc()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := openDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	summary, err := pricelist.Import(ctx, store.NewGorm(database), result.Entries)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Fprintf(out, "Imported %s: %d created, %d updated\n", filepath.Base(path), summary.Created, summary.Updated)
	for _, skipped := range result.Skipped {
		fmt.Fprintf(out, "skipped %s\n", skipped.Error())
	}
	for _, failed := range summary.Failed {
		fmt.Fprintf(out, "failed %s\n", failed.Error())
	}
	return nil
}
