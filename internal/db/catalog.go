package db

import (
	"context"
	"fmt"

	"github.com/susu3304/posbot/internal/catalog"
)

func (db *DB) ListCatalogItems(ctx context.Context) ([]catalog.Item, error) {
	rows, err := db.pool.Query(ctx,
		"SELECT name, price FROM catalog_items ORDER BY position, name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []catalog.Item
	for rows.Next() {
		var it catalog.Item
		if err := rows.Scan(&it.Name, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// UpsertCatalogItem inserts an item or updates its price and position.
func (db *DB) UpsertCatalogItem(ctx context.Context, item catalog.Item, position int) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO catalog_items (name, price, position) VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET price = EXCLUDED.price, position = EXCLUDED.position`,
		item.Name, item.Price, position,
	)
	return err
}

// SeedCatalog writes items into an empty catalog table. It reports whether
// anything was written.
func (db *DB) SeedCatalog(ctx context.Context, c *catalog.Catalog) (bool, error) {
	var n int
	if err := db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM catalog_items").Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count catalog items: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	for i, it := range c.Items() {
		if err := db.UpsertCatalogItem(ctx, it, i); err != nil {
			return false, fmt.Errorf("failed to seed %s: %w", it.Name, err)
		}
	}
	return true, nil
}

// Catalog loads the catalog table once.
func (db *DB) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	items, err := db.ListCatalogItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}
	return catalog.New(items)
}
