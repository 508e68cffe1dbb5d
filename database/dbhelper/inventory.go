package dbhelper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/store"
)

func scanInventoryItem(row interface{ Scan(...interface{}) error }) (models.InventoryItem, error) {
	var item models.InventoryItem
	var offers []byte
	err := row.Scan(&item.ID, &item.BranchID, &item.Name, &item.Unit,
		&item.Stock, &item.MinStock, &item.MaxStock, &item.Cost, &offers)
	if err != nil {
		return models.InventoryItem{}, err
	}
	if err := unmarshalJSON(offers, &item.SupplierOffers); err != nil {
		return models.InventoryItem{}, err
	}
	return item, nil
}

func (s *PgStore) GetInventoryItem(ctx context.Context, branchID, itemID uuid.UUID) (models.InventoryItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, branch_id, name, unit, stock, min_stock, max_stock, cost, supplier_offers
		FROM inventory_items
		WHERE id = $1 AND branch_id = $2`, itemID, branchID)

	item, err := scanInventoryItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.InventoryItem{}, fmt.Errorf("inventory item %s: %w", itemID, store.ErrNotFound)
	}
	return item, err
}

func (s *PgStore) ListInventory(ctx context.Context, branchID uuid.UUID) ([]models.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, branch_id, name, unit, stock, min_stock, max_stock, cost, supplier_offers
		FROM inventory_items
		WHERE branch_id = $1
		ORDER BY name`, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PgStore) UpsertInventoryItem(ctx context.Context, item models.InventoryItem) error {
	offers, err := marshalJSON(item.SupplierOffers)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO inventory_items (id, branch_id, name, unit, stock, min_stock, max_stock, cost, supplier_offers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			branch_id = EXCLUDED.branch_id,
			name = EXCLUDED.name,
			unit = EXCLUDED.unit,
			stock = EXCLUDED.stock,
			min_stock = EXCLUDED.min_stock,
			max_stock = EXCLUDED.max_stock,
			cost = EXCLUDED.cost,
			supplier_offers = EXCLUDED.supplier_offers`,
		item.ID, item.BranchID, item.Name, item.Unit, item.Stock,
		item.MinStock, item.MaxStock, item.Cost, offers)
	return err
}

// deductStockTx subtracts the flattened requirements inside the given
// transaction. Unknown item ids are skipped and reported, not failed:
// the sale proceeds under-deducted (see the ledger for where this is
// surfaced).
func deductStockTx(ctx context.Context, tx *sql.Tx, branchID uuid.UUID, qty map[uuid.UUID]float64) ([]models.InventoryItem, []uuid.UUID, error) {
	var touched []models.InventoryItem
	var missing []uuid.UUID

	for itemID, amount := range qty {
		row := tx.QueryRowContext(ctx, `
			UPDATE inventory_items
			SET stock = stock - $1
			WHERE id = $2 AND branch_id = $3
			RETURNING id, branch_id, name, unit, stock, min_stock, max_stock, cost, supplier_offers`,
			amount, itemID, branchID)

		item, err := scanInventoryItem(row)
		if errors.Is(err, sql.ErrNoRows) {
			missing = append(missing, itemID)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		touched = append(touched, item)
	}
	return touched, missing, nil
}

func (s *PgStore) DeductStock(ctx context.Context, branchID uuid.UUID, qty map[uuid.UUID]float64) ([]models.InventoryItem, []uuid.UUID, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	touched, missing, err := deductStockTx(ctx, tx, branchID, qty)
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return touched, missing, nil
}
