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

func (s *PgStore) GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, price, cost, category, production_area, ingredients, is_combo, combo_items, is_active
		FROM products
		WHERE id = $1`, id)

	var p models.Product
	var ingredients, comboItems []byte
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Cost, &p.Category, &p.ProductionArea,
		&ingredients, &p.IsCombo, &comboItems, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, fmt.Errorf("product %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return models.Product{}, err
	}

	if err := unmarshalJSON(ingredients, &p.Ingredients); err != nil {
		return models.Product{}, err
	}
	if err := unmarshalJSON(comboItems, &p.ComboItems); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *PgStore) UpsertProduct(ctx context.Context, p models.Product) error {
	ingredients, err := marshalJSON(p.Ingredients)
	if err != nil {
		return err
	}
	comboItems, err := marshalJSON(p.ComboItems)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, cost, category, production_area, ingredients, is_combo, combo_items, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			cost = EXCLUDED.cost,
			category = EXCLUDED.category,
			production_area = EXCLUDED.production_area,
			ingredients = EXCLUDED.ingredients,
			is_combo = EXCLUDED.is_combo,
			combo_items = EXCLUDED.combo_items,
			is_active = EXCLUDED.is_active`,
		p.ID, p.Name, p.Price, p.Cost, p.Category, p.ProductionArea,
		ingredients, p.IsCombo, comboItems, p.IsActive)
	return err
}
