// Package dbhelper is the Postgres implementation of store.Repository.
// Recipes, combo lines, supplier offers and order items are embedded
// jsonb; everything else is plain columns.
package dbhelper

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/ray-remotestate/pos/store"
)

type PgStore struct {
	db *sql.DB
}

func NewPgStore(db *sql.DB) *PgStore {
	return &PgStore{db: db}
}

var _ store.Repository = (*PgStore)(nil)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == uniqueViolation
}

func marshalJSON(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding jsonb column: %w", err)
	}
	return raw, nil
}

func unmarshalJSON(raw []byte, out interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding jsonb column: %w", err)
	}
	return nil
}
