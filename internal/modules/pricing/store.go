// README: Quote store backed by PostgreSQL.
package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) SaveQuote(ctx context.Context, q Quote) error {
	trip, err := json.Marshal(q.Trip)
	if err != nil {
		return fmt.Errorf("encoding trip: %w", err)
	}
	result, err := json.Marshal(q.Result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO quotes (id, created_at, cheapest_option, savings, trip, result)
		VALUES ($1::uuid, $2, $3, $4, $5, $6)`,
		q.ID, q.CreatedAt, q.Result.CheapestOption, q.Result.Savings, trip, result,
	)
	return err
}

func (s *Store) GetQuote(ctx context.Context, id string) (Quote, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id::text, created_at, trip, result
		FROM quotes
		WHERE id = $1::uuid`, id,
	)

	var q Quote
	var trip, result []byte
	err := row.Scan(&q.ID, &q.CreatedAt, &trip, &result)
	if errors.Is(err, pgx.ErrNoRows) {
		return Quote{}, ErrNotFound
	}
	if err != nil {
		return Quote{}, err
	}
	if err := json.Unmarshal(trip, &q.Trip); err != nil {
		return Quote{}, fmt.Errorf("decoding trip: %w", err)
	}
	if err := json.Unmarshal(result, &q.Result); err != nil {
		return Quote{}, fmt.Errorf("decoding result: %w", err)
	}
	return q, nil
}
