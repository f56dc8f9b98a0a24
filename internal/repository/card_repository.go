package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/deckflow-admin/internal/domain"
)

// CardRepository encapsulates card persistence. Used by the seed loader and
// deck assembly; the admin surface only reads counts through decks.
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	GetByFront(ctx context.Context, front string) (*domain.Card, error)
}

type cardRepository struct {
	pool *pgxpool.Pool
}

// NewCardRepository returns a Postgres-backed implementation.
func NewCardRepository(pool *pgxpool.Pool) CardRepository {
	return &cardRepository{pool: pool}
}

func (r *cardRepository) Create(ctx context.Context, card *domain.Card) error {
	const query = `
        INSERT INTO cards (front, back)
        VALUES ($1, $2)
        RETURNING id`
	return r.pool.QueryRow(ctx, query, card.Front, card.Back).Scan(&card.ID)
}

func (r *cardRepository) GetByFront(ctx context.Context, front string) (*domain.Card, error) {
	const query = `SELECT id, front, back FROM cards WHERE front=$1`
	var card domain.Card
	if err := r.pool.QueryRow(ctx, query, front).Scan(&card.ID, &card.Front, &card.Back); err != nil {
		return nil, err
	}
	return &card, nil
}
