package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/deckflow-admin/internal/domain"
)

// DeckRepository encapsulates deck persistence.
type DeckRepository interface {
	Create(ctx context.Context, deck *domain.Deck) error
	GetByID(ctx context.Context, id string) (*domain.Deck, error)
	GetByName(ctx context.Context, name string) (*domain.Deck, error)
	AttachCards(ctx context.Context, deckID string, cardIDs []string) error
	CountAll(ctx context.Context) (int64, error)
}

type deckRepository struct {
	pool *pgxpool.Pool
}

// NewDeckRepository returns a Postgres-backed implementation.
func NewDeckRepository(pool *pgxpool.Pool) DeckRepository {
	return &deckRepository{pool: pool}
}

func (r *deckRepository) Create(ctx context.Context, deck *domain.Deck) error {
	const query = `
        INSERT INTO decks (name, description, owner_user_id, cards_count)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		deck.Name,
		deck.Description,
		deck.OwnerID,
		deck.CardsCount,
	).Scan(&deck.ID, &deck.CreatedAt)
}

func (r *deckRepository) GetByID(ctx context.Context, id string) (*domain.Deck, error) {
	return r.fetchSingle(ctx, `
        SELECT id, name, description, owner_user_id, cards_count, created_at
        FROM decks WHERE id=$1`, id)
}

func (r *deckRepository) GetByName(ctx context.Context, name string) (*domain.Deck, error) {
	return r.fetchSingle(ctx, `
        SELECT id, name, description, owner_user_id, cards_count, created_at
        FROM decks WHERE name=$1`, name)
}

func (r *deckRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Deck, error) {
	var deck domain.Deck
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&deck.ID,
		&deck.Name,
		&deck.Description,
		&deck.OwnerID,
		&deck.CardsCount,
		&deck.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &deck, nil
}

// AttachCards links cards to a deck and refreshes the denormalized count.
func (r *deckRepository) AttachCards(ctx context.Context, deckID string, cardIDs []string) error {
	for i, cardID := range cardIDs {
		const query = `
            INSERT INTO deck_cards (deck_id, card_id, position)
            VALUES ($1, $2, $3)
            ON CONFLICT (deck_id, card_id) DO NOTHING`
		if _, err := r.pool.Exec(ctx, query, deckID, cardID, i); err != nil {
			return err
		}
	}
	const countQuery = `
        UPDATE decks SET cards_count = (SELECT COUNT(*) FROM deck_cards WHERE deck_id=$1)
        WHERE id=$1`
	_, err := r.pool.Exec(ctx, countQuery, deckID)
	return err
}

func (r *deckRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM decks`).Scan(&count)
	return count, err
}
