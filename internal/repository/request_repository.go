package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/deckflow-admin/internal/domain"
)

// RequestRepository encapsulates publication request persistence.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.Request) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	GetDetailByID(ctx context.Context, id string) (*domain.RequestDetail, error)
	ListDetails(ctx context.Context, limit, offset int) ([]domain.RequestDetail, error)
	CountAll(ctx context.Context) (int64, error)
	ListSummaries(ctx context.Context) ([]domain.PublicRequestSummary, error)
	// MarkReviewed performs the conditional transition out of PENDING and
	// returns pgx.ErrNoRows when no pending row matched.
	MarkReviewed(ctx context.Context, id string, status domain.RequestStatus, reviewerID string, note *string) (*domain.Request, error)
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository returns a Postgres-backed implementation.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

func (r *requestRepository) Create(ctx context.Context, request *domain.Request) error {
	const query = `
        INSERT INTO requests (deck_id, user_id, status)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		request.DeckID,
		request.UserID,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	const query = `
        SELECT id, deck_id, user_id, status, reviewed_by, review_note, created_at, updated_at
        FROM requests WHERE id=$1`
	var req domain.Request
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.DeckID,
		&req.UserID,
		&req.Status,
		&req.ReviewedBy,
		&req.ReviewNote,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

const detailColumns = `
        r.id, r.deck_id, r.user_id, r.status, r.reviewed_by, r.review_note, r.created_at, r.updated_at,
        d.id, d.name, d.description, d.owner_user_id, d.cards_count, d.created_at,
        u.id, u.name, u.email, u.avatar_url, u.role, u.created_at, u.updated_at`

func (r *requestRepository) GetDetailByID(ctx context.Context, id string) (*domain.RequestDetail, error) {
	query := `
        SELECT ` + detailColumns + `
        FROM requests r
        JOIN decks d ON d.id = r.deck_id
        JOIN users u ON u.id = r.user_id
        WHERE r.id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	detail, err := scanRequestDetail(row)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *requestRepository) ListDetails(ctx context.Context, limit, offset int) ([]domain.RequestDetail, error) {
	query := `
        SELECT ` + detailColumns + `
        FROM requests r
        JOIN decks d ON d.id = r.deck_id
        JOIN users u ON u.id = r.user_id
        ORDER BY r.created_at DESC
        LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RequestDetail
	for rows.Next() {
		detail, err := scanRequestDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *detail)
	}
	return result, rows.Err()
}

func (r *requestRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM requests`).Scan(&count)
	return count, err
}

func (r *requestRepository) ListSummaries(ctx context.Context) ([]domain.PublicRequestSummary, error) {
	const query = `
        SELECT r.id, r.deck_id, r.user_id, r.status, r.reviewed_by, r.review_note, r.created_at, r.updated_at,
               d.name, d.cards_count, u.name, u.avatar_url
        FROM requests r
        JOIN decks d ON d.id = r.deck_id
        JOIN users u ON u.id = d.owner_user_id
        ORDER BY r.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PublicRequestSummary
	for rows.Next() {
		var s domain.PublicRequestSummary
		if err := rows.Scan(
			&s.ID,
			&s.DeckID,
			&s.UserID,
			&s.Status,
			&s.ReviewedBy,
			&s.ReviewNote,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.DeckName,
			&s.CardsCount,
			&s.OwnerName,
			&s.OwnerAvatar,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *requestRepository) MarkReviewed(ctx context.Context, id string, status domain.RequestStatus, reviewerID string, note *string) (*domain.Request, error) {
	const query = `
        UPDATE requests
        SET status=$1, reviewed_by=$2, review_note=$3, updated_at=NOW()
        WHERE id=$4 AND status=$5
        RETURNING id, deck_id, user_id, status, reviewed_by, review_note, created_at, updated_at`
	var req domain.Request
	if err := r.pool.QueryRow(ctx, query, status, reviewerID, note, id, domain.RequestStatusPending).Scan(
		&req.ID,
		&req.DeckID,
		&req.UserID,
		&req.Status,
		&req.ReviewedBy,
		&req.ReviewNote,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func scanRequestDetail(row pgx.Row) (*domain.RequestDetail, error) {
	var detail domain.RequestDetail
	if err := row.Scan(
		&detail.ID,
		&detail.DeckID,
		&detail.UserID,
		&detail.Status,
		&detail.ReviewedBy,
		&detail.ReviewNote,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.Deck.ID,
		&detail.Deck.Name,
		&detail.Deck.Description,
		&detail.Deck.OwnerID,
		&detail.Deck.CardsCount,
		&detail.Deck.CreatedAt,
		&detail.Requester.ID,
		&detail.Requester.Name,
		&detail.Requester.Email,
		&detail.Requester.AvatarURL,
		&detail.Requester.Role,
		&detail.Requester.CreatedAt,
		&detail.Requester.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &detail, nil
}
