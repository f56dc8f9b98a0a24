package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/deckflow-admin/internal/domain"
)

// PackageRepository encapsulates subscription package persistence.
type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.Package) error
	Update(ctx context.Context, pkg *domain.Package) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Package, error)
	List(ctx context.Context) ([]domain.Package, error)
}

type packageRepository struct {
	pool *pgxpool.Pool
}

// NewPackageRepository returns a Postgres-backed implementation.
func NewPackageRepository(pool *pgxpool.Pool) PackageRepository {
	return &packageRepository{pool: pool}
}

const packageColumns = `id, name, type, duration_days, price, features, is_active, created_at`

func (r *packageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	const query = `
        INSERT INTO packages (name, type, duration_days, price, features, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		pkg.Name,
		pkg.Type,
		pkg.DurationDays,
		pkg.Price,
		pkg.Features,
		pkg.IsActive,
	).Scan(&pkg.ID, &pkg.CreatedAt)
}

func (r *packageRepository) Update(ctx context.Context, pkg *domain.Package) error {
	const query = `
        UPDATE packages SET name=$1, type=$2, duration_days=$3, price=$4, features=$5, is_active=$6
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		pkg.Name,
		pkg.Type,
		pkg.DurationDays,
		pkg.Price,
		pkg.Features,
		pkg.IsActive,
		pkg.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *packageRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM packages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *packageRepository) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	var pkg domain.Package
	if err := r.pool.QueryRow(ctx, `SELECT `+packageColumns+` FROM packages WHERE id=$1`, id).Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.Type,
		&pkg.DurationDays,
		&pkg.Price,
		&pkg.Features,
		&pkg.IsActive,
		&pkg.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) List(ctx context.Context) ([]domain.Package, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+packageColumns+` FROM packages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Package
	for rows.Next() {
		var pkg domain.Package
		if err := rows.Scan(
			&pkg.ID,
			&pkg.Name,
			&pkg.Type,
			&pkg.DurationDays,
			&pkg.Price,
			&pkg.Features,
			&pkg.IsActive,
			&pkg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, pkg)
	}
	return result, rows.Err()
}
