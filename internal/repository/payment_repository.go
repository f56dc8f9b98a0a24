package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/deckflow-admin/internal/domain"
)

// PaymentRepository encapsulates transaction persistence: payouts awaiting
// action, payout history and revenue aggregates over purchases.
type PaymentRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListPendingPayouts(ctx context.Context) ([]domain.PayoutWithUser, error)
	ListPayoutHistory(ctx context.Context) ([]domain.PayoutWithUser, error)
	// RejectPayout conditionally rejects a PENDING payout and returns
	// pgx.ErrNoRows when no pending row matched.
	RejectPayout(ctx context.Context, id, reason string) error
	MonthlyRevenue(ctx context.Context, year int) (map[int]float64, error)
	QuarterlyRevenue(ctx context.Context, year int) (map[int]float64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	PackageDistribution(ctx context.Context, year int) ([]domain.PackageCount, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository returns a Postgres-backed implementation.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

const txColumns = `
        t.id, t.user_id, t.tx_type, t.status, t.amount, t.package_id, t.created_at,
        t.bank_abbreviation, t.account_number, t.account_name, t.branch,
        t.requested_at, t.paid_at, t.processed_at, t.reject_reason, t.payment_ref, t.proof_url`

func (r *paymentRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	const query = `
        INSERT INTO transactions (user_id, tx_type, status, amount, package_id,
            bank_abbreviation, account_number, account_name, branch, requested_at, paid_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at`
	var payout domain.PayoutDetails
	if tx.Payout != nil {
		payout = *tx.Payout
	}
	var requestedAt any
	if tx.Payout != nil {
		requestedAt = payout.RequestedAt
	}
	return r.pool.QueryRow(ctx, query,
		tx.UserID,
		tx.Type,
		tx.Status,
		tx.Amount,
		tx.PackageID,
		nullable(payout.BankAbbreviation),
		nullable(payout.AccountNumber),
		nullable(payout.AccountName),
		nullable(payout.Branch),
		requestedAt,
		payout.PaidAt,
	).Scan(&tx.ID, &tx.CreatedAt)
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions t WHERE t.id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTransaction(row)
}

func (r *paymentRepository) ListPendingPayouts(ctx context.Context) ([]domain.PayoutWithUser, error) {
	return r.listPayouts(ctx, `t.status = 'PENDING'`)
}

func (r *paymentRepository) ListPayoutHistory(ctx context.Context) ([]domain.PayoutWithUser, error) {
	return r.listPayouts(ctx, `t.status <> 'PENDING'`)
}

func (r *paymentRepository) listPayouts(ctx context.Context, statusClause string) ([]domain.PayoutWithUser, error) {
	query := `
        SELECT ` + txColumns + `, u.name, u.email
        FROM transactions t
        JOIN users u ON u.id = t.user_id
        WHERE t.tx_type = 'PAYOUT' AND ` + statusClause + `
        ORDER BY t.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PayoutWithUser
	for rows.Next() {
		var item domain.PayoutWithUser
		tx, err := scanTransactionFrom(rows, &item.UserName, &item.UserEmail)
		if err != nil {
			return nil, err
		}
		item.Transaction = *tx
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *paymentRepository) RejectPayout(ctx context.Context, id, reason string) error {
	const query = `
        UPDATE transactions
        SET status='REJECTED', reject_reason=$1, processed_at=NOW()
        WHERE id=$2 AND tx_type='PAYOUT' AND status='PENDING'`
	cmd, err := r.pool.Exec(ctx, query, reason, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *paymentRepository) MonthlyRevenue(ctx context.Context, year int) (map[int]float64, error) {
	const query = `
        SELECT EXTRACT(MONTH FROM created_at)::int, COALESCE(SUM(amount), 0)
        FROM transactions
        WHERE tx_type='PURCHASE' AND status='COMPLETED' AND EXTRACT(YEAR FROM created_at)=$1
        GROUP BY 1`
	return r.revenueByBucket(ctx, query, year)
}

func (r *paymentRepository) QuarterlyRevenue(ctx context.Context, year int) (map[int]float64, error) {
	const query = `
        SELECT EXTRACT(QUARTER FROM created_at)::int, COALESCE(SUM(amount), 0)
        FROM transactions
        WHERE tx_type='PURCHASE' AND status='COMPLETED' AND EXTRACT(YEAR FROM created_at)=$1
        GROUP BY 1`
	return r.revenueByBucket(ctx, query, year)
}

func (r *paymentRepository) revenueByBucket(ctx context.Context, query string, year int) (map[int]float64, error) {
	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int]float64)
	for rows.Next() {
		var bucket int
		var total float64
		if err := rows.Scan(&bucket, &total); err != nil {
			return nil, err
		}
		result[bucket] = total
	}
	return result, rows.Err()
}

func (r *paymentRepository) TotalRevenue(ctx context.Context) (float64, error) {
	const query = `
        SELECT COALESCE(SUM(amount), 0) FROM transactions
        WHERE tx_type='PURCHASE' AND status='COMPLETED'`
	var total float64
	err := r.pool.QueryRow(ctx, query).Scan(&total)
	return total, err
}

func (r *paymentRepository) PackageDistribution(ctx context.Context, year int) ([]domain.PackageCount, error) {
	const query = `
        SELECT p.name, COUNT(*)
        FROM transactions t
        JOIN packages p ON p.id = t.package_id
        WHERE t.tx_type='PURCHASE' AND t.status='COMPLETED' AND EXTRACT(YEAR FROM t.created_at)=$1
        GROUP BY p.name
        ORDER BY COUNT(*) DESC`
	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PackageCount
	for rows.Next() {
		var item domain.PackageCount
		if err := rows.Scan(&item.Name, &item.Value); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	return scanTransactionFrom(row)
}

// scanTransactionFrom scans the transaction columns plus optional trailing
// destinations (user name/email on joined queries).
func scanTransactionFrom(row pgx.Row, extra ...any) (*domain.Transaction, error) {
	var tx domain.Transaction
	var payout domain.PayoutDetails
	var bank, account, accountName, branch *string
	var reqAt *time.Time

	dest := []any{
		&tx.ID, &tx.UserID, &tx.Type, &tx.Status, &tx.Amount, &tx.PackageID, &tx.CreatedAt,
		&bank, &account, &accountName, &branch,
		&reqAt, &payout.PaidAt, &payout.ProcessedAt, &payout.RejectReason, &payout.PaymentRef, &payout.ProofURL,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if tx.Type == domain.TransactionTypePayout {
		if bank != nil {
			payout.BankAbbreviation = *bank
		}
		if account != nil {
			payout.AccountNumber = *account
		}
		if accountName != nil {
			payout.AccountName = *accountName
		}
		if branch != nil {
			payout.Branch = *branch
		}
		if reqAt != nil {
			payout.RequestedAt = *reqAt
		}
		tx.Payout = &payout
	}
	return &tx, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
