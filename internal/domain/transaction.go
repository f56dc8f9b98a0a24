package domain

import "time"

// TransactionType separates package purchases from creator payouts.
type TransactionType string

const (
	TransactionTypePurchase TransactionType = "PURCHASE"
	TransactionTypePayout   TransactionType = "PAYOUT"
)

// TransactionStatus enumerates payment lifecycle states. PENDING payouts are
// the ones awaiting admin action; COMPLETED and REJECTED are terminal.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusRejected  TransactionStatus = "REJECTED"
)

// PayoutDetails carries bank and processing metadata for payout transactions.
type PayoutDetails struct {
	BankAbbreviation string
	AccountNumber    string
	AccountName      string
	Branch           string
	RequestedAt      time.Time
	PaidAt           *time.Time
	ProcessedAt      *time.Time
	RejectReason     *string
	PaymentRef       *string
	ProofURL         *string
}

// Transaction is a money movement: a customer purchasing a package or a
// creator withdrawing earnings. Payout is set only for PAYOUT rows.
type Transaction struct {
	ID        string
	UserID    string
	Type      TransactionType
	Status    TransactionStatus
	Amount    float64
	PackageID *string
	CreatedAt time.Time
	Payout    *PayoutDetails
}

// PayoutWithUser embeds submitter identity for admin triage views.
type PayoutWithUser struct {
	Transaction
	UserName  string
	UserEmail string
}

// RevenueBucket is one point of a revenue series (month or quarter).
type RevenueBucket struct {
	Name    string
	Revenue float64
}

// PackageCount is one slice of the package distribution chart.
type PackageCount struct {
	Name  string
	Value int64
}
