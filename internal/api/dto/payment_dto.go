package dto

import (
	"time"

	"github.com/spec-kit/deckflow-admin/internal/domain"
)

// RejectPayoutPayload is the admin rejection body.
type RejectPayoutPayload struct {
	TransactionID string `json:"transactionId"`
	Reason        string `json:"reason"`
}

// PayoutInfo mirrors the bank/processing metadata block.
type PayoutInfo struct {
	BankAbbreviation string     `json:"bankAbbreviation,omitempty"`
	AccountNumber    string     `json:"accountNumber,omitempty"`
	AccountName      string     `json:"accountName,omitempty"`
	Branch           string     `json:"branch,omitempty"`
	RequestedAt      *time.Time `json:"requestedAt,omitempty"`
	PaidAt           *time.Time `json:"paidAt,omitempty"`
	ProcessedAt      *time.Time `json:"processedAt,omitempty"`
	RejectReason     *string    `json:"rejectReason,omitempty"`
	PaymentRef       *string    `json:"paymentRef,omitempty"`
	ProofURL         *string    `json:"proofUrl,omitempty"`
}

// PayoutUserInfo is the embedded submitter identity.
type PayoutUserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PayoutResponse is one payout row for the admin feeds.
type PayoutResponse struct {
	ID        string                   `json:"id"`
	User      PayoutUserInfo           `json:"user"`
	Amount    float64                  `json:"amount"`
	Status    domain.TransactionStatus `json:"status"`
	CreatedAt time.Time                `json:"createdAt"`
	Payout    PayoutInfo               `json:"payout"`
}

// FromPayout maps a payout with its user info.
func FromPayout(item *domain.PayoutWithUser) PayoutResponse {
	resp := PayoutResponse{
		ID:        item.ID,
		User:      PayoutUserInfo{Name: item.UserName, Email: item.UserEmail},
		Amount:    item.Amount,
		Status:    item.Status,
		CreatedAt: item.CreatedAt,
	}
	if item.Payout != nil {
		requestedAt := item.Payout.RequestedAt
		resp.Payout = PayoutInfo{
			BankAbbreviation: item.Payout.BankAbbreviation,
			AccountNumber:    item.Payout.AccountNumber,
			AccountName:      item.Payout.AccountName,
			Branch:           item.Payout.Branch,
			PaidAt:           item.Payout.PaidAt,
			ProcessedAt:      item.Payout.ProcessedAt,
			RejectReason:     item.Payout.RejectReason,
			PaymentRef:       item.Payout.PaymentRef,
			ProofURL:         item.Payout.ProofURL,
		}
		if !requestedAt.IsZero() {
			resp.Payout.RequestedAt = &requestedAt
		}
	}
	return resp
}

// FromPayouts maps a slice of payouts.
func FromPayouts(items []domain.PayoutWithUser) []PayoutResponse {
	result := make([]PayoutResponse, 0, len(items))
	for i := range items {
		result = append(result, FromPayout(&items[i]))
	}
	return result
}

// RevenueBucketResponse is one chart point.
type RevenueBucketResponse struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// FromRevenueBuckets maps a revenue series.
func FromRevenueBuckets(buckets []domain.RevenueBucket) []RevenueBucketResponse {
	result := make([]RevenueBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, RevenueBucketResponse{Name: b.Name, Revenue: b.Revenue})
	}
	return result
}
