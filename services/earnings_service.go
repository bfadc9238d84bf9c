package services

import (
	"context"
	"fmt"
	"log"

	"github.com/K-is-SAD/nebula-dapp/models"
	"github.com/K-is-SAD/nebula-dapp/repository"
)

// EarningsService exposes per-author earnings balances and withdrawals.
// Credits from accepted payments happen inside the ledger's payment
// transaction; Accumulate is the same credit operation for direct ledger
// adjustments and is never called on a caller-facing path.
type EarningsService interface {
	Accumulate(ctx context.Context, author string, amount uint64) error
	Balance(ctx context.Context, author string) (uint64, error)
	Withdraw(ctx context.Context, author string) (uint64, error)
}

type earningsService struct {
	paymentRepo repository.PaymentRepository
}

// NewEarningsService creates a new instance of EarningsService.
func NewEarningsService(paymentRepo repository.PaymentRepository) EarningsService {
	return &earningsService{paymentRepo: paymentRepo}
}

// Accumulate adds amount to the author's balance. The amount is unsigned, so
// a negative credit cannot be expressed at all.
func (s *earningsService) Accumulate(ctx context.Context, author string, amount uint64) error {
	if author == "" {
		return &models.ValidationError{Field: "author", Reason: "must not be empty"}
	}
	if err := s.paymentRepo.Credit(ctx, author, amount); err != nil {
		errMsg := fmt.Sprintf("failed to credit %d base units to author %s", amount, author)
		log.Printf("ERROR: [EarningsService] %s: %v", errMsg, err)
		return fmt.Errorf("%s: %w", errMsg, err)
	}
	return nil
}

// Balance returns the current withdrawable balance, 0 for an unknown author.
func (s *earningsService) Balance(ctx context.Context, author string) (uint64, error) {
	if author == "" {
		return 0, &models.ValidationError{Field: "author", Reason: "must not be empty"}
	}
	return s.paymentRepo.Balance(ctx, author)
}

// Withdraw claims the author's entire balance as a single atomic
// read-and-zero ledger operation. Of two concurrent withdrawals, exactly one
// succeeds; the other observes a zero balance and fails with NoFundsError.
func (s *earningsService) Withdraw(ctx context.Context, author string) (uint64, error) {
	if author == "" {
		return 0, &models.ValidationError{Field: "author", Reason: "must not be empty"}
	}

	amount, err := s.paymentRepo.WithdrawAll(ctx, author)
	if err != nil {
		return 0, err
	}

	log.Printf("INFO: [EarningsService] Author %s withdrew %d base units.", author, amount)
	return amount, nil
}
