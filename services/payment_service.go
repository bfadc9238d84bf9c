package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/K-is-SAD/nebula-dapp/models"
	"github.com/K-is-SAD/nebula-dapp/repository"

	"github.com/google/uuid"
)

// PaymentService records and queries payment facts per (article, reader)
// pair. A payment credits the author's earnings with the article price
// exactly once; everything above the price is kept on the record for audit
// but never credited.
type PaymentService interface {
	HasPaid(ctx context.Context, author string, articleID uint64, reader string) (bool, error)
	Pay(ctx context.Context, author string, articleID uint64, reader string, amountTendered uint64) (*models.Receipt, error)
}

type paymentService struct {
	articleRepo repository.ArticleRepository
	paymentRepo repository.PaymentRepository
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(articleRepo repository.ArticleRepository, paymentRepo repository.PaymentRepository) PaymentService {
	return &paymentService{
		articleRepo: articleRepo,
		paymentRepo: paymentRepo,
	}
}

// HasPaid is a pure query; it fails with NotFoundError if the article does
// not exist and is always safe to retry.
func (s *paymentService) HasPaid(ctx context.Context, author string, articleID uint64, reader string) (bool, error) {
	if _, err := s.articleRepo.GetPreview(ctx, author, articleID); err != nil {
		return false, err
	}
	return s.paymentRepo.HasPaid(ctx, author, articleID, reader)
}

// Pay validates the tendered amount against the article price and submits the
// payment to the ledger as one atomic operation. The author reading their own
// article is a no-op success: nothing is charged and nothing is credited.
// A repeat payment by the same reader is an idempotent no-op success that
// returns the original receipt without crediting the balance again.
func (s *paymentService) Pay(ctx context.Context, author string, articleID uint64, reader string, amountTendered uint64) (*models.Receipt, error) {
	if reader == "" {
		log.Printf("WARN: [PaymentService] Pay called with empty reader for article %s/%d.", author, articleID)
		return nil, &models.ValidationError{Field: "reader", Reason: "must not be empty"}
	}

	article, err := s.articleRepo.GetPreview(ctx, author, articleID)
	if err != nil {
		return nil, err
	}

	if reader == author {
		// Authors always have implicit access; this path bypasses payment
		// entirely and must never credit the balance.
		log.Printf("INFO: [PaymentService] Author %s attempted to pay for their own article %d; treating as no-op success.", author, articleID)
		return &models.Receipt{
			ReceiptID:      uuid.NewString(),
			Author:         author,
			ArticleID:      articleID,
			Reader:         reader,
			AmountCredited: 0,
			ConfirmedAt:    time.Now().Unix(),
		}, nil
	}

	if amountTendered < article.Price {
		log.Printf("WARN: [PaymentService] Insufficient payment for article %s/%d by reader %s: tendered %d, price %d.", author, articleID, reader, amountTendered, article.Price)
		return nil, &models.InsufficientPaymentError{Required: article.Price, Tendered: amountTendered}
	}

	receipt, created, err := s.paymentRepo.SubmitPayment(ctx, author, articleID, reader, article.Price, amountTendered)
	if err != nil {
		errMsg := fmt.Sprintf("failed to submit payment for article %s/%d by reader %s", author, articleID, reader)
		log.Printf("ERROR: [PaymentService] %s: %v", errMsg, err)
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}

	if created {
		log.Printf("INFO: [PaymentService] Reader %s paid for article %s/%d, receipt %s.", reader, author, articleID, receipt.ReceiptID)
	}
	return receipt, nil
}
