package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/K-is-SAD/nebula-dapp/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentRepository is the money side of the ledger: payment facts per
// (author, article, reader) and the per-author earnings balances derived from
// them. Every mutating method is a single ledger transaction; the core never
// decomposes a payment or a withdrawal into separate read-then-write steps.
type PaymentRepository interface {
	HasPaid(ctx context.Context, author string, articleID uint64, reader string) (bool, error)
	// SubmitPayment records the payment and credits the author's balance by
	// price in one transaction. The returned bool reports whether a new record
	// was created; a duplicate returns the original receipt and credits
	// nothing.
	SubmitPayment(ctx context.Context, author string, articleID uint64, reader string, price, tendered uint64) (*models.Receipt, bool, error)
	Credit(ctx context.Context, author string, amount uint64) error
	Balance(ctx context.Context, author string) (uint64, error)
	// WithdrawAll atomically reads the balance, zeroes it, and returns the
	// claimed amount. A zero balance fails with NoFundsError.
	WithdrawAll(ctx context.Context, author string) (uint64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) HasPaid(ctx context.Context, author string, articleID uint64, reader string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PaymentRecord{}).
		Where("author = ? AND article_id = ? AND reader = ?", author, articleID, reader).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [PaymentRepository] Failed to query payment record for %s/%d by reader %s: %v", author, articleID, reader, err)
		return false, &models.LedgerUnavailableError{Op: "query payment record", Err: err}
	}
	return count > 0, nil
}

func (r *paymentRepository) SubmitPayment(ctx context.Context, author string, articleID uint64, reader string, price, tendered uint64) (*models.Receipt, bool, error) {
	record := models.PaymentRecord{
		Author:      author,
		ArticleID:   articleID,
		Reader:      reader,
		AmountPaid:  tendered,
		ReceiptID:   uuid.NewString(),
		ConfirmedAt: time.Now().Unix(),
	}

	var receipt *models.Receipt
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The composite primary key decides the winner among concurrent
		// payments for the same (author, article, reader); losers fall
		// through to the existing record without crediting again.
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var existing models.PaymentRecord
			if err := tx.First(&existing, "author = ? AND article_id = ? AND reader = ?", author, articleID, reader).Error; err != nil {
				return err
			}
			receipt = models.ReceiptFromRecord(&existing, price)
			return nil
		}

		if err := creditBalance(tx, author, price); err != nil {
			return err
		}
		receipt = models.ReceiptFromRecord(&record, price)
		created = true
		return nil
	})
	if err != nil {
		log.Printf("ERROR: [PaymentRepository] Failed to submit payment for %s/%d by reader %s: %v", author, articleID, reader, err)
		return nil, false, &models.LedgerUnavailableError{Op: "submit payment", Err: err}
	}

	if created {
		log.Printf("INFO: [PaymentRepository] Payment recorded for %s/%d by reader %s, credited %d base units.", author, articleID, reader, price)
	} else {
		log.Printf("INFO: [PaymentRepository] Duplicate payment for %s/%d by reader %s, returning original receipt %s.", author, articleID, reader, receipt.ReceiptID)
	}
	return receipt, created, nil
}

func (r *paymentRepository) Credit(ctx context.Context, author string, amount uint64) error {
	err := creditBalance(r.db.WithContext(ctx), author, amount)
	if err != nil {
		log.Printf("ERROR: [PaymentRepository] Failed to credit %d base units to author %s: %v", amount, author, err)
		return &models.LedgerUnavailableError{Op: "credit balance", Err: err}
	}
	return nil
}

// creditBalance upserts the author's balance row, adding amount to it. An
// author with no row so far gets one created with the credited amount.
func creditBalance(tx *gorm.DB, author string, amount uint64) error {
	row := models.EarningsBalance{Author: author, Balance: amount}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "author"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error
}

func (r *paymentRepository) Balance(ctx context.Context, author string) (uint64, error) {
	var row models.EarningsBalance
	err := r.db.WithContext(ctx).First(&row, "author = ?", author).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil // unknown author simply has nothing to withdraw
		}
		log.Printf("ERROR: [PaymentRepository] Failed to query balance for author %s: %v", author, err)
		return 0, &models.LedgerUnavailableError{Op: "query balance", Err: err}
	}
	return row.Balance, nil
}

func (r *paymentRepository) WithdrawAll(ctx context.Context, author string) (uint64, error) {
	var claimed uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.EarningsBalance
		if err := tx.First(&row, "author = ?", author).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &models.NoFundsError{Author: author}
			}
			return err
		}
		if row.Balance == 0 {
			return &models.NoFundsError{Author: author}
		}

		// Conditional write: only zero the balance we just read. If another
		// withdrawal claimed it in between, zero rows are affected and this
		// caller loses.
		res := tx.Model(&models.EarningsBalance{}).
			Where("author = ? AND balance = ?", author, row.Balance).
			Update("balance", 0)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &models.NoFundsError{Author: author}
		}
		claimed = row.Balance
		return nil
	})
	if err != nil {
		var nf *models.NoFundsError
		if errors.As(err, &nf) {
			return 0, nf
		}
		log.Printf("ERROR: [PaymentRepository] Failed to withdraw earnings for author %s: %v", author, err)
		return 0, &models.LedgerUnavailableError{Op: "submit withdrawal", Err: err}
	}
	log.Printf("INFO: [PaymentRepository] Author %s withdrew %d base units.", author, claimed)
	return claimed, nil
}
