package services

import (
	"context"
	"errors"
	"testing"

	"github.com/K-is-SAD/nebula-dapp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPaymentService_Pay(t *testing.T) {
	ctx := context.Background()
	author := "0xAuthor"
	reader := "0xReader"
	articleID := uint64(0)

	preview := &models.ArticlePreview{ID: articleID, Author: author, Title: "Gated", Price: 10}

	t.Run("Successful payment credits exactly the price", func(t *testing.T) {
		mockArticleRepo := new(MockArticleRepository)
		mockPaymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(mockArticleRepo, mockPaymentRepo)

		expectedReceipt := &models.Receipt{
			ReceiptID:      "receipt-1",
			Author:         author,
			ArticleID:      articleID,
			Reader:         reader,
			AmountCredited: 10,
		}

		mockArticleRepo.On("GetPreview", ctx, author, articleID).Return(preview, nil).Once()
		// Tendering 25 above a price of 10 must credit 10, not 25.
		mockPaymentRepo.On("SubmitPayment", ctx, author, articleID, reader, uint64(10), uint64(25)).
			Return(expectedReceipt, true, nil).Once()

		receipt, err := service.Pay(ctx, author, articleID, reader, 25)

		assert.NoError(t, err)
		assert.Equal(t, expectedReceipt, receipt)
		mockArticleRepo.AssertExpectations(t)
		mockPaymentRepo.AssertExpectations(t)
	})

	t.Run("Insufficient payment is rejected with no state change", func(t *testing.T) {
		mockArticleRepo := new(MockArticleRepository)
		mockPaymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(mockArticleRepo, mockPaymentRepo)

		mockArticleRepo.On("GetPreview", ctx, author, articleID).Return(preview, nil).Once()

		receipt, err := service.Pay(ctx, author, articleID, reader, 5)

		assert.Nil(t, receipt)
		var insufficientErr *models.InsufficientPaymentError
		assert.ErrorAs(t, err, &insufficientErr)
		assert.Equal(t, uint64(10), insufficientErr.Required)
		assert.Equal(t, uint64(5), insufficientErr.Tendered)
		mockPaymentRepo.AssertNotCalled(t, "SubmitPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockArticleRepo.AssertExpectations(t)
	})

	t.Run("Author paying for own article is a no-op success", func(t *testing.T) {
		mockArticleRepo := new(MockArticleRepository)
		mockPaymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(mockArticleRepo, mockPaymentRepo)

		mockArticleRepo.On("GetPreview", ctx, author, articleID).Return(preview, nil).Once()

		receipt, err := service.Pay(ctx, author, articleID, author, 0)

		assert.NoError(t, err)
		assert.NotNil(t, receipt)
		assert.Equal(t, uint64(0), receipt.AmountCredited)
		assert.Equal(t, author, receipt.Reader)
		// The self-access path bypasses payment entirely; no credit may occur.
		mockPaymentRepo.AssertNotCalled(t, "SubmitPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockPaymentRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Duplicate payment returns the original receipt", func(t *testing.T) {
		mockArticleRepo := new(MockArticleRepository)
		mockPaymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(mockArticleRepo, mockPaymentRepo)

		originalReceipt := &models.Receipt{ReceiptID: "original", Author: author, ArticleID: articleID, Reader: reader, AmountCredited: 10}

		mockArticleRepo.On("GetPreview", ctx, author, articleID).Return(preview, nil).Once()
		mockPaymentRepo.On("SubmitPayment", ctx, author, articleID, reader, uint64(10), uint64(10)).
			Return(originalReceipt, false, nil).Once()

		receipt, err := service.Pay(ctx, author, articleID, reader, 10)

		assert.NoError(t, err)
		assert.Equal(t, "original", receipt.ReceiptID)
		mockPaymentRepo.AssertExpectations(t)
	})

	t.Run("Unknown article fails with NotFoundError", func(t *testing.T) {
		mockArticleRepo := new(MockArticleRepository)
		mockPaymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(mockArticleRepo, mockPaymentRepo)

		mockArticleRepo.On("GetPreview", ctx, author, uint64(99)).
			Return(nil, &models.NotFoundError{Resource: "article", Key: "0xAuthor/99"}).Once()

		receipt, err := service.Pay(ctx, author, 99, reader, 10)

		assert.Nil(t, receipt)
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("Empty reader is rejected before touching the ledger", func(t *testing.T) {
		mockArticleRepo := new(MockArticleRepository)
		mockPaymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(mockArticleRepo, mockPaymentRepo)

		receipt, err := service.Pay(ctx, author, articleID, "", 10)

		assert.Nil(t, receipt)
		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "reader", validationErr.Field)
		mockArticleRepo.AssertNotCalled(t, "GetPreview", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Ledger failure surfaces as LedgerUnavailableError", func(t *testing.T) {
		mockArticleRepo := new(MockArticleRepository)
		mockPaymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(mockArticleRepo, mockPaymentRepo)

		mockArticleRepo.On("GetPreview", ctx, author, articleID).Return(preview, nil).Once()
		mockPaymentRepo.On("SubmitPayment", ctx, author, articleID, reader, uint64(10), uint64(10)).
			Return(nil, false, &models.LedgerUnavailableError{Op: "submit payment", Err: errors.New("timeout")}).Once()

		receipt, err := service.Pay(ctx, author, articleID, reader, 10)

		assert.Nil(t, receipt)
		var ledgerErr *models.LedgerUnavailableError
		assert.ErrorAs(t, err, &ledgerErr)
	})
}

func TestPaymentService_HasPaid(t *testing.T) {
	ctx := context.Background()
	author := "0xAuthor"
	reader := "0xReader"

	t.Run("Reports a recorded payment", func(t *testing.T) {
		mockArticleRepo := new(MockArticleRepository)
		mockPaymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(mockArticleRepo, mockPaymentRepo)

		mockArticleRepo.On("GetPreview", ctx, author, uint64(0)).
			Return(&models.ArticlePreview{ID: 0, Author: author, Price: 10}, nil).Once()
		mockPaymentRepo.On("HasPaid", ctx, author, uint64(0), reader).Return(true, nil).Once()

		paid, err := service.HasPaid(ctx, author, 0, reader)

		assert.NoError(t, err)
		assert.True(t, paid)
	})

	t.Run("Unknown article fails with NotFoundError", func(t *testing.T) {
		mockArticleRepo := new(MockArticleRepository)
		mockPaymentRepo := new(MockPaymentRepository)
		service := NewPaymentService(mockArticleRepo, mockPaymentRepo)

		mockArticleRepo.On("GetPreview", ctx, author, uint64(7)).
			Return(nil, &models.NotFoundError{Resource: "article", Key: "0xAuthor/7"}).Once()

		paid, err := service.HasPaid(ctx, author, 7, reader)

		assert.False(t, paid)
		assert.True(t, models.IsNotFound(err))
		mockPaymentRepo.AssertNotCalled(t, "HasPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
