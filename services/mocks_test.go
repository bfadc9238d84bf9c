package services

import (
	"context"

	"github.com/K-is-SAD/nebula-dapp/models"

	"github.com/stretchr/testify/mock"
)

// MockArticleRepository is a mock type for the ArticleRepository interface.
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Get(ctx context.Context, author string, id uint64) (*models.Article, error) {
	args := m.Called(ctx, author, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) GetPreview(ctx context.Context, author string, id uint64) (*models.ArticlePreview, error) {
	args := m.Called(ctx, author, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ArticlePreview), args.Error(1)
}

func (m *MockArticleRepository) GetFullContent(ctx context.Context, author string, id uint64) (string, error) {
	args := m.Called(ctx, author, id)
	return args.String(0), args.Error(1)
}

func (m *MockArticleRepository) ListByAuthor(ctx context.Context, author string) ([]*models.Article, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Article), args.Error(1)
}

func (m *MockArticleRepository) Count(ctx context.Context, author string) (int64, error) {
	args := m.Called(ctx, author)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepository is a mock type for the PaymentRepository interface.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) HasPaid(ctx context.Context, author string, articleID uint64, reader string) (bool, error) {
	args := m.Called(ctx, author, articleID, reader)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) SubmitPayment(ctx context.Context, author string, articleID uint64, reader string, price, tendered uint64) (*models.Receipt, bool, error) {
	args := m.Called(ctx, author, articleID, reader, price, tendered)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Receipt), args.Bool(1), args.Error(2)
}

func (m *MockPaymentRepository) Credit(ctx context.Context, author string, amount uint64) error {
	args := m.Called(ctx, author, amount)
	return args.Error(0)
}

func (m *MockPaymentRepository) Balance(ctx context.Context, author string) (uint64, error) {
	args := m.Called(ctx, author)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockPaymentRepository) WithdrawAll(ctx context.Context, author string) (uint64, error) {
	args := m.Called(ctx, author)
	return args.Get(0).(uint64), args.Error(1)
}
