package services

import (
	"context"
	"log"

	"github.com/K-is-SAD/nebula-dapp/models"
	"github.com/K-is-SAD/nebula-dapp/repository"
)

// AccessService is the single place the access rule lives. It decides what
// content a viewer may receive for an article; every read path goes through
// Resolve so full content can never leak through an ad hoc check elsewhere.
type AccessService interface {
	Resolve(ctx context.Context, author string, articleID uint64, viewer string) (*models.Resolution, error)
}

type accessService struct {
	articleRepo repository.ArticleRepository
	paymentRepo repository.PaymentRepository
}

// NewAccessService creates a new instance of AccessService.
func NewAccessService(articleRepo repository.ArticleRepository, paymentRepo repository.PaymentRepository) AccessService {
	return &accessService{
		articleRepo: articleRepo,
		paymentRepo: paymentRepo,
	}
}

// Resolve evaluates the access decision table in order: the author always has
// full access, free articles are fully visible to anyone, a recorded payment
// grants full access, and everything else degrades to the preview. It is a
// pure function of current ledger state: no writes, safe to call concurrently
// and repeatedly. An unauthorized viewer gets PREVIEW_ONLY, never an error.
func (s *accessService) Resolve(ctx context.Context, author string, articleID uint64, viewer string) (*models.Resolution, error) {
	article, err := s.articleRepo.Get(ctx, author, articleID)
	if err != nil {
		return nil, err
	}

	if viewer == author {
		return fullResolution(article), nil
	}
	if article.Price == 0 {
		return fullResolution(article), nil
	}

	paid, err := s.paymentRepo.HasPaid(ctx, author, articleID, viewer)
	if err != nil {
		// A ledger failure surfaces for retry; it must not be mistaken for
		// "unpaid" and it must not grant access either.
		log.Printf("ERROR: [AccessService] Payment check failed for article %s/%d, viewer %s: %v", author, articleID, viewer, err)
		return nil, err
	}
	if paid {
		return fullResolution(article), nil
	}

	return &models.Resolution{
		Mode:    models.AccessModePreviewOnly,
		Article: article.Preview(),
	}, nil
}

func fullResolution(article *models.Article) *models.Resolution {
	return &models.Resolution{
		Mode:        models.AccessModeFull,
		Article:     article.Preview(),
		FullContent: article.FullContent,
	}
}
