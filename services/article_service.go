package services

import (
	"context"

	"github.com/K-is-SAD/nebula-dapp/models"
	"github.com/K-is-SAD/nebula-dapp/repository"
)

// ArticleService serves the public, ungated article reads: listings and
// counts. Everything it returns is the preview projection, so there is no
// content to gate here.
type ArticleService interface {
	ListPreviews(ctx context.Context, author string) ([]models.ArticlePreview, error)
	Count(ctx context.Context, author string) (int64, error)
}

type articleService struct {
	articleRepo repository.ArticleRepository
}

// NewArticleService creates a new instance of ArticleService.
func NewArticleService(articleRepo repository.ArticleRepository) ArticleService {
	return &articleService{articleRepo: articleRepo}
}

func (s *articleService) ListPreviews(ctx context.Context, author string) ([]models.ArticlePreview, error) {
	if author == "" {
		return nil, &models.ValidationError{Field: "author", Reason: "must not be empty"}
	}

	articles, err := s.articleRepo.ListByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}

	previews := make([]models.ArticlePreview, 0, len(articles))
	for _, article := range articles {
		previews = append(previews, article.Preview())
	}
	return previews, nil
}

func (s *articleService) Count(ctx context.Context, author string) (int64, error) {
	if author == "" {
		return 0, &models.ValidationError{Field: "author", Reason: "must not be empty"}
	}
	return s.articleRepo.Count(ctx, author)
}
