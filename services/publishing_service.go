package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/K-is-SAD/nebula-dapp/config"
	"github.com/K-is-SAD/nebula-dapp/models"
	"github.com/K-is-SAD/nebula-dapp/repository"
)

// PublishingService validates and admits new articles. Either the article is
// fully recorded on the ledger or nothing is; there are no partial writes.
type PublishingService interface {
	Publish(ctx context.Context, author, title, previewContent, fullContent string, price int64) (*models.Article, error)
}

type publishingService struct {
	articleRepo repository.ArticleRepository
}

// NewPublishingService creates a new instance of PublishingService.
func NewPublishingService(articleRepo repository.ArticleRepository) PublishingService {
	return &publishingService{articleRepo: articleRepo}
}

// Publish runs all field validations in order and reports the first failing
// field; price is accepted as a signed integer so a negative value can be
// rejected rather than silently wrapped.
func (s *publishingService) Publish(ctx context.Context, author, title, previewContent, fullContent string, price int64) (*models.Article, error) {
	if err := validateSubmission(author, title, previewContent, fullContent, price); err != nil {
		log.Printf("WARN: [PublishingService] Rejected submission by author '%s': %v", author, err)
		return nil, err
	}

	article := &models.Article{
		Author:         author,
		Title:          title,
		PreviewContent: previewContent,
		FullContent:    fullContent,
		Timestamp:      time.Now().Unix(),
		Price:          uint64(price),
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		errMsg := fmt.Sprintf("failed to admit article by author %s", author)
		log.Printf("ERROR: [PublishingService] %s: %v", errMsg, err)
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}

	log.Printf("INFO: [PublishingService] Article %d published by author %s (price: %d base units).", article.ID, article.Author, article.Price)
	return article, nil
}

func validateSubmission(author, title, previewContent, fullContent string, price int64) error {
	limits := config.AppConfig.Limits
	switch {
	case author == "":
		return &models.ValidationError{Field: "author", Reason: "must not be empty"}
	case title == "":
		return &models.ValidationError{Field: "title", Reason: "must not be empty"}
	case limits.MaxTitleLength > 0 && len(title) > limits.MaxTitleLength:
		return &models.ValidationError{Field: "title", Reason: fmt.Sprintf("must not exceed %d characters", limits.MaxTitleLength)}
	case previewContent == "":
		return &models.ValidationError{Field: "previewContent", Reason: "must not be empty"}
	case limits.MaxPreviewLength > 0 && len(previewContent) > limits.MaxPreviewLength:
		return &models.ValidationError{Field: "previewContent", Reason: fmt.Sprintf("must not exceed %d characters", limits.MaxPreviewLength)}
	case fullContent == "":
		return &models.ValidationError{Field: "fullContent", Reason: "must not be empty"}
	case limits.MaxContentLength > 0 && len(fullContent) > limits.MaxContentLength:
		return &models.ValidationError{Field: "fullContent", Reason: fmt.Sprintf("must not exceed %d characters", limits.MaxContentLength)}
	case price < 0:
		return &models.ValidationError{Field: "price", Reason: "must be a non-negative integer in base units"}
	}
	return nil
}
