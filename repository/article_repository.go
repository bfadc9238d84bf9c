package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/K-is-SAD/nebula-dapp/models"

	"gorm.io/gorm"
)

// ArticleRepository is the article side of the ledger. It owns article rows
// and nothing else; access gating is the access service's job, so
// GetFullContent hands back the raw body unconditionally.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Get(ctx context.Context, author string, id uint64) (*models.Article, error)
	GetPreview(ctx context.Context, author string, id uint64) (*models.ArticlePreview, error)
	GetFullContent(ctx context.Context, author string, id uint64) (string, error)
	ListByAuthor(ctx context.Context, author string) ([]*models.Article, error)
	Count(ctx context.Context, author string) (int64, error)
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new instance of ArticleRepository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create persists a new article, assigning the next sequence number for its
// author (starting at 0). The count and the insert run in one ledger
// transaction so concurrent publishes by the same author cannot collide; the
// composite primary key backstops it either way.
func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Article{}).Where("author = ?", article.Author).Count(&count).Error; err != nil {
			return err
		}
		// Articles are never deleted, so the row count is the next id.
		article.ID = uint64(count)
		return tx.Create(article).Error
	})
	if err != nil {
		log.Printf("ERROR: [ArticleRepository] Failed to create article for author %s: %v", article.Author, err)
		return &models.LedgerUnavailableError{Op: "create article", Err: err}
	}
	log.Printf("INFO: [ArticleRepository] Article %d by author %s recorded on the ledger.", article.ID, article.Author)
	return nil
}

func (r *articleRepository) Get(ctx context.Context, author string, id uint64) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).First(&article, "author = ? AND id = ?", author, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "article", Key: fmt.Sprintf("%s/%d", author, id)}
		}
		log.Printf("ERROR: [ArticleRepository] Failed to fetch article %s/%d: %v", author, id, err)
		return nil, &models.LedgerUnavailableError{Op: "query article", Err: err}
	}
	return &article, nil
}

func (r *articleRepository) GetPreview(ctx context.Context, author string, id uint64) (*models.ArticlePreview, error) {
	article, err := r.Get(ctx, author, id)
	if err != nil {
		return nil, err
	}
	preview := article.Preview()
	return &preview, nil
}

func (r *articleRepository) GetFullContent(ctx context.Context, author string, id uint64) (string, error) {
	article, err := r.Get(ctx, author, id)
	if err != nil {
		return "", err
	}
	return article.FullContent, nil
}

// ListByAuthor returns all articles by the author in insertion order. Each
// call issues a fresh query, so the listing is restartable.
func (r *articleRepository) ListByAuthor(ctx context.Context, author string) ([]*models.Article, error) {
	var articles []*models.Article
	err := r.db.WithContext(ctx).Where("author = ?", author).Order("id ASC").Find(&articles).Error
	if err != nil {
		log.Printf("ERROR: [ArticleRepository] Failed to list articles for author %s: %v", author, err)
		return nil, &models.LedgerUnavailableError{Op: "list articles", Err: err}
	}
	return articles, nil
}

func (r *articleRepository) Count(ctx context.Context, author string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Article{}).Where("author = ?", author).Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [ArticleRepository] Failed to count articles for author %s: %v", author, err)
		return 0, &models.LedgerUnavailableError{Op: "count articles", Err: err}
	}
	return count, nil
}
