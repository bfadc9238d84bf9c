package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/K-is-SAD/nebula-dapp/models"
	"github.com/K-is-SAD/nebula-dapp/services"
	"github.com/K-is-SAD/nebula-dapp/utils"

	"github.com/gin-gonic/gin"
)

// CallerAddressHeader carries the authenticated caller identity. The wallet
// handshake happens upstream; by the time a request reaches the core the
// identity is assumed validated.
const CallerAddressHeader = "X-Caller-Address"

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	publishingService services.PublishingService
	accessService     services.AccessService
	paymentService    services.PaymentService
	earningsService   services.EarningsService
	articleService    services.ArticleService
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(
	publishingService services.PublishingService,
	accessService services.AccessService,
	paymentService services.PaymentService,
	earningsService services.EarningsService,
	articleService services.ArticleService,
) *APIHandler {
	return &APIHandler{
		publishingService: publishingService,
		accessService:     accessService,
		paymentService:    paymentService,
		earningsService:   earningsService,
		articleService:    articleService,
	}
}

// PublishArticleRequest is the payload for publishing a new article. Price is
// signed so a negative value reaches validation instead of wrapping around.
type PublishArticleRequest struct {
	Title          string `json:"title"`
	PreviewContent string `json:"previewContent"`
	FullContent    string `json:"fullContent"`
	Price          int64  `json:"price"`
}

// PayRequest is the payload for paying for an article.
type PayRequest struct {
	Amount int64 `json:"amount"`
}

// PublishArticleHandler admits a new article authored by the caller.
func (h *APIHandler) PublishArticleHandler(c *gin.Context) {
	author := c.GetHeader(CallerAddressHeader)

	var req PublishArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	article, err := h.publishingService.Publish(c.Request.Context(), author, req.Title, req.PreviewContent, req.FullContent, req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"article":      article,
		"priceDisplay": utils.FormatBaseUnits(article.Price),
	})
}

// ResolveArticleHandler returns as much of an article as the caller may see.
func (h *APIHandler) ResolveArticleHandler(c *gin.Context) {
	author, id, ok := articleKey(c)
	if !ok {
		return
	}
	viewer := c.GetHeader(CallerAddressHeader)

	resolution, err := h.accessService.Resolve(c.Request.Context(), author, id, viewer)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resolution)
}

// ListArticlesHandler returns the preview projection of every article by an
// author, in publication order.
func (h *APIHandler) ListArticlesHandler(c *gin.Context) {
	author := c.Param("author")

	previews, err := h.articleService.ListPreviews(c.Request.Context(), author)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"author": author, "articles": previews})
}

// CountArticlesHandler returns the number of articles an author published.
func (h *APIHandler) CountArticlesHandler(c *gin.Context) {
	author := c.Param("author")

	count, err := h.articleService.Count(c.Request.Context(), author)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"author": author, "count": count})
}

// HasPaidHandler reports whether the caller already paid for an article.
func (h *APIHandler) HasPaidHandler(c *gin.Context) {
	author, id, ok := articleKey(c)
	if !ok {
		return
	}
	reader := c.GetHeader(CallerAddressHeader)

	paid, err := h.paymentService.HasPaid(c.Request.Context(), author, id, reader)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"author": author, "id": id, "reader": reader, "hasPaid": paid})
}

// PayHandler submits the caller's payment for an article.
func (h *APIHandler) PayHandler(c *gin.Context) {
	author, id, ok := articleKey(c)
	if !ok {
		return
	}
	reader := c.GetHeader(CallerAddressHeader)

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if req.Amount < 0 {
		respondWithError(c, &models.ValidationError{Field: "amount", Reason: "must be a non-negative integer in base units"})
		return
	}

	receipt, err := h.paymentService.Pay(c.Request.Context(), author, id, reader, uint64(req.Amount))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipt": receipt})
}

// BalanceHandler returns an author's withdrawable earnings balance.
func (h *APIHandler) BalanceHandler(c *gin.Context) {
	author := c.Param("author")

	balance, err := h.earningsService.Balance(c.Request.Context(), author)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"author":         author,
		"balance":        balance,
		"balanceDisplay": utils.FormatBaseUnits(balance),
	})
}

// WithdrawHandler claims the caller's entire earnings balance.
func (h *APIHandler) WithdrawHandler(c *gin.Context) {
	author := c.GetHeader(CallerAddressHeader)
	if author == "" {
		respondWithError(c, &models.ValidationError{Field: "author", Reason: "caller identity header is required"})
		return
	}

	amount, err := h.earningsService.Withdraw(c.Request.Context(), author)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"author":        author,
		"amount":        amount,
		"amountDisplay": utils.FormatBaseUnits(amount),
	})
}

// articleKey extracts and validates the (author, id) path parameters. It
// writes the error response itself when the id is malformed.
func articleKey(c *gin.Context) (string, uint64, bool) {
	author := c.Param("author")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Article id must be a non-negative integer.", err)
		return "", 0, false
	}
	return author, id, true
}

// respondWithError maps the domain error taxonomy onto HTTP status codes.
// Unrecognized errors become a generic 500; the detail is logged, never sent.
func respondWithError(c *gin.Context, err error) {
	var (
		validationErr *models.ValidationError
		notFoundErr   *models.NotFoundError
		insufficient  *models.InsufficientPaymentError
		noFundsErr    *models.NoFundsError
		ledgerDownErr *models.LedgerUnavailableError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.SendJSONError(c, http.StatusBadRequest, validationErr.Error(), nil)
	case errors.As(err, &notFoundErr):
		utils.SendJSONError(c, http.StatusNotFound, notFoundErr.Error(), nil)
	case errors.As(err, &insufficient):
		utils.SendJSONError(c, http.StatusPaymentRequired, insufficient.Error(), nil)
	case errors.As(err, &noFundsErr):
		utils.SendJSONError(c, http.StatusConflict, noFundsErr.Error(), nil)
	case errors.As(err, &ledgerDownErr):
		// The underlying operation may still have landed; the caller should
		// re-query state and retry with backoff.
		utils.SendJSONError(c, http.StatusServiceUnavailable, "Ledger temporarily unavailable. Please retry.", err)
	default:
		log.Printf("ERROR: [API] Unclassified error: %v", err)
		utils.SendJSONError(c, http.StatusInternalServerError, "", err)
	}
}
