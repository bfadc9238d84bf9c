package models

// PaymentRecord is the durable fact that a reader paid for an article. The
// composite primary key (author, article_id, reader) makes the record unique
// per pair; it is created at most once and never deleted. AmountPaid keeps the
// tendered value for audit; only the article price is ever credited.
type PaymentRecord struct {
	Author      string `gorm:"primaryKey;size:64" json:"author"`
	ArticleID   uint64 `gorm:"primaryKey;autoIncrement:false;column:article_id" json:"articleId"`
	Reader      string `gorm:"primaryKey;size:64" json:"reader"`
	AmountPaid  uint64 `gorm:"not null" json:"amountPaid"`
	ReceiptID   string `gorm:"size:36;not null" json:"receiptId"`
	ConfirmedAt int64  `gorm:"not null" json:"confirmedAt"` // unix seconds
}

// TableName specifies the table name for the PaymentRecord model.
func (PaymentRecord) TableName() string {
	return "payment_records"
}

// Receipt acknowledges an accepted payment. AmountCredited is what the author
// actually earned (the article price, or 0 for an author reading their own
// article). Duplicate retries for the same (author, article, reader) get the
// original receipt back.
type Receipt struct {
	ReceiptID      string `json:"receiptId"`
	Author         string `json:"author"`
	ArticleID      uint64 `json:"articleId"`
	Reader         string `json:"reader"`
	AmountCredited uint64 `json:"amountCredited"`
	ConfirmedAt    int64  `json:"confirmedAt"`
}

// ReceiptFromRecord rebuilds the receipt a recorded payment was confirmed
// with, crediting the given price.
func ReceiptFromRecord(rec *PaymentRecord, credited uint64) *Receipt {
	return &Receipt{
		ReceiptID:      rec.ReceiptID,
		Author:         rec.Author,
		ArticleID:      rec.ArticleID,
		Reader:         rec.Reader,
		AmountCredited: credited,
		ConfirmedAt:    rec.ConfirmedAt,
	}
}
