package models

// Article is a published piece of gated content. The (Author, ID) pair is the
// global key: IDs are a per-author sequence starting at 0, assigned at
// admission. Articles are immutable once published; there are no update or
// delete operations.
type Article struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Author         string `gorm:"primaryKey;size:64" json:"author"`
	Title          string `gorm:"not null" json:"title"`
	PreviewContent string `gorm:"type:text;not null" json:"previewContent"`
	FullContent    string `gorm:"type:text;not null" json:"fullContent,omitempty"`
	Timestamp      int64  `gorm:"not null" json:"timestamp"`       // unix seconds, set at admission
	Price          uint64 `gorm:"not null;default:0" json:"price"` // base units; 0 means free
}

// TableName specifies the table name for the Article model.
func (Article) TableName() string {
	return "articles"
}

// ArticlePreview is the publicly readable projection of an Article. It never
// carries the full content.
type ArticlePreview struct {
	ID             uint64 `json:"id"`
	Author         string `json:"author"`
	Title          string `json:"title"`
	PreviewContent string `json:"previewContent"`
	Timestamp      int64  `json:"timestamp"`
	Price          uint64 `json:"price"`
}

// Preview returns the public projection of the article.
func (a *Article) Preview() ArticlePreview {
	return ArticlePreview{
		ID:             a.ID,
		Author:         a.Author,
		Title:          a.Title,
		PreviewContent: a.PreviewContent,
		Timestamp:      a.Timestamp,
		Price:          a.Price,
	}
}

// AccessMode tells a caller how much of an article they were granted.
type AccessMode string

const (
	AccessModeFull        AccessMode = "FULL"
	AccessModePreviewOnly AccessMode = "PREVIEW_ONLY"
)

// Resolution is the outcome of an access decision for one viewer. FullContent
// is populated only when Mode is AccessModeFull.
type Resolution struct {
	Mode        AccessMode     `json:"mode"`
	Article     ArticlePreview `json:"article"`
	FullContent string         `json:"fullContent,omitempty"`
}
