package entities

import (
	"time"
)

type DocumentKind string

const (
	DocumentKindPDF     DocumentKind = "pdf"
	DocumentKindArticle DocumentKind = "article"
)

// DefaultHighlightColor is applied when a highlight is stored without a color.
const DefaultHighlightColor = "#FFFF00"

type Document struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	Kind            DocumentKind `gorm:"column:type;size:20;not null" json:"type" validate:"required,oneof=pdf article"`
	Title           string       `gorm:"not null" json:"title" validate:"required,notblank"`
	Author          string       `json:"author,omitempty"`
	SourceURL       string       `gorm:"column:source_url" json:"source_url,omitempty" validate:"omitempty,url"`
	FilePath        string       `gorm:"column:file_path" json:"file_path,omitempty"`
	Content         string       `gorm:"type:text" json:"content,omitempty"`
	Metadata        Metadata     `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	LastReadAt      *time.Time   `json:"last_read_at,omitempty"`
	ReadingProgress float64      `gorm:"default:0" json:"reading_progress"`
}

type Collection struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name" validate:"required,notblank"`
	Description string    `json:"description,omitempty"`
	Color       string    `gorm:"size:20" json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type DocumentCollection struct {
	DocumentID   uint        `gorm:"primaryKey" json:"document_id"`
	CollectionID uint        `gorm:"primaryKey" json:"collection_id"`
	Document     *Document   `gorm:"foreignKey:DocumentID" json:"-"`
	Collection   *Collection `gorm:"foreignKey:CollectionID" json:"-"`
}

type Highlight struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	DocumentID     uint       `gorm:"index;not null" json:"document_id" validate:"required"`
	Text           string     `gorm:"type:text;not null" json:"text" validate:"required,notblank"`
	Note           string     `gorm:"type:text" json:"note,omitempty"`
	Color          string     `gorm:"size:20;default:'#FFFF00'" json:"color"`
	Position       Position   `gorm:"type:text" json:"position,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	ReviewCount    int        `gorm:"default:0" json:"review_count"`
	Mastered       bool       `gorm:"default:false" json:"mastered"`

	// Filled by queries that join the owning document.
	DocumentTitle string `gorm:"->;-:migration" json:"document_title,omitempty"`

	Document *Document `gorm:"foreignKey:DocumentID" json:"-"`
}

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name" validate:"required,notblank"`
}

type DocumentTag struct {
	DocumentID uint      `gorm:"primaryKey" json:"document_id"`
	TagID      uint      `gorm:"primaryKey" json:"tag_id"`
	Document   *Document `gorm:"foreignKey:DocumentID" json:"-"`
	Tag        *Tag      `gorm:"foreignKey:TagID" json:"-"`
}

// ReadingSession records one interval of reading. It is write-only telemetry.
type ReadingSession struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	DocumentID    uint       `gorm:"index;not null" json:"document_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	ProgressStart float64    `json:"progress_start"`
	ProgressEnd   *float64   `json:"progress_end,omitempty"`
	Document      *Document  `gorm:"foreignKey:DocumentID" json:"-"`
}

func (Document) TableName() string {
	return "documents"
}

func (Collection) TableName() string {
	return "collections"
}

func (DocumentCollection) TableName() string {
	return "document_collections"
}

func (Highlight) TableName() string {
	return "highlights"
}

func (Tag) TableName() string {
	return "tags"
}

func (DocumentTag) TableName() string {
	return "document_tags"
}

func (ReadingSession) TableName() string {
	return "reading_sessions"
}
