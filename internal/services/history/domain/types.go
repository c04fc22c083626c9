// Package domain holds the date history ledger model
package domain

import (
	"errors"
	"strings"

	entdomain "bulkdate/internal/services/entities/domain"
)

// ErrDisabled is returned by Record when history tracking is switched off
var ErrDisabled = errors.New("history disabled")

// Ops reported to metrics
const (
	OpRecorded = "recorded"
	OpSwept    = "swept"
	OpRestored = "restored"
	OpRemoved  = "removed"
	OpCleared  = "cleared"
)

// Sort fields accepted by List
const (
	SortModifiedAt   = "modified_at"
	SortPreviousDate = "previous_date"
	SortNewDate      = "new_date"
)

// DefaultPageSize is used when no page size is configured
const DefaultPageSize = 20

// Paging caps; larger requests are clamped so LIMIT/OFFSET stay in range
const (
	MaxPage     = 100_000
	MaxPageSize = 1_000
)

// Record is one immutable history row
type Record struct {
	ID           int64  `json:"id"            example:"41"`
	PostID       int64  `json:"post_id"       example:"12"`
	PostTitle    string `json:"post_title"    example:"Hello world"`
	PostType     string `json:"post_type"     example:"post"`
	PreviousDate string `json:"previous_date" example:"2024-01-03 10:15:00"`
	NewDate      string `json:"new_date"      example:"2024-01-07 18:42:11"`
	DateField    string `json:"date_field"    example:"post_modified"`
	ModifiedBy   int64  `json:"modified_by"   example:"1"`
	ModifiedAt   string `json:"modified_at"   example:"2024-02-01 09:00:00"`
}

// NewRecord is what the mutator hands the ledger per mutated field
type NewRecord struct {
	PostID       int64
	PostTitle    string
	PostType     string
	PreviousDate string
	NewDate      string
	DateField    string
	ModifiedBy   int64
}

// Row is a Record with display labels
type Row struct {
	Record
	EntityTypeLabel string `json:"entity_type_label" example:"Post"`
	DateFieldLabel  string `json:"date_field_label"  example:"Modified Date"`
}

// RowOf decorates r with its labels
func RowOf(r Record) Row {
	return Row{Record: r, EntityTypeLabel: entdomain.Label(r.PostType), DateFieldLabel: FieldLabel(r.DateField)}
}

// FieldLabel names a date field for humans
func FieldLabel(field string) string {
	switch field {
	case entdomain.FieldPostDate:
		return "Published Date"
	case entdomain.FieldPostModified:
		return "Modified Date"
	}
	return entdomain.Label(field)
}

// ListQuery filters and pages the ledger; all filters are ANDed
type ListQuery struct {
	EntityType string `json:"entity_type,omitempty" example:"post"`
	DateField  string `json:"date_field,omitempty"  example:"post_date"`
	DateFrom   string `json:"date_from,omitempty"   example:"2024-01-01"`
	DateTo     string `json:"date_to,omitempty"     example:"2024-01-31"`
	SortBy     string `json:"sort_by,omitempty"     example:"modified_at"`
	SortOrder  string `json:"sort_order,omitempty"  example:"DESC"`
	Page       int    `json:"page,omitempty"        example:"1"`
	PageSize   int    `json:"page_size,omitempty"   example:"20"`
}

// SortColumn whitelists a sort field, anything else sorts by modified_at
func SortColumn(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SortPreviousDate:
		return SortPreviousDate
	case SortNewDate:
		return SortNewDate
	}
	return SortModifiedAt
}

// SortOrder whitelists a direction, anything else is DESC
func SortOrder(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "ASC") {
		return "ASC"
	}
	return "DESC"
}

// Normalize applies the page and sort defaults
func (q ListQuery) Normalize(defaultSize int) ListQuery {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultSize
	}
	q.Page = min(q.Page, MaxPage)
	q.PageSize = min(q.PageSize, MaxPageSize)
	q.SortBy = SortColumn(q.SortBy)
	q.SortOrder = SortOrder(q.SortOrder)
	q.EntityType = strings.TrimSpace(q.EntityType)
	q.DateField = strings.TrimSpace(q.DateField)
	q.DateFrom = strings.TrimSpace(q.DateFrom)
	q.DateTo = strings.TrimSpace(q.DateTo)
	return q
}

// Page is one page of the ledger
type Page struct {
	Rows       []Row `json:"rows"`
	Total      int   `json:"total"       example:"57"`
	Page       int   `json:"page"        example:"1"`
	PageSize   int   `json:"page_size"   example:"20"`
	TotalPages int   `json:"total_pages" example:"3"`
	HasMore    bool  `json:"has_more"    example:"true"`
}

// NewPage fills the derived page fields
func NewPage(rows []Row, total, page, size int) Page {
	if rows == nil {
		rows = []Row{}
	}
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Page{Rows: rows, Total: total, Page: page, PageSize: size, TotalPages: pages, HasMore: page < pages}
}

// RestoreResult reports what a restore wrote back
type RestoreResult struct {
	ID         int64  `json:"id"          example:"41"`
	PostID     int64  `json:"post_id"     example:"12"`
	DateField  string `json:"date_field"  example:"post_modified"`
	RestoredTo string `json:"restored_to" example:"2024-01-03 10:15:00"`
	Message    string `json:"message"     example:"Date restored successfully."`
}

// SweepResult reports a retention sweep
type SweepResult struct {
	Deleted       int64 `json:"deleted"        example:"12"`
	RetentionDays int   `json:"retention_days" example:"30"`
}
