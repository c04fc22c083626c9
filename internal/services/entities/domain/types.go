// Package domain holds the entity store types shared by the selectors,
// the redistributor and the history ledger
package domain

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is the closed set of entity kinds whose dates can be redistributed
type Kind string

const (
	// KindPost is a regular blog post
	KindPost Kind = "post"

	// KindPage is a static page
	KindPage Kind = "page"

	// KindCustom is any non builtin post type
	KindCustom Kind = "custom"

	// KindComment is an approved comment on a published post
	KindComment Kind = "comment"
)

// Date columns on bd_posts that carry a GMT twin
const (
	FieldPostDate     = "post_date"
	FieldPostModified = "post_modified"
)

// GMTColumn returns the twin column for a post date field, "" when unknown
func GMTColumn(field string) string {
	switch field {
	case FieldPostDate:
		return "post_date_gmt"
	case FieldPostModified:
		return "post_modified_gmt"
	}
	return ""
}

// Post is a snapshot of one bd_posts row, dates as stored local and GMT text
type Post struct {
	ID          int64  `json:"id" example:"12"`
	Title       string `json:"title" example:"Hello world"`
	Type        string `json:"type" example:"post"`
	Status      string `json:"status" example:"publish"`
	Date        string `json:"post_date" example:"2024-01-03 10:15:00"`
	DateGMT     string `json:"post_date_gmt" example:"2024-01-03 10:15:00"`
	Modified    string `json:"post_modified" example:"2024-01-05 08:00:00"`
	ModifiedGMT string `json:"post_modified_gmt" example:"2024-01-05 08:00:00"`
}

// FieldValue returns the stored local value of a date field
func (p Post) FieldValue(field string) string {
	switch field {
	case FieldPostDate:
		return p.Date
	case FieldPostModified:
		return p.Modified
	}
	return ""
}

// Comment is an approved comment with its owning post's publish date
type Comment struct {
	ID       int64  `json:"id"`
	PostID   int64  `json:"post_id"`
	Approved string `json:"approved"`
	Date     string `json:"comment_date"`
	DateGMT  string `json:"comment_date_gmt"`
	PostDate string `json:"post_date"`
}

// TaxFilter matches posts related to any of the listed terms in one taxonomy
type TaxFilter struct {
	Taxonomy string
	TermIDs  []int64
	Slugs    []string
}

// Empty reports a filter that names no terms
func (f TaxFilter) Empty() bool { return len(f.TermIDs) == 0 && len(f.Slugs) == 0 }

// Relation combines several TaxFilters
type Relation string

const (
	RelationAnd Relation = "AND"
	RelationOr  Relation = "OR"
)

// ParseRelation accepts AND or OR in any case; anything else is OR
func ParseRelation(s string) Relation {
	if strings.EqualFold(strings.TrimSpace(s), string(RelationAnd)) {
		return RelationAnd
	}
	return RelationOr
}

// CacheKey is the entity cache key for one entity
func CacheKey(kind Kind, id int64) string {
	if kind == KindComment {
		return "comment:" + strconv.FormatInt(id, 10)
	}
	return "post:" + strconv.FormatInt(id, 10)
}

// SanitizeKey lowercases s and keeps only [a-z0-9_-]
func SanitizeKey(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Label renders a type or tab key for humans, "book_review" becomes "Book Review"
func Label(key string) string {
	s := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(key))
	return cases.Title(language.English).String(s)
}
