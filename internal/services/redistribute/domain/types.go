// Package domain holds the redistribution run model
package domain

import (
	"strings"
	"time"

	"bulkdate/internal/core/daterange"
	entdomain "bulkdate/internal/services/entities/domain"
)

// Field selects which post date fields a run overwrites
type Field string

const (
	FieldPublished Field = "published"
	FieldModified  Field = "modified"
	FieldBoth      Field = "date_both"
)

// ParseField maps operator input to a Field; anything unknown is modified
func ParseField(s string) Field {
	switch Field(strings.TrimSpace(s)) {
	case FieldPublished:
		return FieldPublished
	case FieldBoth:
		return FieldBoth
	}
	return FieldModified
}

// Columns are the bd_posts columns f writes, published first
func (f Field) Columns() []string {
	switch f {
	case FieldPublished:
		return []string{entdomain.FieldPostDate}
	case FieldBoth:
		return []string{entdomain.FieldPostDate, entdomain.FieldPostModified}
	}
	return []string{entdomain.FieldPostModified}
}

// Builtin tabs that are not post types
const (
	TabPosts    = "posts"
	TabPages    = "pages"
	TabComments = "comments"
)

// CommentField is the only column written for comments
const CommentField = "comment_date"

// Target is one selected entity; the set of implementations is closed
type Target interface {
	target()
	Kind() entdomain.Kind
	EntityID() int64
}

// PostItem is a regular post
type PostItem struct{ entdomain.Post }

// PageItem is a page
type PageItem struct{ entdomain.Post }

// CustomItem is a post of a custom type
type CustomItem struct{ entdomain.Post }

// CommentItem is an approved comment; its post date is the sampling floor
type CommentItem struct{ entdomain.Comment }

func (PostItem) target()    {}
func (PageItem) target()    {}
func (CustomItem) target()  {}
func (CommentItem) target() {}

// Kind implements Target
func (PostItem) Kind() entdomain.Kind { return entdomain.KindPost }

// Kind implements Target
func (PageItem) Kind() entdomain.Kind { return entdomain.KindPage }

// Kind implements Target
func (CustomItem) Kind() entdomain.Kind { return entdomain.KindCustom }

// Kind implements Target
func (CommentItem) Kind() entdomain.Kind { return entdomain.KindComment }

// EntityID implements Target
func (p PostItem) EntityID() int64 { return p.ID }

// EntityID implements Target
func (p PageItem) EntityID() int64 { return p.ID }

// EntityID implements Target
func (p CustomItem) EntityID() int64 { return p.ID }

// EntityID implements Target
func (c CommentItem) EntityID() int64 { return c.ID }

// RunInput is the parsed operator request, built once at the boundary
type RunInput struct {
	Tab             string             `json:"-"`
	Distribute      int64              `json:"distribute"        example:"0"`
	Range           string             `json:"range"             example:"01/01/24 - 01/10/24"`
	EnableTimeRange bool               `json:"enable_time_range" example:"true"`
	StartTime       string             `json:"start_time"        example:"09:00"`
	EndTime         string             `json:"end_time"          example:"17:30"`
	Field           string             `json:"field"             validate:"omitempty,oneof=published modified date_both" example:"modified"`
	Categories      []int64            `json:"categories,omitempty"`
	Tags            []string           `json:"tags,omitempty"        validate:"omitempty,dive,max=200"`
	Pages           []int64            `json:"pages,omitempty"`
	Tax             map[string][]int64 `json:"tax,omitempty"`
	TaxRelation     string             `json:"tax_relation,omitempty" example:"OR"`
	Operator        int64              `json:"-"`
}

// Window returns the raw resolver input
func (in RunInput) Window() daterange.Input {
	return daterange.Input{
		Distribute:      in.Distribute,
		Range:           in.Range,
		EnableTimeRange: in.EnableTimeRange,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
	}
}

// Plan is what every item of one run shares
type Plan struct {
	Field         Field
	Interval      daterange.Interval
	Window        daterange.Window
	UseCustomTime bool
	Operator      int64
}

// ItemResult is the outcome for one target
type ItemResult struct {
	Kind       entdomain.Kind `json:"kind"                  example:"post"`
	ID         int64          `json:"id"                    example:"12"`
	Title      string         `json:"title,omitempty"       example:"Hello world"`
	Fields     []string       `json:"fields,omitempty"`
	NewDate    string         `json:"new_date,omitempty"    example:"2024-01-07 18:42:11"`
	HistoryIDs []int64        `json:"history_ids,omitempty"`
	Err        string         `json:"error,omitempty"`
}

// OK reports whether the item was written
func (r ItemResult) OK() bool { return r.Err == "" }

// Report summarizes a run
type Report struct {
	RunID    string              `json:"run_id"   example:"6f1c2a8e-7a57-4d0e-9f8e-2b8d7c7c1f00"`
	Tab      string              `json:"tab"      example:"posts"`
	Count    int                 `json:"count"    example:"3"`
	Failed   int                 `json:"failed"   example:"0"`
	Items    []ItemResult        `json:"items"`
	Interval daterange.Interval  `json:"interval"`
	Window   *daterange.Window   `json:"window,omitempty"`
	Warnings []daterange.Warning `json:"warnings,omitempty"`
	Message  string              `json:"message"  example:"3 Posts dates successfully updated."`
}

// Offset is one "distribute into last" choice
type Offset struct {
	Label string `json:"label" example:"7 days"`
	Value int64  `json:"value" example:"1704067200"`
}

// NamedRange is one quick range button
type NamedRange struct {
	Key   string `json:"key"   example:"last7Days"`
	Label string `json:"label" example:"Last 7 Days"`
	Range string `json:"range" example:"01/01/24 - 01/07/24"`
}

// Presets are the operator shortcuts computed for a given instant
type Presets struct {
	Distribute   []Offset     `json:"distribute"`
	Ranges       []NamedRange `json:"ranges"`
	DefaultRange string       `json:"default_range" example:"01/04/24 - 01/07/24"`
}

// RangeLayout is the m/d/y form range strings use
const RangeLayout = "01/02/06"

// NewPresets computes the presets around now in loc
func NewPresets(now time.Time, loc *time.Location) Presets {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	day := func(t time.Time) string { return t.Format(RangeLayout) }
	span := func(a, b time.Time) string { return day(a) + " - " + day(b) }

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	lastMonthStart := firstOfMonth.AddDate(0, -1, 0)
	lastMonthEnd := firstOfMonth.AddDate(0, 0, -1)

	return Presets{
		Distribute: []Offset{
			{"1 hour", now.Add(-time.Hour).Unix()},
			{"3 days", now.AddDate(0, 0, -3).Unix()},
			{"7 days", now.AddDate(0, 0, -7).Unix()},
			{"15 Days", now.AddDate(0, 0, -15).Unix()},
			{"1 Month", now.AddDate(0, -1, 0).Unix()},
			{"2 Months", now.AddDate(0, -2, 0).Unix()},
			{"3 Months", now.AddDate(0, -3, 0).Unix()},
			{"6 Months", now.AddDate(0, -6, 0).Unix()},
		},
		Ranges: []NamedRange{
			{"today", "Today", span(now, now)},
			{"yesterday", "Yesterday", span(now.AddDate(0, 0, -1), now.AddDate(0, 0, -1))},
			{"last7Days", "Last 7 Days", span(now.AddDate(0, 0, -6), now)},
			{"last30Days", "Last 30 Days", span(now.AddDate(0, 0, -29), now)},
			{"thisMonth", "This Month", span(firstOfMonth, now)},
			{"lastMonth", "Last Month", span(lastMonthStart, lastMonthEnd)},
		},
		DefaultRange: span(now.AddDate(0, 0, -3), now),
	}
}
