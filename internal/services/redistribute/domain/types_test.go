package domain

import (
	"testing"

	entdomain "bulkdate/internal/services/entities/domain"
)

func TestParseFieldColumns(t *testing.T) {
	cases := []struct {
		in   string
		want Field
		cols []string
	}{
		{"published", FieldPublished, []string{"post_date"}},
		{"modified", FieldModified, []string{"post_modified"}},
		{"date_both", FieldBoth, []string{"post_date", "post_modified"}},
		{"", FieldModified, []string{"post_modified"}},
		{"post_date", FieldModified, []string{"post_modified"}},
	}
	for _, c := range cases {
		f := ParseField(c.in)
		if f != c.want {
			t.Fatalf("ParseField(%q) = %q, want %q", c.in, f, c.want)
		}
		got := f.Columns()
		if len(got) != len(c.cols) {
			t.Fatalf("%q columns = %v", c.in, got)
		}
		for i := range got {
			if got[i] != c.cols[i] {
				t.Fatalf("%q columns = %v", c.in, got)
			}
		}
	}
}

func TestTargetKinds(t *testing.T) {
	targets := []Target{
		PostItem{entdomain.Post{ID: 1}},
		PageItem{entdomain.Post{ID: 2}},
		CustomItem{entdomain.Post{ID: 3}},
		CommentItem{entdomain.Comment{ID: 4}},
	}
	want := []entdomain.Kind{entdomain.KindPost, entdomain.KindPage, entdomain.KindCustom, entdomain.KindComment}
	for i, tg := range targets {
		if tg.Kind() != want[i] || tg.EntityID() != int64(i+1) {
			t.Fatalf("target %d = %s/%d", i, tg.Kind(), tg.EntityID())
		}
	}
}
