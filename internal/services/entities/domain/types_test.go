package domain

import "testing"

func TestParseRelation(t *testing.T) {
	cases := map[string]Relation{"AND": RelationAnd, " and ": RelationAnd, "OR": RelationOr, "": RelationOr, "XOR": RelationOr}
	for in, want := range cases {
		if got := ParseRelation(in); got != want {
			t.Fatalf("ParseRelation(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeKey(t *testing.T) {
	cases := map[string]string{
		"Book_Review":   "book_review",
		"pages":         "pages",
		"x<script>y":    "xscripty",
		"  my-type 2 ":  "my-type2",
		"../../etc/pwd": "etcpwd",
	}
	for in, want := range cases {
		if got := SanitizeKey(in); got != want {
			t.Fatalf("SanitizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLabel(t *testing.T) {
	cases := map[string]string{"post": "Post", "book_review": "Book Review", "posts": "Posts", "my-type": "My Type"}
	for in, want := range cases {
		if got := Label(in); got != want {
			t.Fatalf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCacheKeyAndColumns(t *testing.T) {
	if CacheKey(KindPage, 5) != "post:5" || CacheKey(KindComment, 5) != "comment:5" {
		t.Fatalf("CacheKey mismatch")
	}
	if GMTColumn(FieldPostDate) != "post_date_gmt" || GMTColumn("post_title") != "" {
		t.Fatalf("GMTColumn mismatch")
	}
	p := Post{Date: "a", Modified: "b"}
	if p.FieldValue(FieldPostDate) != "a" || p.FieldValue(FieldPostModified) != "b" || p.FieldValue("x") != "" {
		t.Fatalf("FieldValue mismatch")
	}
}
