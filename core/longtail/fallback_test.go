package longtail

import (
	"reflect"
	"testing"

	"keywords-app-api/core/domain"
)

func TestFallbackGenerator_DefaultPatterns(t *testing.T) {
	gen := NewFallbackGenerator(nil)

	got := gen.Generate("캠핑")

	expected := []domain.LongtailCandidate{
		{Text: "캠핑 추천", Origin: domain.OriginPattern, Order: 1},
		{Text: "캠핑 후기", Origin: domain.OriginPattern, Order: 2},
		{Text: "캠핑 가격", Origin: domain.OriginPattern, Order: 3},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("unexpected candidates:\n got %+v\nwant %+v", got, expected)
	}
}

func TestFallbackGenerator_Deterministic(t *testing.T) {
	gen := NewFallbackGenerator(nil)

	if !reflect.DeepEqual(gen.Generate("blog"), gen.Generate("blog")) {
		t.Error("same seed should produce identical output")
	}
}

func TestFallbackGenerator_CustomPatterns(t *testing.T) {
	gen := NewFallbackGenerator([]string{" review ", "", "price"})

	got := gen.Generate("blog")

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Text != "blog review" || got[1].Text != "blog price" {
		t.Errorf("unexpected candidates: %+v", got)
	}
	if !reflect.DeepEqual(gen.Patterns(), []string{"review", "price"}) {
		t.Errorf("unexpected patterns: %v", gen.Patterns())
	}
}

func TestDedupe(t *testing.T) {
	in := []domain.LongtailCandidate{
		{Text: "SEO"},
		{Text: "seo"},
		{Text: " SEO  optimization"},
		{Text: "   "},
		{Text: "seo Optimization"},
		{Text: "seo tools"},
	}

	got := Dedupe(in, 0)
	if len(got) != 3 || got[0].Text != "SEO" || got[1].Text != " SEO  optimization" || got[2].Text != "seo tools" {
		t.Errorf("unexpected dedupe result: %+v", got)
	}

	capped := Dedupe(in, 2)
	if len(capped) != 2 {
		t.Errorf("expected cap of 2, got %d", len(capped))
	}
}
