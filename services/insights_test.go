package services

import (
	"bytes"
	"strings"
	"testing"

	"foodfindr/models"
)

func sampleRestaurants() []*models.Restaurant {
	return []*models.Restaurant{
		{Name: "Pizzeria Regina", Link: "/r/1/", Price: "$", Tags: []string{"Pizza", "Italian"}},
		{Name: "Giacomo's", Link: "/r/2/", Price: "$$", Tags: []string{"Italian"}, GlutenFree: true},
		{Name: "O Ya", Link: "/r/3/", Price: "$$$$", Tags: []string{"Japanese", "Sushi"}},
		{Name: "Flour", Link: "/r/4/", Price: "", GlutenFree: true},
	}
}

func observeAll(s *InsightService) {
	for _, r := range sampleRestaurants() {
		s.Observe(r)
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	observeAll(svc)
	r := svc.Report(nil)

	if r.TotalRestaurants != 4 {
		t.Errorf("TotalRestaurants: got %d, want 4", r.TotalRestaurants)
	}
	if r.GlutenFree != 2 {
		t.Errorf("GlutenFree: got %d, want 2", r.GlutenFree)
	}
	if r.ByPrice["$$"] != 1 || r.ByPrice["unknown"] != 1 {
		t.Errorf("ByPrice: got %v", r.ByPrice)
	}
}

func TestInsightTopTags(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	observeAll(svc)
	r := svc.Report(nil)

	if len(r.TopTags) != 4 {
		t.Fatalf("TopTags len: got %d, want 4", len(r.TopTags))
	}
	if r.TopTags[0].Term != "italian" || r.TopTags[0].Count != 2 {
		t.Errorf("TopTags[0]: got %+v, want italian/2", r.TopTags[0])
	}
}

func TestInsightTopTerms(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	tbl := &models.TermCountTable{
		Terms:  []string{"fries", "pizza"},
		Links:  []string{"/r/1/", "/r/2/"},
		Counts: [][]int{{1, 3}, {0, 2}},
	}
	r := svc.Report(tbl)

	if r.VocabularySize != 2 {
		t.Errorf("VocabularySize: got %d, want 2", r.VocabularySize)
	}
	if r.TopTerms[0].Term != "pizza" || r.TopTerms[0].Count != 5 {
		t.Errorf("TopTerms[0]: got %+v, want pizza/5", r.TopTerms[0])
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Report(nil)
	if r.TotalRestaurants != 0 {
		t.Errorf("expected 0 restaurants for empty input")
	}

	var buf bytes.Buffer
	svc.Print(&buf, r)
	if !strings.Contains(buf.String(), "No cuisine data") {
		t.Errorf("expected empty cuisine notice, got:\n%s", buf.String())
	}
}

func TestInsightPrint(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	observeAll(svc)

	var buf bytes.Buffer
	svc.Print(&buf, svc.Report(nil))

	out := buf.String()
	for _, want := range []string{"Scrape summary", "Restaurants", "italian", "$$$$"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
