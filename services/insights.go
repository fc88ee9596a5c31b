package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"foodfindr/models"
	"foodfindr/utils"
)

const topN = 10

// InsightService accumulates a summary while restaurants stream past.
type InsightService struct {
	logger *utils.Logger

	total   int
	gluten  int
	byPrice map[string]int
	tags    map[string]int
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{
		logger:  logger,
		byPrice: make(map[string]int),
		tags:    make(map[string]int),
	}
}

// Observe records one emitted restaurant.
func (s *InsightService) Observe(r *models.Restaurant) {
	s.total++
	if r.GlutenFree {
		s.gluten++
	}
	price := r.Price
	if price == "" {
		price = "unknown"
	}
	s.byPrice[price]++
	for _, tag := range r.Tags {
		s.tags[strings.ToLower(tag)]++
	}
}

// Report builds the summary. table may be nil when no term counts were built.
func (s *InsightService) Report(tbl *models.TermCountTable) *models.InsightReport {
	report := &models.InsightReport{
		TotalRestaurants: s.total,
		GlutenFree:       s.gluten,
		ByPrice:          make(map[string]int, len(s.byPrice)),
		TopTags:          TopTerms(s.tags, topN),
	}
	for k, v := range s.byPrice {
		report.ByPrice[k] = v
	}

	if tbl != nil {
		report.VocabularySize = len(tbl.Terms)
		totals := make(map[string]int, len(tbl.Terms))
		for _, row := range tbl.Counts {
			for j, n := range row {
				totals[tbl.Terms[j]] += n
			}
		}
		report.TopTerms = TopTerms(totals, topN)
	}

	s.logger.Debug("[insights] %d restaurants, %d price tiers, %d distinct tags",
		report.TotalRestaurants, len(report.ByPrice), len(s.tags))
	return report
}

// Print renders the report as tables on w.
func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	overview := table.NewWriter()
	overview.SetOutputMirror(w)
	overview.SetStyle(table.StyleLight)
	overview.SetTitle("Scrape summary")
	overview.AppendRows([]table.Row{
		{"Restaurants", r.TotalRestaurants},
		{"Gluten free menus", r.GlutenFree},
		{"Vocabulary size", r.VocabularySize},
	})
	overview.Render()

	prices := make([]string, 0, len(r.ByPrice))
	for p := range r.ByPrice {
		prices = append(prices, p)
	}
	sort.Strings(prices)

	priceTbl := table.NewWriter()
	priceTbl.SetOutputMirror(w)
	priceTbl.SetStyle(table.StyleLight)
	priceTbl.AppendHeader(table.Row{"Price", "Restaurants"})
	for _, p := range prices {
		priceTbl.AppendRow(table.Row{p, r.ByPrice[p]})
	}
	priceTbl.Render()

	renderCounts(w, "Cuisine", r.TopTags)
	renderCounts(w, "Menu term", r.TopTerms)
}

func renderCounts(w io.Writer, heading string, counts []models.TermCount) {
	if len(counts) == 0 {
		fmt.Fprintf(w, "No %s data\n", strings.ToLower(heading))
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", heading, "Count"})
	for i, tc := range counts {
		t.AppendRow(table.Row{i + 1, tc.Term, tc.Count})
	}
	t.Render()
}
