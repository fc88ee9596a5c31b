package models

// Restaurant is one listing scraped from the site. Link is the detail page's
// relative URL and identifies the record.
type Restaurant struct {
	Name       string
	Link       string
	Price      string
	Address    string
	Longitude  float64
	Latitude   float64
	Tags       []string
	GlutenFree bool

	// MenuTokens is the normalised, stopword-free menu text.
	MenuTokens string
}

// RatedRestaurant is one row of the file handled by the loader.
// Field order matches the file's fixed column order.
type RatedRestaurant struct {
	Name        string
	Address     string
	Latitude    *float64
	Longitude   *float64
	Link        string
	Price       string
	HealthColor string
	SpecialDiet string
}

// TermCountTable is a bag-of-words matrix: Counts[i][j] is how often Terms[j]
// occurs in the menu of the restaurant at Links[i].
type TermCountTable struct {
	Terms  []string
	Links  []string
	Counts [][]int
}

// TermCount pairs a term with its corpus frequency.
type TermCount struct {
	Term  string
	Count int
}

// InsightReport holds the run summary computed over the scraped restaurants.
type InsightReport struct {
	TotalRestaurants int
	GlutenFree       int
	ByPrice          map[string]int
	TopTags          []TermCount
	VocabularySize   int
	TopTerms         []TermCount
}
