package menupages

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"foodfindr/services"
)

// priceHeaderCells is the number of leading header cells on a menu page that
// hold price column headings rather than dishes.
const priceHeaderCells = 7

const glutenFreeMarker = "Gluten Free Items"

var (
	// cuisineCallRegexp matches the ad-targeting call that lists a restaurant's cuisines.
	// The value is either an array literal or a single quoted string.
	cuisineCallRegexp = regexp.MustCompile(`setTargeting\(\s*'cuisine'\s*,\s*(\[[^\]]*\]|'[^']*'|"[^"]*")`)
	quotedRegexp      = regexp.MustCompile(`'([^']*)'|"([^"]*)"`)
)

// Menu is what one menu page contributes to a restaurant.
type Menu struct {
	Tokens     string
	Tags       []string
	GlutenFree bool
}

// MenuURL returns the menu page of the restaurant at the given detail link.
func MenuURL(baseURL, link string) string {
	return baseURL + link + "menu"
}

// ParseMenu extracts the menu token string, cuisine tags and gluten free flag
// from a menu page. html is the raw page source the tags are matched against.
func ParseMenu(doc *goquery.Document, html string) *Menu {
	return &Menu{
		Tokens:     services.NormalizeMenu(strings.Join(menuItems(doc), " ")),
		Tags:       cuisineTags(html),
		GlutenFree: strings.Contains(html, glutenFreeMarker),
	}
}

// menuItems returns the text of every header cell after the price headings.
func menuItems(doc *goquery.Document) []string {
	var items []string
	doc.Find("th").Each(func(i int, th *goquery.Selection) {
		if i < priceHeaderCells {
			return
		}
		items = append(items, th.Text())
	})
	return items
}

// cuisineTags returns the quoted values passed with the 'cuisine' targeting key.
func cuisineTags(html string) []string {
	var tags []string
	for _, call := range cuisineCallRegexp.FindAllStringSubmatch(html, -1) {
		for _, q := range quotedRegexp.FindAllStringSubmatch(call[1], -1) {
			tag := q[1]
			if tag == "" {
				tag = q[2]
			}
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
