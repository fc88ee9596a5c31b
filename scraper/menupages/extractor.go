package menupages

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"foodfindr/models"
)

// ErrMisaligned is returned when a listing page's rows and embedded
// coordinate entries cannot be paired one to one.
var ErrMisaligned = errors.New("listing rows and map data are misaligned")

const priceSelector = ".price1, .price2, .price3, .price4, .price5"

// mapDataRegexp matches the inline assignments the listing page uses to feed its map,
// e.g. data[3]['longitude'] = "-71.0589";
var mapDataRegexp = regexp.MustCompile(`data\[([0-9]+)\]\['(longitude|latitude|address1)'\] = "(.*?)";`)

type mapEntry struct {
	longitude string
	latitude  string
	address   string
}

// ExtractRestaurants pulls one Restaurant per listing row out of a listing page.
// Name, link and price are read from the same row of doc; the k-th row is paired
// with the k-th map data entry found in html, the raw page source. Differing
// counts yield ErrMisaligned.
func ExtractRestaurants(doc *goquery.Document, html string) ([]*models.Restaurant, error) {
	var restaurants []*models.Restaurant
	doc.Find(".link").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		restaurants = append(restaurants, &models.Restaurant{
			Name:  linkName(link),
			Link:  href,
			Price: strings.TrimSpace(listingRow(link).Find(priceSelector).First().Text()),
		})
	})

	entries := parseMapData(html)

	if len(entries) != len(restaurants) {
		return nil, fmt.Errorf("%w: %d rows, %d map entries", ErrMisaligned, len(restaurants), len(entries))
	}

	var err error
	for i, r := range restaurants {
		e := entries[i]
		if r.Longitude, err = strconv.ParseFloat(e.longitude, 64); err != nil {
			return nil, fmt.Errorf("row %d (%s): longitude %q: %w", i, r.Link, e.longitude, err)
		}
		if r.Latitude, err = strconv.ParseFloat(e.latitude, 64); err != nil {
			return nil, fmt.Errorf("row %d (%s): latitude %q: %w", i, r.Link, e.latitude, err)
		}
		r.Address = e.address
	}
	return restaurants, nil
}

// linkName is the link's text without the text of nested <span> badges.
func linkName(link *goquery.Selection) string {
	c := link.Clone()
	c.Find("span").Remove()
	return strings.TrimSpace(c.Text())
}

// listingRow returns the element that holds everything belonging to one listing.
func listingRow(link *goquery.Selection) *goquery.Selection {
	if row := link.Closest("tr"); row.Length() > 0 {
		return row
	}
	if row := link.Closest("li"); row.Length() > 0 {
		return row
	}
	return link.Parent()
}

// parseMapData groups the map assignments by index, ordered by first appearance.
// Entries missing a coordinate are kept so the count check can flag them.
func parseMapData(html string) []*mapEntry {
	var order []string
	byIndex := make(map[string]*mapEntry)

	for _, m := range mapDataRegexp.FindAllStringSubmatch(html, -1) {
		idx, field, value := m[1], m[2], m[3]
		e, ok := byIndex[idx]
		if !ok {
			e = &mapEntry{}
			byIndex[idx] = e
			order = append(order, idx)
		}
		switch field {
		case "longitude":
			e.longitude = value
		case "latitude":
			e.latitude = value
		case "address1":
			e.address = value
		}
	}

	entries := make([]*mapEntry, len(order))
	for i, idx := range order {
		entries[i] = byIndex[idx]
	}
	return entries
}
