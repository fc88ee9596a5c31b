package menupages

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageSize is the number of restaurants a listing page shows.
const PageSize = 100

// ErrNoTotal is returned when a listing page does not show a result count.
var ErrNoTotal = errors.New("listing page has no result count")

// PageCount returns how many listing pages hold total restaurants.
func PageCount(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}

// ListingPageURL returns the URL of the given 1-based listing page.
func ListingPageURL(listingURL string, page int) string {
	return listingURL + strconv.Itoa(page)
}

// ParseTotal reads the result count shown in the first <strong> element.
func ParseTotal(doc *goquery.Document) (int, error) {
	strong := doc.Find("strong").First()
	if strong.Length() == 0 {
		return 0, ErrNoTotal
	}

	text := strings.TrimSpace(strong.Text())
	text = strings.ReplaceAll(text, ",", "")
	total, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrNoTotal, strong.Text())
	}
	return total, nil
}
