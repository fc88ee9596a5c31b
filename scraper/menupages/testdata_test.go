package menupages

import (
	"fmt"
	"strings"
)

type fixtureRow struct {
	name, link, price, address string
	lon, lat                   string
}

// listingHTML renders a listing page in the shape of the live site: a results
// table with one row per restaurant plus an inline script feeding the map.
func listingHTML(total int, rows []fixtureRow) string {
	var b strings.Builder
	b.WriteString("<html><head><title>Restaurants</title></head><body>\n")
	fmt.Fprintf(&b, "<p class=\"results\">Showing <strong>%s</strong> restaurants</p>\n", withCommas(total))
	b.WriteString("<table class=\"search-results\"><tbody>\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "<tr><td class=\"name-address\"><a class=\"link\" href=\"%s\"><span class=\"new\">NEW</span>%s</a></td>", r.link, r.name)
		if r.price != "" {
			fmt.Fprintf(&b, "<td><span class=\"price%d\">%s</span></td>", len(r.price), r.price)
		} else {
			b.WriteString("<td></td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody></table>\n<script type=\"text/javascript\">\nvar data = [];\n")
	for i, r := range rows {
		fmt.Fprintf(&b, "data[%d] = {};\n", i)
		fmt.Fprintf(&b, "data[%d]['longitude'] = \"%s\";\n", i, r.lon)
		fmt.Fprintf(&b, "data[%d]['latitude'] = \"%s\";\n", i, r.lat)
		fmt.Fprintf(&b, "data[%d]['address1'] = \"%s\";\n", i, r.address)
	}
	b.WriteString("</script>\n</body></html>")
	return b.String()
}

// menuHTML renders a menu page: seven price headings, then one header cell per dish.
func menuHTML(dishes []string, cuisines []string, glutenFree bool) string {
	var b strings.Builder
	b.WriteString("<html><head><script>\n")
	if len(cuisines) > 0 {
		quoted := make([]string, len(cuisines))
		for i, c := range cuisines {
			quoted[i] = "'" + c + "'"
		}
		fmt.Fprintf(&b, "googletag.pubads().setTargeting('cuisine', [%s]);\n", strings.Join(quoted, ","))
	}
	b.WriteString("</script></head><body>\n")
	if glutenFree {
		b.WriteString("<div class=\"features\"><h4>Gluten Free Items</h4></div>\n")
	}
	b.WriteString("<table class=\"prices\"><tr>")
	for _, h := range []string{"$", "$$", "$$$", "$4", "$5", "$6", "$7"} {
		fmt.Fprintf(&b, "<th>%s</th>", h)
	}
	b.WriteString("</tr></table>\n<table class=\"menu\">")
	for _, d := range dishes {
		fmt.Fprintf(&b, "<tr><th>%s</th><td>9.95</td></tr>", d)
	}
	b.WriteString("</table></body></html>")
	return b.String()
}

func withCommas(n int) string {
	s := fmt.Sprint(n)
	if len(s) <= 3 {
		return s
	}
	return withCommas(n/1000) + "," + s[len(s)-3:]
}
