package menupages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMenuSkipsPriceHeadings(t *testing.T) {
	html := menuHTML([]string{"Burger", "Fries!"}, nil, false)

	menu := ParseMenu(mustDoc(t, html), html)
	assert.Equal(t, "burger fries", menu.Tokens)
	assert.Empty(t, menu.Tags)
	assert.False(t, menu.GlutenFree)
}

func TestParseMenuFewerCellsThanHeadings(t *testing.T) {
	html := "<html><body><table><tr><th>$</th><th>$$</th></tr></table></body></html>"

	menu := ParseMenu(mustDoc(t, html), html)
	assert.Equal(t, "", menu.Tokens)
}

func TestParseMenuTagsAndGluten(t *testing.T) {
	html := menuHTML(
		[]string{"Margherita Pizza", "Gluten-free Penne with Vodka Sauce"},
		[]string{"Pizza", "Italian"},
		true,
	)

	menu := ParseMenu(mustDoc(t, html), html)
	assert.Equal(t, "margherita pizza gluten free penne vodka sauce", menu.Tokens)
	assert.Equal(t, []string{"Pizza", "Italian"}, menu.Tags)
	assert.True(t, menu.GlutenFree)
}

func TestCuisineTags(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{`googletag.pubads().setTargeting('cuisine', ['Thai','Vegetarian']);`, []string{"Thai", "Vegetarian"}},
		{`googletag.pubads().setTargeting('cuisine', "Seafood");`, []string{"Seafood"}},
		{`googletag.pubads().setTargeting('cuisine', ['Burgers (Gourmet)','Thai']);`, []string{"Burgers (Gourmet)", "Thai"}},
		{`googletag.pubads().setTargeting('cuisine', 'Pizza (By The Slice)');`, []string{"Pizza (By The Slice)"}},
		{`googletag.pubads().setTargeting('neighborhood', ['North End']);`, nil},
		{`no targeting at all`, nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cuisineTags(tt.src), tt.src)
	}
}

func TestMenuURL(t *testing.T) {
	assert.Equal(t,
		"http://boston.menupages.com/restaurants/neptune-oyster/menu",
		MenuURL("http://boston.menupages.com", "/restaurants/neptune-oyster/"))
}
