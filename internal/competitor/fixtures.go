package competitor

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/baharkarakas/autoblog-backend/internal/models"
)

const DefaultCountry = "us"

var countryAliases = map[string]string{
	"uk":  "gb",
	"usa": "us",
	"uae": "ae",
}

type fixture struct {
	host     string
	titleFmt string

	words, headings, paragraphs, images int
}

// Static per-country competitor datasets. Titles and URLs are built from the keyword.
var fixtures = map[string][]fixture{
	"us": {
		{"www.searchjournal.com", "The Complete Guide to %s in 2024", 2450, 14, 38, 8},
		{"blog.hubspot.com", "%s: 25 Tips From the Experts", 3120, 18, 52, 12},
		{"moz.com", "What Is %s? A Beginner's Guide", 1890, 11, 29, 6},
		{"backlinko.com", "%s: The Definitive Guide", 4210, 22, 61, 15},
		{"neilpatel.com", "How to Master %s (Step by Step)", 2760, 16, 44, 9},
	},
	"gb": {
		{"www.theguardian.com", "%s explained", 1650, 8, 27, 4},
		{"www.bbc.co.uk", "Everything you need to know about %s", 1420, 7, 24, 5},
		{"www.which.co.uk", "%s: our expert guide", 2210, 13, 35, 7},
		{"www.moneysavingexpert.com", "%s - a practical UK guide", 2980, 17, 48, 6},
		{"www.telegraph.co.uk", "The best approach to %s", 1780, 9, 30, 5},
	},
	"ca": {
		{"www.cbc.ca", "%s: what Canadians should know", 1560, 9, 26, 4},
		{"www.canadianbusiness.com", "A guide to %s for Canadian businesses", 2340, 14, 37, 7},
		{"www.thestar.com", "%s, explained", 1380, 7, 22, 3},
		{"www.shopify.com/ca/blog", "%s: tips and examples", 2870, 19, 45, 11},
		{"www.bdc.ca", "How to get started with %s", 2120, 12, 34, 6},
	},
	"au": {
		{"www.abc.net.au", "%s: a quick explainer", 1290, 6, 21, 3},
		{"www.smh.com.au", "What %s means for Australians", 1640, 8, 27, 5},
		{"www.business.gov.au", "%s guide for small business", 2450, 15, 39, 4},
		{"www.finder.com.au", "%s compared", 3050, 20, 50, 10},
		{"www.canstar.com.au", "Understanding %s", 1980, 11, 31, 6},
	},
	"in": {
		{"economictimes.indiatimes.com", "%s: all you need to know", 1720, 10, 28, 5},
		{"www.livemint.com", "%s explained in simple terms", 1480, 8, 25, 4},
		{"www.hindustantimes.com", "Top tips on %s", 1350, 9, 23, 6},
		{"yourstory.com", "%s for Indian startups", 2260, 13, 36, 8},
		{"www.ndtv.com", "A guide to %s", 1590, 9, 26, 5},
	},
	"ae": {
		{"www.khaleejtimes.com", "%s in the UAE: a guide", 1540, 9, 25, 6},
		{"gulfnews.com", "%s: what residents need to know", 1420, 8, 23, 5},
		{"www.thenationalnews.com", "Understanding %s", 1930, 11, 31, 7},
		{"www.arabianbusiness.com", "%s for regional businesses", 2180, 13, 34, 8},
		{"www.bayut.com/mybayut", "%s explained", 2640, 16, 42, 14},
	},
}

// FixtureSource serves the static datasets. Unknown countries get DefaultCountry.
type FixtureSource struct{}

func NewFixtureSource() *FixtureSource { return &FixtureSource{} }

func (FixtureSource) Name() string { return "fixture" }

func (FixtureSource) Fetch(_ context.Context, keyword, country string) ([]models.CompetitorStat, error) {
	set := fixtures[ResolveCountry(country)]
	slug := url.PathEscape(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(keyword)), " ", "-"))
	out := make([]models.CompetitorStat, 0, len(set))
	for _, f := range set {
		out = append(out, models.CompetitorStat{
			URL:             fmt.Sprintf("https://%s/%s", f.host, slug),
			Title:           fmt.Sprintf(f.titleFmt, keyword),
			WordCount:       f.words,
			HeadingsCount:   f.headings,
			ParagraphsCount: f.paragraphs,
			ImagesCount:     f.images,
		})
	}
	return out, nil
}

// ResolveCountry normalises a country code; absent or unknown codes resolve to DefaultCountry.
func ResolveCountry(country string) string {
	c := strings.ToLower(strings.TrimSpace(country))
	if alias, ok := countryAliases[c]; ok {
		c = alias
	}
	if _, ok := fixtures[c]; !ok {
		return DefaultCountry
	}
	return c
}

// Countries lists the codes with a dataset.
func Countries() []string {
	out := make([]string, 0, len(fixtures))
	for c := range fixtures {
		out = append(out, c)
	}
	return out
}
