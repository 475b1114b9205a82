package competitor

import (
	"io"
	"strings"

	"github.com/baharkarakas/autoblog-backend/internal/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PageStats parses an HTML document and counts visible words, headings (h1-h6),
// non-empty paragraphs and images. Script, style and page chrome are skipped.
func PageStats(r io.Reader, pageURL string) (models.CompetitorStat, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return models.CompetitorStat{}, err
	}
	st := models.CompetitorStat{URL: pageURL}
	var walk func(n *html.Node, inBody bool)
	walk = func(n *html.Node, inBody bool) {
		switch n.Type {
		case html.TextNode:
			if inBody {
				st.WordCount += len(strings.Fields(n.Data))
			}
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Nav, atom.Footer:
				return
			case atom.Title:
				if st.Title == "" && n.FirstChild != nil {
					st.Title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			case atom.Body:
				inBody = true
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				st.HeadingsCount++
			case atom.P:
				if hasText(n) {
					st.ParagraphsCount++
				}
			case atom.Img:
				st.ImagesCount++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inBody)
		}
	}
	walk(doc, false)
	return st, nil
}

func hasText(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return true
		}
		if c.Type == html.ElementNode && hasText(c) {
			return true
		}
	}
	return false
}
