package boe

import (
	"strings"

	"golang.org/x/net/html"
)

// PageTitle returns the text of the first <title> element in an HTML page,
// with whitespace collapsed. It returns "" when no title is present.
func PageTitle(page string) string {
	z := html.NewTokenizer(strings.NewReader(page))
	inTitle := false
	var b strings.Builder

	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapse(b.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == "title" {
				inTitle = true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if inTitle && string(name) == "title" {
				return collapse(b.String())
			}
		case html.TextToken:
			if inTitle {
				b.Write(z.Text())
			}
		}
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
