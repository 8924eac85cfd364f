package util

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML turns a markup fragment into plain text. Line breaks become newlines,
// every other tag is dropped and entities are decoded.
func StripHTML(fragment string) string {
	var (
		b         strings.Builder
		tokenizer = html.NewTokenizer(strings.NewReader(fragment))
	)

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tokenizer.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "br":
				b.WriteByte('\n')
			case "p":
				if b.Len() > 0 {
					b.WriteString("\n\n")
				}
			}
		}
	}
}
