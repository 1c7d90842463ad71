package scorer

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var urlPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)

// MarkdownToText keeps the readable text of a markdown document: link
// labels stay, link targets, bare URLs and markup go.
func MarkdownToText(input string) string {
	md := blackfriday.New(blackfriday.WithNoExtensions())
	root := md.Parse([]byte(input))

	var b strings.Builder
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Text, blackfriday.Code, blackfriday.CodeBlock:
			if entering {
				b.Write(node.Literal)
			}
		case blackfriday.Softbreak, blackfriday.Hardbreak:
			b.WriteByte(' ')
		case blackfriday.Paragraph, blackfriday.Heading, blackfriday.Item:
			if !entering {
				b.WriteByte(' ')
			}
		}
		return blackfriday.GoToNext
	})

	plain := urlPattern.ReplaceAllString(b.String(), "")
	return strings.Join(strings.Fields(plain), " ")
}
