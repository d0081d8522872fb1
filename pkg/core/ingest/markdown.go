package ingest

import (
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"agentic_memo/pkg/models"
)

// MarkdownToText flattens a Markdown document to plain paragraphs,
// one block per blank-line-separated section, dropping code blocks and
// raw HTML. Block structure is kept so the chunker still sees
// paragraph boundaries.
func MarkdownToText(source string) string {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(source))
	root := parser.Parse(reader)
	src := []byte(source)

	var blocks []string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindParagraph, ast.KindHeading, ast.KindTextBlock:
			if t := blockText(n, src); t != "" {
				blocks = append(blocks, t)
			}
			return ast.WalkSkipChildren, nil
		case ast.KindCodeBlock, ast.KindFencedCodeBlock, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(blocks, "\n\n")
}

// MarkdownToRawDoc wraps a Markdown payload as a RawDoc, using the
// first heading as the title when one exists.
func MarkdownToRawDoc(url string, source string, sourceType models.SourceType, fetchedAt time.Time) models.RawDoc {
	title := ""
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader([]byte(source)))
	src := []byte(source)
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if n.Kind() == ast.KindHeading {
			title = blockText(n, src)
			break
		}
	}

	return models.RawDoc{
		URL:        url,
		Title:      title,
		Text:       MarkdownToText(source),
		SourceType: sourceType,
		FetchedAt:  fetchedAt,
	}
}

// blockText reassembles a block node's source lines into one
// whitespace-collapsed string.
func blockText(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
		sb.WriteByte(' ')
	}
	return collapseSpace(sb.String())
}
