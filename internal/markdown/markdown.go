// Package markdown renders post bodies to HTML with syntax-highlighted
// code blocks and produces plain-text excerpts for listings and meta tags.
package markdown

import (
	stdhtml "html"
	"html/template"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	md "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const lastGoodBreakRatio = 0.8

var (
	codeBlockPattern      = regexp.MustCompile("(?s)```.*?```")
	tablePattern          = regexp.MustCompile(`(?m)^\|.*\|.*$`)
	imagePattern          = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	horizontalRulePattern = regexp.MustCompile(`(?m)^---+$`)
	boldItalicPattern     = regexp.MustCompile(`\*\*\*(.*?)\*\*\*`)
	boldPattern           = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicAsteriskPattern = regexp.MustCompile(`\*(.*?)\*`)
	italicUnderscorePattern = regexp.MustCompile(`_(.*?)_`)
	headingPattern        = regexp.MustCompile(`(?m)^#{1,6}\s+(.*?)$`)
	inlineCodePattern     = regexp.MustCompile("`(.*?)`")
	linkPattern           = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	blockquotePattern     = regexp.MustCompile(`(?m)^\s*>\s*(.*?)$`)
	orderedListPattern    = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	htmlTagPattern        = regexp.MustCompile(`<[^>]*>`)
)

// ToHTML renders markdown source to HTML. Fenced code blocks are highlighted
// through chroma with class-based output; raw HTML in the source is skipped.
func ToHTML(input string) template.HTML {
	if strings.TrimSpace(input) == "" {
		return template.HTML("")
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(input))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags:          mdhtml.CommonFlags | mdhtml.SkipHTML,
		RenderNodeHook: renderNodeHook,
	})

	return template.HTML(md.Render(doc, renderer))
}

// Excerpt strips markdown syntax from input and truncates the remaining text
// to at most maxChars runes, breaking on a word boundary where possible.
func Excerpt(input string, maxChars int) string {
	if maxChars < 1 {
		return ""
	}

	clean := toPlainText(input)
	if clean == "" {
		return ""
	}

	if utf8.RuneCountInString(clean) <= maxChars {
		return clean
	}

	return truncateRunes(clean, maxChars)
}

func toPlainText(markdown string) string {
	text := markdown
	text = codeBlockPattern.ReplaceAllString(text, " ")
	text = tablePattern.ReplaceAllString(text, " ")
	text = imagePattern.ReplaceAllString(text, " ")
	text = horizontalRulePattern.ReplaceAllString(text, " ")

	text = boldItalicPattern.ReplaceAllString(text, "$1")
	text = boldPattern.ReplaceAllString(text, "$1")
	text = italicAsteriskPattern.ReplaceAllString(text, "$1")
	text = italicUnderscorePattern.ReplaceAllString(text, "$1")
	text = headingPattern.ReplaceAllString(text, "\n$1\n")
	text = inlineCodePattern.ReplaceAllString(text, "$1")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = blockquotePattern.ReplaceAllString(text, "$1")
	text = orderedListPattern.ReplaceAllString(text, "- ")
	text = htmlTagPattern.ReplaceAllString(text, "")

	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	return strings.Join(strings.Fields(text), " ")
}

func truncateRunes(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	truncateAt := maxChars
	minBreak := int(float64(maxChars) * lastGoodBreakRatio)
	for idx := maxChars - 1; idx >= minBreak; idx-- {
		if unicode.IsSpace(runes[idx]) {
			truncateAt = idx
			break
		}
	}

	truncated := strings.TrimSpace(string(runes[:truncateAt]))
	if truncated == "" {
		truncated = strings.TrimSpace(string(runes[:maxChars]))
	}

	return truncated + "..."
}

func renderNodeHook(writer io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	if !entering {
		return ast.GoToNext, false
	}

	switch typedNode := node.(type) {
	case *ast.CodeBlock:
		renderCodeBlock(writer, typedNode)
		return ast.SkipChildren, true
	case *ast.Code:
		renderInlineCode(writer, typedNode)
		return ast.SkipChildren, true
	default:
		return ast.GoToNext, false
	}
}

func renderCodeBlock(writer io.Writer, block *ast.CodeBlock) {
	code := string(block.Literal)
	lexer := pickLexer(codeLanguage(block.Info), code)
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		renderPlainCodeBlock(writer, code)
		return
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.Format(writer, styles.Fallback, iterator); err != nil {
		renderPlainCodeBlock(writer, code)
	}
}

func renderInlineCode(writer io.Writer, code *ast.Code) {
	_, _ = io.WriteString(writer, `<code class="inline-code">`)
	_, _ = io.WriteString(writer, stdhtml.EscapeString(string(code.Literal)))
	_, _ = io.WriteString(writer, `</code>`)
}

func renderPlainCodeBlock(writer io.Writer, code string) {
	_, _ = io.WriteString(writer, `<pre class="chroma"><code>`)
	_, _ = io.WriteString(writer, stdhtml.EscapeString(code))
	_, _ = io.WriteString(writer, `</code></pre>`)
}

func pickLexer(language string, code string) chroma.Lexer {
	if language != "" {
		if lexer := lexers.Get(language); lexer != nil {
			return lexer
		}
	}

	if lexer := lexers.Analyse(code); lexer != nil {
		return lexer
	}

	return lexers.Fallback
}

func codeLanguage(info []byte) string {
	trimmed := strings.TrimSpace(string(info))
	if trimmed == "" {
		return ""
	}

	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return ""
	}

	return strings.ToLower(fields[0])
}
