// Package render converts Markdown documents to PDF bytes by walking
// the parsed Markdown tree and emitting styled text cells.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	fontFamily = "Helvetica"
	bodySize   = 11.0
	lineHeight = 6.0
)

// headingSizes maps heading levels 1-6 to font point sizes.
var headingSizes = []float64{18, 16, 14, 12.5, 11.5, 11}

// Renderer converts Markdown to PDF.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Markdown-to-PDF renderer.
func New() *Renderer {
	return &Renderer{md: goldmark.New()}
}

// Render converts a Markdown document into PDF bytes.
func (r *Renderer) Render(markdown string) ([]byte, error) {
	source := []byte(markdown)
	root := r.md.Parser().Parse(text.NewReader(source))

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	w := &writer{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor(""), source: source}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n, 0)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type writer struct {
	doc    *fpdf.Fpdf
	tr     func(string) string
	source []byte
}

func (w *writer) block(n ast.Node, depth int) {
	switch node := n.(type) {
	case *ast.Heading:
		level := node.Level
		if level > len(headingSizes) {
			level = len(headingSizes)
		}
		w.doc.SetFont(fontFamily, "B", headingSizes[level-1])
		w.doc.SetTextColor(51, 51, 51)
		w.doc.MultiCell(0, lineHeight+1, w.tr(w.inlineText(node)), "", "L", false)
		w.doc.SetTextColor(0, 0, 0)
		w.doc.Ln(2)

	case *ast.Paragraph, *ast.TextBlock:
		w.doc.SetFont(fontFamily, "", bodySize)
		w.doc.SetX(w.doc.GetX() + float64(depth)*5)
		w.doc.MultiCell(0, lineHeight, w.tr(w.inlineText(n)), "", "L", false)
		if depth == 0 {
			w.doc.Ln(2)
		}

	case *ast.List:
		w.list(node, depth)
		if depth == 0 {
			w.doc.Ln(2)
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.codeBlock(n)

	case *ast.Blockquote:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			w.block(c, depth+1)
		}

	case *ast.ThematicBreak:
		w.doc.Ln(2)
		x, y := w.doc.GetX(), w.doc.GetY()
		pageWidth, _ := w.doc.GetPageSize()
		w.doc.Line(x, y, pageWidth-20, y)
		w.doc.Ln(4)
	}
}

func (w *writer) list(list *ast.List, depth int) {
	index := list.Start
	if index == 0 {
		index = 1
	}

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "- "
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d. ", index)
			index++
		}

		w.doc.SetFont(fontFamily, "", bodySize)
		indent := 20 + float64(depth)*5
		w.doc.SetX(indent)

		var lines []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				if len(lines) > 0 {
					w.doc.MultiCell(0, lineHeight, w.tr(marker+strings.Join(lines, " ")), "", "L", false)
					lines = nil
					marker = "  "
				}
				w.list(nested, depth+1)
				continue
			}
			lines = append(lines, w.inlineText(c))
		}
		if len(lines) > 0 {
			w.doc.MultiCell(0, lineHeight, w.tr(marker+strings.Join(lines, " ")), "", "L", false)
		}
	}
}

func (w *writer) codeBlock(n ast.Node) {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(w.source))
	}

	w.doc.SetFont("Courier", "", bodySize-1)
	w.doc.SetFillColor(244, 244, 244)
	w.doc.MultiCell(0, lineHeight-1, w.tr(strings.TrimRight(sb.String(), "\n")), "", "L", true)
	w.doc.SetFillColor(255, 255, 255)
	w.doc.Ln(2)
}

// inlineText flattens a node's inline children into plain text. Styling
// of nested emphasis is intentionally dropped; structure carries the
// document, not inline weight.
func (w *writer) inlineText(n ast.Node) string {
	var sb strings.Builder
	w.collect(n, &sb)
	return sb.String()
}

func (w *writer) collect(n ast.Node, sb *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(w.source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteString(" ")
			}
		case *ast.AutoLink:
			sb.Write(node.URL(w.source))
		default:
			w.collect(node, sb)
		}
	}
}
