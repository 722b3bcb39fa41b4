// Package parse builds a jsx.Module from JavaScript or TSX source using
// tree-sitter.
//
// Only the constructs the snapshot compiler inspects are modeled: JSX
// elements and their attributes, literals, arrays and plain object
// literals. Everything else is kept as source text with the JSX found
// inside it split out, so the printer reproduces untouched code verbatim.
package parse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"

	"github.com/roach88/snapc/internal/jsx"
)

// MaxFileSize is the largest source file Parse accepts.
const MaxFileSize = 10 * 1024 * 1024

// snapshotCall marks JSX that must compile to a snapshot in place. The call
// is replaced by the uid of the snapshot.
const snapshotCall = "__SNAPSHOT__"

var (
	// ErrFileTooLarge is returned for sources above MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")
	// ErrInvalidUTF8 is returned for sources that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("source is not valid UTF-8")
)

// SyntaxError reports the first malformed construct in a file.
type SyntaxError struct {
	Filename string
	Pos      jsx.Pos
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Pos.Line, e.Pos.Column, e.Message)
}

// Parse parses src. Files ending in .tsx or .ts are parsed with the TSX
// grammar, everything else with the JavaScript grammar (which includes JSX).
func Parse(ctx context.Context, filename string, src []byte) (*jsx.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}
	if len(src) > MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, filename, len(src), MaxFileSize)
	}
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%s: %w", filename, ErrInvalidUTF8)
	}

	parser := sitter.NewParser()
	if strings.HasSuffix(filename, ".tsx") || strings.HasSuffix(filename, ".ts") {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(javascript.GetLanguage())
	}

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("%s: tree-sitter returned no root node", filename)
	}

	p := newParser(filename, src)
	if root.HasError() {
		if n := firstError(root); n != nil {
			return nil, p.syntaxError(n)
		}
		return nil, &SyntaxError{Filename: filename, Pos: jsx.Pos{Line: 1, Column: 1}, Message: "syntax error"}
	}

	mod := &jsx.Module{Filename: filename, Source: src}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "comment", "hash_bang_line":
			mod.Items = append(mod.Items, &jsx.SRaw{Parts: []jsx.RawPart{{Text: p.text(n)}}})
		default:
			mod.Items = append(mod.Items, &jsx.SRaw{Parts: p.rawParts(n)})
		}
	}
	mod.Comments = p.comments(root)

	slog.Debug("parsed module",
		slog.String("file", filename),
		slog.Int("items", len(mod.Items)),
		slog.Int("comments", len(mod.Comments)))
	return mod, nil
}

// firstError finds the first ERROR or MISSING node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if e := firstError(n.Child(i)); e != nil {
			return e
		}
	}
	return nil
}

type parser struct {
	filename   string
	src        []byte
	lineStarts []int
}

func newParser(filename string, src []byte) *parser {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &parser{filename: filename, src: src, lineStarts: starts}
}

func (p *parser) syntaxError(n *sitter.Node) error {
	msg := "syntax error"
	switch {
	case n.IsMissing():
		msg = fmt.Sprintf("missing %s", n.Type())
	case n.EndByte() > n.StartByte():
		text := p.text(n)
		if len(text) > 40 {
			text = text[:40] + "..."
		}
		msg = fmt.Sprintf("unexpected %q", text)
	}
	return &SyntaxError{Filename: p.filename, Pos: p.pos(n), Message: msg}
}

func (p *parser) text(n *sitter.Node) string {
	return string(p.src[n.StartByte():n.EndByte()])
}

func (p *parser) pos(n *sitter.Node) jsx.Pos {
	pt := n.StartPoint()
	return jsx.Pos{Line: int(pt.Row) + 1, Column: int(pt.Column) + 1, Offset: int(n.StartByte())}
}

// posAt converts a byte offset into a position.
func (p *parser) posAt(off int) jsx.Pos {
	line := sort.Search(len(p.lineStarts), func(i int) bool { return p.lineStarts[i] > off }) - 1
	return jsx.Pos{Line: line + 1, Column: off - p.lineStarts[line] + 1, Offset: off}
}

// comments collects every comment in the tree, delimiters stripped.
func (p *parser) comments(root *sitter.Node) []jsx.Comment {
	var out []jsx.Comment
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "comment" {
			raw := p.text(n)
			c := jsx.Comment{Pos: p.pos(n)}
			if strings.HasPrefix(raw, "/*") {
				c.Block = true
				c.Text = strings.TrimSuffix(strings.TrimPrefix(raw, "/*"), "*/")
			} else {
				c.Text = strings.TrimPrefix(raw, "//")
			}
			out = append(out, c)
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return out
}

// hole is a span of opaque source replaced by a parsed JSX node.
type hole struct {
	start, end uint32
	part       jsx.RawPart
}

// rawParts splits the source of n around the outermost JSX it contains.
func (p *parser) rawParts(n *sitter.Node) []jsx.RawPart {
	var holes []hole
	p.findJSX(n, &holes)

	var parts []jsx.RawPart
	at := n.StartByte()
	for _, h := range holes {
		if h.start > at {
			parts = append(parts, jsx.RawPart{Text: string(p.src[at:h.start])})
		}
		parts = append(parts, h.part)
		at = h.end
	}
	if n.EndByte() > at {
		parts = append(parts, jsx.RawPart{Text: string(p.src[at:n.EndByte()])})
	}
	return parts
}

func (p *parser) findJSX(n *sitter.Node, holes *[]hole) {
	switch n.Type() {
	case "jsx_element", "jsx_self_closing_element":
		*holes = append(*holes, hole{n.StartByte(), n.EndByte(), jsx.RawPart{JSX: p.jsxExpr(n)}})
		return
	case "call_expression":
		if arg := p.snapshotArg(n); arg != nil {
			*holes = append(*holes, hole{n.StartByte(), n.EndByte(), jsx.RawPart{JSX: p.jsxExpr(arg), Snapshot: true}})
			return
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		p.findJSX(n.NamedChild(i), holes)
	}
}

// snapshotArg returns the JSX argument of __SNAPSHOT__(<jsx/>), or nil when
// n is any other call.
func (p *parser) snapshotArg(n *sitter.Node) *sitter.Node {
	fn := n.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" || p.text(fn) != snapshotCall {
		return nil
	}
	args := n.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() != 1 {
		return nil
	}
	arg := unparen(args.NamedChild(0))
	if arg.Type() != "jsx_element" && arg.Type() != "jsx_self_closing_element" {
		return nil
	}
	return arg
}

func unparen(n *sitter.Node) *sitter.Node {
	for n.Type() == "parenthesized_expression" && n.NamedChildCount() == 1 {
		n = n.NamedChild(0)
	}
	return n
}

func (p *parser) raw(n *sitter.Node) jsx.E {
	return &jsx.ERaw{Parts: p.rawParts(n)}
}

// hasComment reports whether a direct child of n is a comment. Nodes with
// interior comments stay opaque so the comments survive printing.
func hasComment(n *sitter.Node) bool {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if n.NamedChild(i).Type() == "comment" {
			return true
		}
	}
	return false
}
