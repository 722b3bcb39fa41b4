package parse

import (
	"html"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/roach88/snapc/internal/jsx"
)

func (p *parser) jsxExpr(n *sitter.Node) jsx.E {
	if n.Type() == "jsx_element" && p.tagName(n.Child(0)) == nil {
		return &jsx.EJSXFragment{Fragment: &jsx.Fragment{Children: p.children(n), Pos: p.pos(n)}}
	}
	return &jsx.EJSXElement{Element: p.element(n)}
}

// child converts a JSX node in child position.
func (p *parser) child(n *sitter.Node) jsx.Child {
	switch e := p.jsxExpr(n).(type) {
	case *jsx.EJSXFragment:
		return e.Fragment
	case *jsx.EJSXElement:
		return e.Element
	}
	return nil
}

// element converts a jsx_element or jsx_self_closing_element.
func (p *parser) element(n *sitter.Node) *jsx.Element {
	el := &jsx.Element{Pos: p.pos(n)}
	tag := n
	if n.Type() == "jsx_element" {
		tag = n.Child(0)
		el.Children = p.children(n)
	} else {
		el.SelfClosing = true
	}

	if name := p.tagName(tag); name != nil {
		el.Name = p.elementName(name)
	}
	for i := 0; i < int(tag.NamedChildCount()); i++ {
		c := tag.NamedChild(i)
		switch c.Type() {
		case "jsx_attribute":
			el.Attrs = append(el.Attrs, p.attribute(c))
		case "jsx_expression":
			if inner := firstNonComment(c); inner != nil && inner.Type() == "spread_element" {
				el.Attrs = append(el.Attrs, &jsx.Attr{Spread: p.expr(inner.NamedChild(0)), Pos: p.pos(c)})
			}
		}
	}
	return el
}

// tagName returns the name node of an opening or self-closing tag, or nil
// for a fragment.
func (p *parser) tagName(tag *sitter.Node) *sitter.Node {
	if tag == nil {
		return nil
	}
	if n := tag.ChildByFieldName("name"); n != nil {
		return n
	}
	for i := 0; i < int(tag.NamedChildCount()); i++ {
		switch c := tag.NamedChild(i); c.Type() {
		case "jsx_attribute", "jsx_expression", "comment":
		default:
			return c
		}
	}
	return nil
}

func (p *parser) elementName(n *sitter.Node) jsx.ElementName {
	switch n.Type() {
	case "jsx_namespace_name":
		return jsx.ElementName{
			Kind:      jsx.NameNamespaced,
			Namespace: p.text(n.NamedChild(0)),
			Name:      p.text(n.NamedChild(1)),
		}
	case "member_expression", "nested_identifier":
		return jsx.ElementName{Kind: jsx.NameMember, Name: p.text(n)}
	}
	return jsx.Ident(p.text(n))
}

func (p *parser) attribute(n *sitter.Node) *jsx.Attr {
	a := &jsx.Attr{Pos: p.pos(n)}
	name := n.NamedChild(0)
	if name.Type() == "jsx_namespace_name" {
		a.Namespace = p.text(name.NamedChild(0))
		a.Name = p.text(name.NamedChild(1))
	} else {
		a.Name = p.text(name)
	}
	if n.NamedChildCount() < 2 {
		return a
	}

	v := n.NamedChild(int(n.NamedChildCount()) - 1)
	switch v.Type() {
	case "string":
		raw := p.text(v)
		a.Value = &jsx.EString{Value: html.UnescapeString(raw[1 : len(raw)-1]), Raw: raw}
	case "jsx_expression":
		a.Container = true
		a.Value = p.container(v)
	default:
		a.Value = p.jsxExpr(v)
	}
	return a
}

// container converts the inside of {...}; comment-only and empty containers
// become EEmpty.
func (p *parser) container(n *sitter.Node) jsx.E {
	inner := firstNonComment(n)
	if inner == nil {
		raw := p.text(n)
		return &jsx.EEmpty{Raw: raw[1 : len(raw)-1]}
	}
	return p.expr(inner)
}

func firstNonComment(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() != "comment" {
			return c
		}
	}
	return nil
}

// children converts the children of a jsx_element. Text is taken from the
// source between child nodes rather than from jsx_text tokens, which drop
// surrounding whitespace. A child node starts where its previous sibling
// ends, so a whitespace-only gap belongs to the next node and yields no Text.
// Such text would normalize away anyway.
func (p *parser) children(n *sitter.Node) []jsx.Child {
	count := int(n.ChildCount())
	if count < 2 {
		return nil
	}
	open, closing := n.Child(0), n.Child(count-1)

	var out []jsx.Child
	at := int(open.EndByte())
	text := func(end int) {
		if end > at {
			out = append(out, &jsx.Text{Raw: string(p.src[at:end]), Pos: p.posAt(at)})
		}
	}
	for i := 1; i < count-1; i++ {
		c := n.Child(i)
		var child jsx.Child
		switch c.Type() {
		case "jsx_element", "jsx_self_closing_element":
			child = p.child(c)
		case "jsx_expression":
			inner := firstNonComment(c)
			if inner != nil && inner.Type() == "spread_element" {
				child = &jsx.SpreadChild{Expr: p.expr(inner.NamedChild(0)), Pos: p.pos(c)}
			} else {
				child = &jsx.ExprContainer{Expr: p.container(c), Pos: p.pos(c)}
			}
		default:
			continue
		}
		text(int(c.StartByte()))
		out = append(out, child)
		at = int(c.EndByte())
	}
	text(int(closing.StartByte()))
	return out
}
