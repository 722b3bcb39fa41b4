package parse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/roach88/snapc/internal/jsx"
)

// expr converts an expression node. Constructs the compiler does not look
// inside become ERaw.
func (p *parser) expr(n *sitter.Node) jsx.E {
	switch n.Type() {
	case "string":
		raw := p.text(n)
		v, ok := unquote(raw)
		if !ok {
			return p.raw(n)
		}
		return &jsx.EString{Value: v, Raw: raw}
	case "number":
		return &jsx.ENumber{Raw: p.text(n)}
	case "true", "false":
		return &jsx.EBoolean{Value: n.Type() == "true"}
	case "null":
		return &jsx.ENull{}
	case "identifier", "undefined", "this":
		return jsx.Id(p.text(n))
	case "template_string":
		return p.template(n)
	case "array":
		return p.array(n)
	case "object":
		return p.object(n)
	case "unary_expression":
		if n.ChildCount() == 2 && n.Child(0).Type() == "-" && n.Child(1).Type() == "number" {
			return &jsx.ENumber{Raw: "-" + p.text(n.Child(1))}
		}
	case "parenthesized_expression":
		if inner := unparen(n); isJSX(inner) {
			return p.jsxExpr(inner)
		}
	case "jsx_element", "jsx_self_closing_element":
		return p.jsxExpr(n)
	}
	return p.raw(n)
}

func isJSX(n *sitter.Node) bool {
	return n.Type() == "jsx_element" || n.Type() == "jsx_self_closing_element"
}

func (p *parser) template(n *sitter.Node) jsx.E {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if n.NamedChild(i).Type() == "template_substitution" {
			return p.raw(n)
		}
	}
	raw := p.text(n)
	v, ok := unescape(raw[1 : len(raw)-1])
	if !ok {
		return p.raw(n)
	}
	return &jsx.ETemplate{Value: v, Raw: raw}
}

func (p *parser) array(n *sitter.Node) jsx.E {
	if hasComment(n) {
		return p.raw(n)
	}
	out := &jsx.EArray{}
	// A comma directly after "[" or another comma is a hole.
	prevSep := true
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "[", "]":
			continue
		case ",":
			if prevSep {
				return p.raw(n)
			}
			prevSep = true
			continue
		case "spread_element":
			return p.raw(n)
		}
		prevSep = false
		out.Items = append(out.Items, p.expr(c))
	}
	return out
}

func (p *parser) object(n *sitter.Node) jsx.E {
	if hasComment(n) {
		return p.raw(n)
	}
	out := &jsx.EObject{}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "pair":
			prop, ok := p.pair(c)
			if !ok {
				return p.raw(n)
			}
			out.Props = append(out.Props, prop)
		case "shorthand_property_identifier":
			out.Props = append(out.Props, jsx.Property{Kind: jsx.PropShorthand, Value: jsx.Id(p.text(c))})
		case "spread_element":
			out.Props = append(out.Props, jsx.Property{Kind: jsx.PropSpread, Value: p.expr(c.NamedChild(0))})
		default:
			return p.raw(n)
		}
	}
	return out
}

func (p *parser) pair(n *sitter.Node) (jsx.Property, bool) {
	key, value := n.ChildByFieldName("key"), n.ChildByFieldName("value")
	if key == nil || value == nil {
		return jsx.Property{}, false
	}
	prop := jsx.Property{Kind: jsx.PropKeyValue, Value: p.expr(value)}
	raw := p.text(key)
	switch key.Type() {
	case "property_identifier":
		prop.Key, prop.KeyRaw = raw, raw
	case "string":
		v, ok := unquote(raw)
		if !ok {
			return jsx.Property{}, false
		}
		prop.Key, prop.KeyRaw = v, raw
	case "number":
		prop.Key, prop.KeyRaw, prop.NumericKey = raw, raw, true
	case "computed_property_name":
		prop.Kind = jsx.PropComputed
		prop.KeyExpr = p.expr(key.NamedChild(0))
	default:
		return jsx.Property{}, false
	}
	return prop, true
}

// unquote cooks a single- or double-quoted JavaScript string literal.
func unquote(raw string) (string, bool) {
	if len(raw) < 2 || (raw[0] != '"' && raw[0] != '\'') || raw[len(raw)-1] != raw[0] {
		return "", false
	}
	return unescape(raw[1 : len(raw)-1])
}

// unescape resolves JavaScript escape sequences.
func unescape(s string) (string, bool) {
	if !strings.Contains(s, `\`) {
		return s, true
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", false
		}
		switch c = s[i]; c {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case 'x':
			r, ok := hexRune(s, i+1, i+3)
			if !ok {
				return "", false
			}
			b.WriteRune(r)
			i += 2
		case 'u':
			if i+1 < len(s) && s[i+1] == '{' {
				end := strings.IndexByte(s[i:], '}')
				if end < 0 {
					return "", false
				}
				r, ok := hexRune(s, i+2, i+end)
				if !ok {
					return "", false
				}
				b.WriteRune(r)
				i += end
				continue
			}
			r, ok := hexRune(s, i+1, i+5)
			if !ok {
				return "", false
			}
			b.WriteRune(r)
			i += 4
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), true
}

func hexRune(s string, from, to int) (rune, bool) {
	if from >= to || to > len(s) {
		return 0, false
	}
	var r rune
	for _, c := range s[from:to] {
		switch {
		case c >= '0' && c <= '9':
			r = r*16 + c - '0'
		case c >= 'a' && c <= 'f':
			r = r*16 + c - 'a' + 10
		case c >= 'A' && c <= 'F':
			r = r*16 + c - 'A' + 10
		default:
			return 0, false
		}
	}
	return r, true
}
