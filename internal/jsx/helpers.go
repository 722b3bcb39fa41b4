package jsx

import (
	"html"
	"strings"
)

// TagName returns the intrinsic tag name of el ("view", "list-item",
// "ns:name") and true, or "" and false when el names a component.
func TagName(el *Element) (string, bool) {
	switch el.Name.Kind {
	case NameNamespaced:
		return el.Name.String(), true
	case NameMember:
		return "", false
	}
	name := el.Name.Name
	if name == "this" || name == "" {
		return "", false
	}
	if c := name[0]; c >= 'a' && c <= 'z' {
		return name, true
	}
	return "", false
}

// IsCustom reports whether el renders a component rather than a builtin
// element. Capitalized and member-expression tags are components, and so is
// the reserved lowercase `page`.
func IsCustom(el *Element) bool {
	name, ok := TagName(el)
	if !ok {
		return true
	}
	return name == "page"
}

// IsTag reports whether el is the intrinsic element named tag.
func IsTag(el *Element, tag string) bool {
	name, ok := TagName(el)
	return ok && name == tag
}

// IsList reports whether el is a <list>.
func IsList(el *Element) bool {
	return IsTag(el, "list")
}

// IsListItem reports whether el is a <list-item>.
func IsListItem(el *Element) bool {
	return IsTag(el, "list-item")
}

// HasDynamicKey reports whether el carries `key={expr}`.
func HasDynamicKey(el *Element) bool {
	for _, a := range el.Attrs {
		if a.IsSpread() || a.Namespace != "" || a.Name != "key" || !a.Container {
			continue
		}
		if _, empty := a.Value.(*EEmpty); !empty {
			return true
		}
	}
	return false
}

// HasSpread reports whether el has any spread attribute.
func HasSpread(el *Element) bool {
	for _, a := range el.Attrs {
		if a.IsSpread() {
			return true
		}
	}
	return false
}

// IsEmptyContainer reports whether c is `{}` or a comment-only container.
func IsEmptyContainer(c Child) bool {
	ec, ok := c.(*ExprContainer)
	if !ok {
		return false
	}
	_, empty := ec.Expr.(*EEmpty)
	return empty
}

// IsChildrenFullDynamic reports whether no child of el can serve as a static
// anchor: el has children and, comments aside, each is whitespace-only text,
// a component, or a non-empty expression container.
func IsChildrenFullDynamic(el *Element) bool {
	if len(el.Children) == 0 {
		return false
	}
	for _, c := range el.Children {
		if IsEmptyContainer(c) {
			continue
		}
		switch c := c.(type) {
		case *Text:
			if TextValue(c) != "" {
				return false
			}
		case *Element:
			if !IsCustom(c) {
				return false
			}
		case *ExprContainer:
		default:
			return false
		}
	}
	return true
}

// TextValue returns the normalized value of a JSX text node.
func TextValue(t *Text) string {
	return NormalizeText(html.UnescapeString(t.Raw))
}

// NormalizeText applies JSX whitespace rules: tabs become spaces, every line
// but the first loses leading spaces, every line but the last loses trailing
// spaces, and the non-empty lines that remain are joined by single spaces.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	lines := splitLines(s)

	var b strings.Builder
	for i, line := range lines {
		if line == "" {
			continue
		}
		if i != 0 {
			line = strings.TrimLeft(line, " ")
		}
		if i != len(lines)-1 {
			line = strings.TrimRight(line, " ")
		}
		if line == "" {
			continue
		}
		if i != 0 && b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(line)
	}
	return b.String()
}

// splitLines splits on \n and \r\n. A trailing line break does not produce
// an empty final line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// NormalizeAttrString collapses line breaks and tabs in a quoted attribute
// value, together with any spaces that follow them, into a single space.
func NormalizeAttrString(s string) string {
	if !strings.ContainsAny(s, "\n\r\t") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n', '\r', '\t':
			b.WriteByte(' ')
			for i+1 < len(s) && s[i+1] == ' ' {
				i++
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// ChildrenToExpr collapses children into one expression: text is
// normalized and dropped when empty, empty containers and spread children
// are dropped, a single survivor is returned as is and anything else becomes
// an array literal.
func ChildrenToExpr(children []Child) E {
	var items []E
	for _, c := range children {
		switch c := c.(type) {
		case *Text:
			if v := TextValue(c); v != "" {
				items = append(items, Str(v))
			}
		case *ExprContainer:
			if _, empty := c.Expr.(*EEmpty); !empty {
				items = append(items, c.Expr)
			}
		case *Element:
			items = append(items, &EJSXElement{Element: c})
		case *Fragment:
			items = append(items, &EJSXFragment{Fragment: c})
		}
	}
	if len(items) == 1 {
		return items[0]
	}
	return &EArray{Items: items}
}

// AttrValue returns the expression an attribute contributes to a props
// object: true for a bare attribute and null for an empty container.
func AttrValue(a *Attr) E {
	switch v := a.Value.(type) {
	case nil:
		return &EBoolean{Value: true}
	case *EEmpty:
		return &ENull{}
	default:
		return v
	}
}

// PropsObject builds the props object for el's attributes in source order,
// keeping spreads in place.
func PropsObject(el *Element) *EObject {
	obj := &EObject{}
	for _, a := range el.Attrs {
		if a.IsSpread() {
			obj.Props = append(obj.Props, Property{Kind: PropSpread, Value: a.Spread})
			continue
		}
		name := a.FullName()
		obj.Props = append(obj.Props, Property{
			Kind:   PropKeyValue,
			Key:    name,
			KeyRaw: quoteKey(name),
			Value:  AttrValue(a),
		})
	}
	return obj
}

func quoteKey(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// IsLiteral reports whether e is a compile-time constant: a literal, a
// template without substitutions, or an array or non-computed object
// literal built only from constants.
func IsLiteral(e E) bool {
	switch e := e.(type) {
	case *EString, *ENumber, *EBoolean, *ENull, *ETemplate:
		return true
	case *EArray:
		for _, item := range e.Items {
			if !IsLiteral(item) {
				return false
			}
		}
		return true
	case *EObject:
		for _, p := range e.Props {
			if p.Kind != PropKeyValue || !IsLiteral(p.Value) {
				return false
			}
		}
		return true
	}
	return false
}

// CloneElement copies the element structure of el: elements, fragments,
// attribute and child slices. Expressions are shared.
func CloneElement(el *Element) *Element {
	out := *el
	out.Attrs = make([]*Attr, len(el.Attrs))
	for i, a := range el.Attrs {
		ac := *a
		out.Attrs[i] = &ac
	}
	out.Children = cloneChildren(el.Children)
	return &out
}

func cloneChildren(cs []Child) []Child {
	if cs == nil {
		return nil
	}
	out := make([]Child, len(cs))
	for i, c := range cs {
		switch c := c.(type) {
		case *Element:
			out[i] = CloneElement(c)
		case *Fragment:
			out[i] = &Fragment{Children: cloneChildren(c.Children), Pos: c.Pos}
		default:
			out[i] = c
		}
	}
	return out
}
