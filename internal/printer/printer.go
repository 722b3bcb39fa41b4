// Package printer renders a jsx.Module back to JavaScript source.
//
// Opaque source kept by the parser prints verbatim. Synthesized code is
// printed one statement per line with four-space indentation inside
// function bodies.
package printer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/roach88/snapc/internal/jsx"
)

const indentUnit = "    "

// Print renders mod. Each top-level item is followed by a newline.
func Print(mod *jsx.Module) string {
	p := &printer{}
	for _, s := range mod.Items {
		p.stmt(s)
		p.buf.WriteByte('\n')
	}
	return p.buf.String()
}

// Expr renders a single expression at indentation level zero.
func Expr(e jsx.E) string {
	p := &printer{}
	p.expr(e)
	return p.buf.String()
}

type printer struct {
	buf    bytes.Buffer
	indent int
}

func (p *printer) print(s string) {
	p.buf.WriteString(s)
}

func (p *printer) newline() {
	p.buf.WriteByte('\n')
	p.buf.WriteString(strings.Repeat(indentUnit, p.indent))
}

func (p *printer) stmt(s jsx.S) {
	switch s := s.(type) {
	case *jsx.SConst:
		p.print("const " + s.Name + " = ")
		p.expr(s.Value)
		p.print(";")
	case *jsx.SLet:
		p.print("let " + s.Name)
		if s.Value != nil {
			p.print(" = ")
			p.expr(s.Value)
		}
		p.print(";")
	case *jsx.SExpr:
		p.expr(s.Value)
		p.print(";")
	case *jsx.SReturn:
		p.print("return")
		if s.Value != nil {
			p.print(" ")
			p.expr(s.Value)
		}
		p.print(";")
	case *jsx.SIf:
		p.print("if (")
		p.expr(s.Test)
		p.print(") ")
		p.block(s.Body)
	case *jsx.SImportStar:
		p.print("import * as " + s.Name + " from " + Quote(s.Path) + ";")
	case *jsx.SRaw:
		p.rawParts(s.Parts)
	default:
		panic(fmt.Sprintf("printer: unexpected statement %T", s))
	}
}

func (p *printer) block(body []jsx.S) {
	p.print("{")
	p.indent++
	for _, s := range body {
		p.newline()
		p.stmt(s)
	}
	p.indent--
	p.newline()
	p.print("}")
}

func (p *printer) rawParts(parts []jsx.RawPart) {
	for _, part := range parts {
		switch {
		case part.JSX == nil:
			p.print(part.Text)
		case part.Snapshot:
			p.print("__SNAPSHOT__(")
			p.expr(part.JSX)
			p.print(")")
		default:
			p.expr(part.JSX)
		}
	}
}

func (p *printer) expr(e jsx.E) {
	switch e := e.(type) {
	case *jsx.EString:
		if e.Raw != "" {
			p.print(e.Raw)
		} else {
			p.print(Quote(e.Value))
		}
	case *jsx.ENumber:
		p.print(e.Raw)
	case *jsx.EBoolean:
		if e.Value {
			p.print("true")
		} else {
			p.print("false")
		}
	case *jsx.ENull:
		p.print("null")
	case *jsx.EIdent:
		p.print(e.Name)
	case *jsx.ETemplate:
		if e.Raw != "" {
			p.print(e.Raw)
		} else {
			p.print("`" + templateEscaper.Replace(e.Value) + "`")
		}
	case *jsx.EArray:
		p.array(e)
	case *jsx.EObject:
		p.object(e)
	case *jsx.EJSXElement:
		p.element(e.Element)
	case *jsx.EJSXFragment:
		p.fragment(e.Fragment)
	case *jsx.EEmpty:
		p.print(e.Raw)
	case *jsx.ERaw:
		p.rawParts(e.Parts)
	case *jsx.ECall:
		if e.Pure {
			p.print("/*#__PURE__*/ ")
		}
		p.operand(e.Target)
		p.print("(")
		for i, a := range e.Args {
			if i > 0 {
				p.print(", ")
			}
			p.expr(a)
		}
		p.print(")")
	case *jsx.EDot:
		p.operand(e.Target)
		p.print("." + e.Name)
	case *jsx.EIndex:
		p.operand(e.Target)
		p.print("[")
		p.expr(e.Index)
		p.print("]")
	case *jsx.EFunction:
		p.print("function(" + strings.Join(e.Params, ", ") + ") ")
		p.block(e.Body)
	case *jsx.EArrow:
		p.print("(" + strings.Join(e.Params, ", ") + ") => ")
		if _, ok := e.Body.(*jsx.EObject); ok {
			p.print("(")
			p.expr(e.Body)
			p.print(")")
		} else {
			p.expr(e.Body)
		}
	case *jsx.EBinary:
		p.operand(e.Left)
		p.print(" " + e.Op + " ")
		p.operand(e.Right)
	default:
		panic(fmt.Sprintf("printer: unexpected expression %T", e))
	}
}

// operand prints e where it binds tighter than a binary operator, adding
// parentheses around anything that might not.
func (p *printer) operand(e jsx.E) {
	switch e.(type) {
	case *jsx.ERaw, *jsx.EBinary, *jsx.EArrow, *jsx.EFunction, *jsx.EObject:
		p.print("(")
		p.expr(e)
		p.print(")")
	default:
		p.expr(e)
	}
}

// array prints one item per line when an item is a function.
func (p *printer) array(a *jsx.EArray) {
	multiline := false
	for _, item := range a.Items {
		switch item.(type) {
		case *jsx.EFunction, *jsx.EArrow:
			multiline = true
		}
	}
	if !multiline {
		p.print("[")
		for i, item := range a.Items {
			if i > 0 {
				p.print(", ")
			}
			p.expr(item)
		}
		p.print("]")
		return
	}

	p.print("[")
	p.indent++
	for i, item := range a.Items {
		p.newline()
		p.expr(item)
		if i < len(a.Items)-1 {
			p.print(",")
		}
	}
	p.indent--
	p.newline()
	p.print("]")
}

func (p *printer) object(o *jsx.EObject) {
	if len(o.Props) == 0 {
		p.print("{}")
		return
	}
	p.print("{ ")
	for i, prop := range o.Props {
		if i > 0 {
			p.print(", ")
		}
		switch prop.Kind {
		case jsx.PropKeyValue:
			p.print(propertyKey(prop))
			p.print(": ")
			p.expr(prop.Value)
		case jsx.PropShorthand:
			p.expr(prop.Value)
		case jsx.PropSpread:
			p.print("...")
			p.expr(prop.Value)
		case jsx.PropComputed:
			p.print("[")
			p.expr(prop.KeyExpr)
			p.print("]: ")
			p.expr(prop.Value)
		case jsx.PropOther:
			p.print(prop.Raw)
		}
	}
	p.print(" }")
}

func propertyKey(prop jsx.Property) string {
	switch {
	case prop.KeyRaw != "":
		return prop.KeyRaw
	case isIdentifier(prop.Key):
		return prop.Key
	}
	return Quote(prop.Key)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

var templateEscaper = strings.NewReplacer("\\", "\\\\", "`", "\\`", "${", "\\${")

// Quote renders s as a double-quoted JavaScript string literal. Control
// characters are escaped so the literal stays on one line.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
