package printer

import (
	"github.com/roach88/snapc/internal/jsx"
)

func (p *printer) element(el *jsx.Element) {
	name := el.Name.String()
	p.print("<" + name)
	for _, a := range el.Attrs {
		p.print(" ")
		p.attr(a)
	}
	if el.SelfClosing && len(el.Children) == 0 {
		p.print(" />")
		return
	}
	p.print(">")
	p.children(el.Children)
	p.print("</" + name + ">")
}

func (p *printer) fragment(f *jsx.Fragment) {
	p.print("<>")
	p.children(f.Children)
	p.print("</>")
}

func (p *printer) attr(a *jsx.Attr) {
	if a.IsSpread() {
		p.print("{...")
		p.expr(a.Spread)
		p.print("}")
		return
	}
	p.print(a.FullName())
	switch v := a.Value.(type) {
	case nil:
		return
	case *jsx.EJSXElement, *jsx.EJSXFragment:
		if !a.Container {
			p.print("=")
			p.expr(v)
			return
		}
	case *jsx.EString:
		if !a.Container {
			p.print("=")
			if v.Raw != "" {
				p.print(v.Raw)
			} else {
				p.print(Quote(v.Value))
			}
			return
		}
	}
	p.print("={")
	p.expr(a.Value)
	p.print("}")
}

func (p *printer) children(children []jsx.Child) {
	for _, c := range children {
		switch c := c.(type) {
		case *jsx.Element:
			p.element(c)
		case *jsx.Fragment:
			p.fragment(c)
		case *jsx.Text:
			p.print(c.Raw)
		case *jsx.ExprContainer:
			p.print("{")
			p.expr(c.Expr)
			p.print("}")
		case *jsx.SpreadChild:
			p.print("{...")
			p.expr(c.Expr)
			p.print("}")
		}
	}
}
