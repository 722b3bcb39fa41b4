package compiler

import (
	"strconv"

	"github.com/roach88/snapc/internal/attr"
	"github.com/roach88/snapc/internal/css"
	"github.com/roach88/snapc/internal/diag"
	"github.com/roach88/snapc/internal/jsx"
)

// Attributes that force flatten={false} unless the element sets flatten
// itself.
var noFlattenAttrs = map[string]bool{
	"name":           true,
	"clip-radius":    true,
	"overlap":        true,
	"exposure-scene": true,
	"exposure-id":    true,
}

// list-item attributes consumed by the list machinery rather than set on the
// element.
var listItemPlatformAttrs = map[string]bool{
	"reuse-identifier":            true,
	"full-span":                   true,
	"item-key":                    true,
	"sticky-top":                  true,
	"sticky-bottom":               true,
	"estimated-height":            true,
	"estimated-height-px":         true,
	"estimated-main-axis-size-px": true,
}

// extractor walks one marked snapshot root, collecting the creator body and
// the dynamic parts in document order.
type extractor struct {
	t     *transformer
	marks *marker

	pageID   *memo[string]
	instance *memo[string]

	index  int
	parent string // "" at the root
	names  []string
	stmts  []jsx.S
	parts  []DynamicPart
	key    *jsx.Attr
}

func newExtractor(t *transformer, marks *marker) *extractor {
	x := &extractor{t: t, marks: marks}
	x.pageID = newMemo(func() string {
		x.stmts = append(x.stmts, &jsx.SConst{
			Name:  "pageId",
			Value: jsx.Dot(t.runtime(), "__pageId"),
		})
		return "pageId"
	})
	x.instance = newMemo(func() string { return "snapshotInstance" })
	return x
}

// run extracts root and returns the creator function.
func (x *extractor) run(root *jsx.Element) *jsx.EFunction {
	x.element(root)

	handles := make([]jsx.E, len(x.names))
	for i, name := range x.names {
		handles[i] = jsx.Id(name)
	}
	x.stmts = append(x.stmts, &jsx.SReturn{Value: &jsx.EArray{Items: handles}})

	fn := &jsx.EFunction{Body: x.stmts}
	if x.instance.used() {
		fn.Params = []string{x.instance.get()}
	}
	return fn
}

func (x *extractor) element(el *jsx.Element) {
	if x.marks.isSlot(el) && x.marks.count > 1 {
		x.parts = append(x.parts, &SlotPart{Payload: x.t.element(el), Element: x.index})
		el = &jsx.Element{Name: jsx.Ident("wrapper"), Pos: el.Pos}
	}

	if jsx.IsCustom(el) {
		if x.parent == "" {
			diag.Internalf(el.Pos, "component %s cannot be a snapshot root", el.Name)
		}
		x.parts = append(x.parts, &ChildrenPart{
			Expr:    &jsx.EJSXElement{Element: x.t.element(el)},
			Element: x.index,
		})
		x.element(&jsx.Element{Name: jsx.Ident("wrapper"), SelfClosing: true, Pos: el.Pos})
		return
	}

	x.pageID.get()
	idx := x.index
	name := elementName(idx)
	x.names = append(x.names, name)
	x.emit(&jsx.SConst{Name: name, Value: x.createCall(el, idx)})

	x.implicitFlatten(el)
	spread := jsx.HasSpread(el)
	if jsx.IsListItem(el) && !spread {
		x.listItemPlatformInfo(el)
	}
	x.liftKey(el)

	if spread {
		obj := jsx.PropsObject(el)
		obj.Props = append(obj.Props, jsx.Property{
			Kind:  jsx.PropKeyValue,
			Key:   "__spread",
			Value: &jsx.EBoolean{Value: true},
		})
		x.parts = append(x.parts, &SpreadPart{Value: x.t.rewriteExpr(obj), Element: idx})
	} else {
		for _, a := range el.Attrs {
			x.attribute(name, a)
		}
	}

	if x.parent != "" {
		x.emit(&jsx.SExpr{Value: jsx.Call(jsx.Id("__AppendElement"), jsx.Id(x.parent), jsx.Id(name))})
	}

	list := jsx.IsList(el)
	if !list && !jsx.IsChildrenFullDynamic(el) {
		x.index++
		prev := x.parent
		x.parent = name
		x.children(el.Children)
		x.parent = prev
		return
	}

	if x.marks.count > 1 {
		diag.Internalf(el.Pos, "dynamic children of <%s> were not assigned a slot", el.Name)
	}
	expr := jsx.ChildrenToExpr(x.t.rewriteChildren(el.Children))
	el.Children = nil
	if list {
		x.parts = append(x.parts, &ListChildrenPart{Expr: expr, Element: idx})
	} else {
		x.parts = append(x.parts, &ChildrenPart{Expr: expr, Element: idx})
	}
	x.index++
}

func (x *extractor) children(children []jsx.Child) {
	for _, c := range children {
		switch c := c.(type) {
		case *jsx.Element:
			x.element(c)
		case *jsx.Fragment:
			x.children(c.Children)
		case *jsx.Text:
			x.text(c)
		case *jsx.ExprContainer:
			if _, empty := c.Expr.(*jsx.EEmpty); empty {
				continue
			}
			x.parts = append(x.parts, &ChildrenPart{Expr: x.t.rewriteExpr(c.Expr), Element: x.index})
			x.element(&jsx.Element{Name: jsx.Ident("wrapper"), SelfClosing: true, Pos: c.Pos})
		case *jsx.SpreadChild:
			diag.Internalf(c.Pos, "spread children are not supported")
		}
	}
}

func (x *extractor) text(t *jsx.Text) {
	v := jsx.TextValue(t)
	if v == "" {
		return
	}
	name := elementName(x.index)
	x.names = append(x.names, name)
	x.emit(&jsx.SConst{Name: name, Value: jsx.Call(jsx.Id("__CreateRawText"), jsx.Str(v))})
	if x.parent != "" {
		x.emit(&jsx.SExpr{Value: jsx.Call(jsx.Id("__AppendElement"), jsx.Id(x.parent), jsx.Id(name))})
	}
	x.index++
}

func (x *extractor) emit(s jsx.S) {
	x.stmts = append(x.stmts, s)
}

func elementName(idx int) string {
	if idx == 0 {
		return "el"
	}
	return "el" + strconv.Itoa(idx)
}

func (x *extractor) createCall(el *jsx.Element, idx int) jsx.E {
	tag, _ := jsx.TagName(el)
	page := jsx.Id(x.pageID.get())
	switch tag {
	case "view":
		return jsx.Call(jsx.Id("__CreateView"), page)
	case "scroll-view":
		return jsx.Call(jsx.Id("__CreateScrollView"), page)
	case "x-scroll-view":
		return jsx.Call(jsx.Id("__CreateScrollView"), page, &jsx.EObject{Props: []jsx.Property{
			{Kind: jsx.PropKeyValue, Key: "tag", Value: jsx.Str("x-scroll-view")},
		}})
	case "image":
		return jsx.Call(jsx.Id("__CreateImage"), page)
	case "text":
		return jsx.Call(jsx.Id("__CreateText"), page)
	case "wrapper":
		return jsx.Call(jsx.Id("__CreateWrapperElement"), page)
	case "list":
		return jsx.Call(jsx.Dot(x.t.runtime(), "snapshotCreateList"), page, jsx.Id(x.instance.get()), jsx.Num(idx))
	}
	if el.Name.Kind == jsx.NameNamespaced {
		diag.Warn(x.t.sink, diag.WarnNamespaceElement, el.Pos, "JSX Namespace is disabled")
	}
	return jsx.Call(jsx.Id("__CreateElement"), jsx.Str(tag), page)
}

func (x *extractor) implicitFlatten(el *jsx.Element) {
	need := false
	for _, a := range el.Attrs {
		if a.IsSpread() {
			continue
		}
		if a.FullName() == "flatten" {
			return
		}
		if noFlattenAttrs[a.FullName()] {
			need = true
		}
	}
	if need {
		el.Attrs = append(el.Attrs, &jsx.Attr{
			Name:      "flatten",
			Value:     &jsx.EBoolean{Value: false},
			Container: true,
		})
	}
}

// listItemPlatformInfo moves the platform attributes of a list-item into one
// aggregated part, emitted ahead of the element's other parts.
func (x *extractor) listItemPlatformInfo(el *jsx.Element) {
	info := &jsx.EObject{}
	kept := el.Attrs[:0]
	for _, a := range el.Attrs {
		if a.Namespace == "" && listItemPlatformAttrs[a.Name] {
			info.Props = append(info.Props, jsx.Property{
				Kind:   jsx.PropKeyValue,
				Key:    a.Name,
				KeyRaw: strconv.Quote(a.Name),
				Value:  jsx.AttrValue(a),
			})
			continue
		}
		kept = append(kept, a)
	}
	el.Attrs = kept
	if len(info.Props) > 0 {
		x.parts = append(x.parts, &AttrPart{
			Value:   x.t.rewriteExpr(info),
			Element: x.index,
			Name:    attr.ListItemPlatformInfo{},
		})
	}
}

// liftKey strips key from el. On the root it moves onto the snapshot
// reference; anywhere else it has no effect and is reported.
func (x *extractor) liftKey(el *jsx.Element) {
	kept := el.Attrs[:0]
	for _, a := range el.Attrs {
		if a.IsSpread() || a.Namespace != "" || a.Name != "key" {
			kept = append(kept, a)
			continue
		}
		if x.parent == "" {
			x.key = a
		} else {
			diag.Warn(x.t.sink, diag.WarnKeyNotOnRoot, a.Pos, "key is not on root element of snapshot")
		}
	}
	el.Attrs = kept
}

func (x *extractor) attribute(el string, a *jsx.Attr) {
	value := a.Value
	if s, ok := value.(*jsx.EString); ok && !a.Container {
		value = jsx.Str(jsx.NormalizeAttrString(s.Value))
	}

	if a.Namespace != "" {
		name, err := attr.ClassifyNS(a.Namespace, a.Name)
		if err != nil {
			diag.Internalf(a.Pos, "%s passed the root check: %v", a.FullName(), err)
		}
		x.push(name, jsx.AttrValue(a))
		return
	}

	switch name := attr.Classify(a.Name).(type) {
	case attr.Attr:
		x.setter(a, value, name, true, "__SetAttribute", jsx.Id(el), jsx.Str(name.Name))
	case attr.Dataset:
		x.setter(a, value, name, true, "__AddDataset", jsx.Id(el), jsx.Str(name.Name))
	case attr.Class:
		x.setter(a, value, name, false, "__SetClasses", jsx.Id(el))
	case attr.ID:
		x.setter(a, value, name, false, "__SetID", jsx.Id(el))
	case attr.Event, attr.Ref:
		x.push(name, jsx.AttrValue(a))
	case attr.TimingFlag:
		x.push(name, &jsx.EObject{Props: []jsx.Property{
			{Kind: jsx.PropKeyValue, Key: "__ltf", Value: jsx.AttrValue(a)},
		}})
	case attr.Style:
		x.style(el, a, value)
	default:
		diag.Internalf(a.Pos, "attribute %s classified as %s", a.FullName(), name.Kind())
	}
}

// setter emits fn(args..., value) as a creation statement when value is
// known at compile time and records a dynamic part otherwise. A bare
// attribute sets true when bare is allowed and is ignored otherwise.
func (x *extractor) setter(a *jsx.Attr, value jsx.E, name attr.Name, bare bool, fn string, args ...jsx.E) {
	static := func(v jsx.E) {
		x.emit(&jsx.SExpr{Value: jsx.Call(jsx.Id(fn), append(args, v)...)})
	}
	switch {
	case value == nil:
		if bare {
			static(&jsx.EBoolean{Value: true})
		}
	case !a.Container:
		if _, ok := value.(*jsx.EString); ok {
			static(value)
			return
		}
		x.push(name, value)
	default:
		if _, empty := value.(*jsx.EEmpty); empty {
			return
		}
		if isScalarLiteral(value) {
			static(value)
			return
		}
		x.push(name, value)
	}
}

func (x *extractor) style(el string, a *jsx.Attr, value jsx.E) {
	setInline := func(v jsx.E) {
		x.emit(&jsx.SExpr{Value: jsx.Call(jsx.Id("__SetInlineStyles"), jsx.Id(el), v)})
	}
	switch {
	case value == nil:
		return
	case !a.Container:
		if _, ok := value.(*jsx.EString); ok {
			setInline(value)
			return
		}
		x.push(attr.Style{}, value)
		return
	}
	if _, empty := value.(*jsx.EEmpty); empty {
		return
	}

	if jsx.IsLiteral(value) {
		if s, ok := css.InlineString(value, a.Pos, x.t.sink); ok {
			setInline(jsx.Str(s))
		}
		return
	}

	if obj, ok := value.(*jsx.EObject); ok {
		if decls, ok := css.Decompose(obj, a.Pos, x.t.sink); ok {
			static, dynamic := css.Split(decls)
			for _, d := range static {
				x.emit(&jsx.SExpr{Value: jsx.Call(jsx.Id("__AddInlineStyle"), jsx.Id(el), jsx.Num(d.ID), d.Value)})
			}
			if len(dynamic) > 0 {
				ids := make([]int, len(dynamic))
				values := make([]jsx.E, len(dynamic))
				for i, d := range dynamic {
					ids[i] = d.ID
					values[i] = d.Value
				}
				x.push(attr.ParsedStyle{PropIDs: ids}, &jsx.EArray{Items: values})
			}
			return
		}
	}
	x.push(attr.Style{}, value)
}

func (x *extractor) push(name attr.Name, value jsx.E) {
	x.parts = append(x.parts, &AttrPart{
		Value:   x.t.rewriteExpr(value),
		Element: x.index,
		Name:    name,
	})
}

// isScalarLiteral reports whether e is a string, number, boolean or null
// literal.
func isScalarLiteral(e jsx.E) bool {
	switch e.(type) {
	case *jsx.EString, *jsx.ENumber, *jsx.EBoolean, *jsx.ENull:
		return true
	}
	return false
}
