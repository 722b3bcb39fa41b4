package compiler

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/roach88/snapc/internal/attr"
	"github.com/roach88/snapc/internal/diag"
	"github.com/roach88/snapc/internal/jsx"
)

// Result is the outcome of compiling one module.
type Result struct {
	// Module is the rewritten module. Transform rewrites its input in place
	// and returns it here.
	Module *jsx.Module
	// Snapshots lists every compiled snapshot in definition order.
	Snapshots []*Snapshot
	// CSSID is the CSS scope id passed to createSnapshot, if any.
	CSSID *int
}

// Transform compiles every intrinsic JSX root in mod into a snapshot
// definition and replaces the root with a reference to it.
//
// User errors are reported to sink and abandon only the snapshot they occur
// in. The returned error is non-nil only for internal invariant violations.
func Transform(mod *jsx.Module, opts Options, sink diag.Sink) (res *Result, err error) {
	defer diag.Recover(&err)

	opts = opts.withDefaults()
	t := newTransformer(opts, sink)
	t.cssID = opts.CSSID
	if id, ok := parseCSSIDPragma(mod.Comments, opts.Logger); ok {
		t.cssID = &id
	}
	if t.cssID == nil && opts.IsDynamicComponent {
		zero := 0
		t.cssID = &zero
	}

	items := make([]jsx.S, 0, len(mod.Items))
	for _, item := range mod.Items {
		item = t.stmt(item)
		items = append(items, t.defs...)
		t.defs = nil
		items = append(items, item)
	}

	var head []jsx.S
	if t.runtimeExpr.used() && opts.Mode != ModeDevelopment {
		head = append(head, &jsx.SImportStar{Name: runtimeIdent, Path: opts.RuntimePkg})
	}
	if t.componentsUsed {
		head = append(head, &jsx.SImportStar{Name: componentsIdent, Path: runtimeComponentsPkg})
	}
	mod.Items = append(head, items...)

	opts.Logger.Debug("transformed module",
		slog.String("filename", opts.Filename),
		slog.String("target", opts.Target.String()),
		slog.Int("snapshots", len(t.snapshots)))

	return &Result{Module: mod, Snapshots: t.snapshots, CSSID: t.cssID}, nil
}

type transformer struct {
	opts Options
	sink diag.Sink
	log  *slog.Logger

	filenameHash   string
	runtimeExpr    *memo[jsx.E]
	componentsUsed bool
	cssID          *int

	counter   int
	defs      []jsx.S
	snapshots []*Snapshot
}

func newTransformer(opts Options, sink diag.Sink) *transformer {
	t := &transformer{
		opts:         opts,
		sink:         sink,
		log:          opts.Logger,
		filenameHash: FilenameHash(opts.Filename),
	}
	t.runtimeExpr = newMemo(func() jsx.E {
		if opts.Mode == ModeDevelopment {
			return jsx.Call(jsx.Id("require"), jsx.Str(devRuntimePkg))
		}
		return jsx.Id(runtimeIdent)
	})
	return t
}

// FilenameHash is the filename component of snapshot uids: the first five
// hex digits of the SHA-1 of the name.
func FilenameHash(filename string) string {
	sum := sha1.Sum([]byte(filename))
	return hex.EncodeToString(sum[:])[:5]
}

// UID formats a snapshot uid.
func UID(filenameHash, contentHash string, n int) string {
	return fmt.Sprintf("__snapshot_%s_%s_%d", filenameHash, contentHash, n)
}

func (t *transformer) runtime() jsx.E {
	return t.runtimeExpr.get()
}

// parseCSSIDPragma finds `@jsxCSSId <n>` in a block comment. Each comment
// line is trimmed and may start with a `*` continuation marker.
func parseCSSIDPragma(comments []jsx.Comment, log *slog.Logger) (int, bool) {
	id, found := 0, false
	for _, c := range comments {
		if !c.Block {
			continue
		}
		for _, line := range strings.Split(c.Text, "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "*") {
				line = strings.TrimSpace(line[1:])
			}
			if !strings.HasPrefix(line, "@jsx") {
				continue
			}
			words := strings.Fields(line)
			for i := 0; i+1 < len(words); i += 2 {
				if words[i] != "@jsxCSSId" {
					continue
				}
				n, err := strconv.Atoi(words[i+1])
				if err != nil {
					log.Warn("ignoring non-numeric @jsxCSSId", slog.String("value", words[i+1]))
					continue
				}
				id, found = n, true
			}
		}
	}
	return id, found
}

func (t *transformer) stmt(s jsx.S) jsx.S {
	switch s := s.(type) {
	case *jsx.SConst:
		s.Value = t.rewriteExpr(s.Value)
	case *jsx.SLet:
		s.Value = t.rewriteExpr(s.Value)
	case *jsx.SExpr:
		s.Value = t.rewriteExpr(s.Value)
	case *jsx.SReturn:
		s.Value = t.rewriteExpr(s.Value)
	case *jsx.SIf:
		s.Test = t.rewriteExpr(s.Test)
		for i, b := range s.Body {
			s.Body[i] = t.stmt(b)
		}
	case *jsx.SRaw:
		t.rawParts(s.Parts)
	}
	return s
}

// rewriteExpr compiles every JSX root reachable from e.
func (t *transformer) rewriteExpr(e jsx.E) jsx.E {
	switch e := e.(type) {
	case nil:
		return nil
	case *jsx.EJSXElement:
		e.Element = t.element(e.Element)
	case *jsx.EJSXFragment:
		e.Fragment.Children = t.rewriteChildren(e.Fragment.Children)
	case *jsx.ERaw:
		t.rawParts(e.Parts)
	case *jsx.EArray:
		for i, item := range e.Items {
			e.Items[i] = t.rewriteExpr(item)
		}
	case *jsx.EObject:
		for i := range e.Props {
			e.Props[i].KeyExpr = t.rewriteExpr(e.Props[i].KeyExpr)
			e.Props[i].Value = t.rewriteExpr(e.Props[i].Value)
		}
	case *jsx.ECall:
		e.Target = t.rewriteExpr(e.Target)
		for i, a := range e.Args {
			e.Args[i] = t.rewriteExpr(a)
		}
	case *jsx.EDot:
		e.Target = t.rewriteExpr(e.Target)
	case *jsx.EIndex:
		e.Target = t.rewriteExpr(e.Target)
		e.Index = t.rewriteExpr(e.Index)
	case *jsx.EBinary:
		e.Left = t.rewriteExpr(e.Left)
		e.Right = t.rewriteExpr(e.Right)
	case *jsx.EArrow:
		e.Body = t.rewriteExpr(e.Body)
	case *jsx.EFunction:
		for i, s := range e.Body {
			e.Body[i] = t.stmt(s)
		}
	}
	return e
}

// rawParts compiles the JSX embedded in opaque source. The argument of an
// explicit __SNAPSHOT__(...) call is replaced, call included, by the uid of
// the snapshot it compiles to.
func (t *transformer) rawParts(parts []jsx.RawPart) {
	for i := range parts {
		p := &parts[i]
		if p.JSX == nil {
			continue
		}
		if p.Snapshot {
			if el, ok := p.JSX.(*jsx.EJSXElement); ok {
				before := len(t.snapshots)
				el.Element = t.element(el.Element)
				if len(t.snapshots) > before {
					*p = jsx.RawPart{Text: t.snapshots[len(t.snapshots)-1].UID}
					continue
				}
			}
		}
		p.JSX = t.rewriteExpr(p.JSX)
	}
}

func (t *transformer) rewriteChildren(children []jsx.Child) []jsx.Child {
	for i, c := range children {
		switch c := c.(type) {
		case *jsx.Element:
			children[i] = t.element(c)
		case *jsx.Fragment:
			c.Children = t.rewriteChildren(c.Children)
		case *jsx.ExprContainer:
			c.Expr = t.rewriteExpr(c.Expr)
		case *jsx.SpreadChild:
			c.Expr = t.rewriteExpr(c.Expr)
		}
	}
	return children
}

func (t *transformer) rewriteAttrs(el *jsx.Element) {
	for _, a := range el.Attrs {
		if a.IsSpread() {
			a.Spread = t.rewriteExpr(a.Spread)
			continue
		}
		a.Value = t.rewriteExpr(a.Value)
	}
}

// element returns the replacement for el: a snapshot reference for an
// intrinsic root, or el itself with its attributes and children rewritten.
func (t *transformer) element(el *jsx.Element) *jsx.Element {
	tag, intrinsic := jsx.TagName(el)
	switch {
	case !intrinsic:
		t.rewriteAttrs(el)
		el.Children = t.rewriteChildren(el.Children)
		return el
	case tag == "wrapper":
		el.Children = t.rewriteChildren(el.Children)
		return el
	case tag == "page":
		t.componentsUsed = true
		el.Name = jsx.ElementName{Kind: jsx.NameMember, Name: componentsIdent + ".Page"}
		t.rewriteAttrs(el)
		el.Children = t.rewriteChildren(el.Children)
		return el
	case tag == "component":
		diag.Errorf(t.sink, diag.ErrComponentTag, el.Pos, "<component /> is not supported")
		t.rewriteAttrs(el)
		el.Children = t.rewriteChildren(el.Children)
		return el
	}
	return t.compileRoot(el)
}

// compileRoot compiles el into a snapshot. A root that fails checkRoot
// still consumes its counter value but is returned as it was written, with
// nothing nested compiled.
func (t *transformer) compileRoot(el *jsx.Element) *jsx.Element {
	t.counter++
	uid := UID(t.filenameHash, t.opts.ContentHash, t.counter)

	original := jsx.CloneElement(el)
	marks := newMarker()
	marks.markElement(el)

	if a, err := checkRoot(el, marks); err != nil {
		diag.Errorf(t.sink, diag.ErrNamespaceAttr, a.Pos, "%v", err)
		t.log.Debug("snapshot rejected",
			slog.String("uid", uid),
			slog.String("tag", original.Name.String()),
			slog.Int("line", original.Pos.Line))
		return original
	}

	x := newExtractor(t, marks)
	creator := x.run(el)

	snap, ref := t.emit(uid, x, creator, marks.count, el.Pos)
	t.snapshots = append(t.snapshots, snap)
	t.log.Debug("compiled snapshot",
		slog.String("uid", uid),
		slog.Int("elements", snap.ElementCount),
		slog.Int("parts", len(snap.Parts)))
	return ref
}

// checkRoot finds the first namespaced attribute the extractor would reject
// in the marked tree of root. It visits exactly the elements the extractor
// creates itself; slots and components compiled as their own roots are
// checked when they are compiled.
func checkRoot(root *jsx.Element, marks *marker) (*jsx.Attr, error) {
	var visit func(el *jsx.Element) (*jsx.Attr, error)
	var children func(cs []jsx.Child) (*jsx.Attr, error)

	visit = func(el *jsx.Element) (*jsx.Attr, error) {
		if marks.isSlot(el) && marks.count > 1 || jsx.IsCustom(el) {
			return nil, nil
		}
		if !jsx.HasSpread(el) {
			for _, a := range el.Attrs {
				if a.Namespace == "" {
					continue
				}
				if _, err := attr.ClassifyNS(a.Namespace, a.Name); err != nil {
					return a, err
				}
			}
		}
		if jsx.IsList(el) || jsx.IsChildrenFullDynamic(el) {
			return nil, nil
		}
		return children(el.Children)
	}
	children = func(cs []jsx.Child) (*jsx.Attr, error) {
		for _, c := range cs {
			var a *jsx.Attr
			var err error
			switch c := c.(type) {
			case *jsx.Element:
				a, err = visit(c)
			case *jsx.Fragment:
				a, err = children(c.Children)
			}
			if err != nil {
				return a, err
			}
		}
		return nil, nil
	}
	return visit(root)
}
