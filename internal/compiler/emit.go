package compiler

import (
	"github.com/roach88/snapc/internal/attr"
	"github.com/roach88/snapc/internal/diag"
	"github.com/roach88/snapc/internal/jsx"
)

// emit assembles the createSnapshot definition for one extracted root and
// returns the snapshot together with the element that replaces the root.
func (t *transformer) emit(uid string, x *extractor, creator *jsx.EFunction, slotCount int, pos jsx.Pos) (*Snapshot, *jsx.Element) {
	snap := &Snapshot{
		UID:          uid,
		Creator:      creator,
		ElementCount: len(x.names),
		Parts:        x.parts,
		CSSID:        t.cssID,
		Key:          x.key,
		Pos:          pos,
	}

	for i, p := range snap.AttrParts() {
		if t.opts.Target != TargetJS {
			snap.Updaters = append(snap.Updaters, t.updater(p, i))
		}
		snap.Values = append(snap.Values, t.value(p))
	}

	slot, children := t.slotDescriptor(snap)

	var creatorArg jsx.E = creator
	if t.opts.Target == TargetJS {
		creatorArg = &jsx.ENull{}
	}
	var updatersArg jsx.E = &jsx.ENull{}
	if len(snap.Updaters) > 0 {
		updatersArg = &jsx.EArray{Items: snap.Updaters}
	}
	var cssArg jsx.E = jsx.Id("undefined")
	if t.cssID != nil {
		cssArg = jsx.Num(*t.cssID)
	}

	args := []jsx.E{jsx.Str(uid), creatorArg, updatersArg, slot, cssArg}
	if t.opts.IsDynamicComponent {
		args = append(args, jsx.Id(dynamicEntryIdent))
	}
	t.defs = append(t.defs, &jsx.SConst{
		Name:  uid,
		Value: &jsx.ECall{Target: jsx.Dot(t.runtime(), "createSnapshot"), Args: args, Pure: true},
	})

	ref := &jsx.Element{
		Name:        jsx.Ident(uid),
		Children:    children,
		SelfClosing: slotCount == 0,
		Pos:         pos,
	}
	if x.key != nil {
		ref.Attrs = append(ref.Attrs, x.key)
	}
	if len(snap.Values) > 0 {
		ref.Attrs = append(ref.Attrs, &jsx.Attr{
			Name:      "values",
			Value:     &jsx.EArray{Items: snap.Values},
			Container: true,
		})
	}
	return snap, ref
}

// slotDescriptor builds the slot argument of createSnapshot and the children
// of the reference element. A snapshot whose only structural part is the
// root's children uses the shared __DynamicPartChildren_0 descriptor.
func (t *transformer) slotDescriptor(snap *Snapshot) (jsx.E, []jsx.Child) {
	structural := snap.StructuralParts()
	if len(structural) == 0 {
		return &jsx.ENull{}, nil
	}
	if c, ok := structural[0].(*ChildrenPart); ok && len(structural) == 1 && c.Element == 0 {
		snap.Slots = []SlotDescriptor{{Kind: SlotChildren, Element: 0}}
		return jsx.Dot(t.runtime(), "__DynamicPartChildren_0"), []jsx.Child{exprChild(c.Expr)}
	}

	var (
		items    []jsx.E
		children []jsx.Child
	)
	for _, p := range structural {
		var kind SlotKind
		switch p := p.(type) {
		case *SlotPart:
			kind = SlotSlot
			children = append(children, p.Payload)
		case *ChildrenPart:
			kind = SlotChildren
			children = append(children, exprChild(p.Expr))
		case *ListChildrenPart:
			kind = SlotListChildren
			children = append(children, exprChild(p.Expr))
		}
		snap.Slots = append(snap.Slots, SlotDescriptor{Kind: kind, Element: p.ElementIndex()})
		items = append(items, &jsx.EArray{Items: []jsx.E{
			jsx.Dot(t.runtime(), kind.runtimeName()),
			jsx.Num(p.ElementIndex()),
		}})
	}
	return &jsx.EArray{Items: items}, children
}

func exprChild(e jsx.E) jsx.Child {
	if el, ok := e.(*jsx.EJSXElement); ok {
		return el.Element
	}
	return &jsx.ExprContainer{Expr: e}
}

// value is what the reference element passes for p in its values array.
func (t *transformer) value(p DynamicPart) jsx.E {
	switch p := p.(type) {
	case *AttrPart:
		switch p.Name.(type) {
		case attr.Event:
			if t.opts.Target == TargetLepus {
				return jsx.Num(1)
			}
		case attr.Ref:
			return jsx.Call(jsx.Dot(t.runtime(), "transformRef"), p.Value)
		}
		return p.Value
	case *SpreadPart:
		return p.Value
	}
	diag.Internalf(jsx.Pos{}, "structural part %s has no value", PartKind(p))
	return nil
}

// updater builds the closure that applies value xi of an instance to its
// element. Direct setters run only when the instance owns real elements;
// everything that needs runtime bookkeeping delegates to the runtime.
func (t *transformer) updater(p DynamicPart, xi int) jsx.E {
	ei := p.ElementIndex()
	switch p := p.(type) {
	case *SpreadPart:
		return t.rebind("updateSpread", ei)
	case *AttrPart:
		switch n := p.Name.(type) {
		case attr.Attr:
			return setUpdater(ei, "__SetAttribute", jsx.Str(n.Name), ctxValue(xi))
		case attr.TimingFlag:
			return setUpdater(ei, "__SetAttribute", jsx.Str(attr.TimingFlagAttr), jsx.Dot(ctxValue(xi), "__ltf"))
		case attr.Dataset:
			return setUpdater(ei, "__AddDataset", jsx.Str(n.Name), ctxValue(xi))
		case attr.Style:
			return setUpdater(ei, "__SetInlineStyles", ctxValue(xi))
		case attr.Class:
			return setUpdater(ei, "__SetClasses", &jsx.EBinary{Op: "||", Left: ctxValue(xi), Right: jsx.Str("")})
		case attr.ID:
			return setUpdater(ei, "__SetID", ctxValue(xi))
		case attr.ParsedStyle:
			body := []jsx.S{
				&jsx.SLet{Name: "el", Value: ctxElement(ei)},
				&jsx.SLet{Name: "style_values", Value: ctxValue(xi)},
			}
			for i, id := range n.PropIDs {
				body = append(body, &jsx.SExpr{Value: jsx.Call(jsx.Id("__AddInlineStyle"),
					jsx.Id("el"), jsx.Num(id), &jsx.EIndex{Target: jsx.Id("style_values"), Index: jsx.Num(i)})})
			}
			return guarded(body...)
		case attr.Event:
			return t.rebind("updateEvent", ei, jsx.Str(n.Type), jsx.Str(n.Name), jsx.Str(""))
		case attr.WorkletEvent:
			return t.rebind("updateWorkletEvent", ei, jsx.Str(n.Namespace), jsx.Str(n.Type), jsx.Str(n.Name))
		case attr.Ref:
			return t.rebind("updateRef", ei, jsx.Str(""))
		case attr.WorkletRef:
			return t.rebind("updateWorkletRef", ei, jsx.Str(n.Namespace))
		case attr.ListItemPlatformInfo:
			return t.rebind("updateListItemPlatformInfo", ei)
		case attr.Gesture:
			return t.rebind("updateGesture", ei, jsx.Str(n.Namespace))
		}
	}
	diag.Internalf(jsx.Pos{}, "no updater for %s part", PartKind(p))
	return nil
}

// rebind is `(snapshot, index, oldValue) => runtime.fn(snapshot, index,
// oldValue, ei, extra...)`.
func (t *transformer) rebind(fn string, ei int, extra ...jsx.E) jsx.E {
	args := []jsx.E{jsx.Id("snapshot"), jsx.Id("index"), jsx.Id("oldValue"), jsx.Num(ei)}
	return &jsx.EArrow{
		Params: []string{"snapshot", "index", "oldValue"},
		Body:   jsx.Call(jsx.Dot(t.runtime(), fn), append(args, extra...)...),
	}
}

// setUpdater is `function (ctx) { if (ctx.__elements) { fn(el, args...); } }`.
func setUpdater(ei int, fn string, args ...jsx.E) jsx.E {
	call := jsx.Call(jsx.Id(fn), append([]jsx.E{ctxElement(ei)}, args...)...)
	return guarded(&jsx.SExpr{Value: call})
}

func guarded(body ...jsx.S) *jsx.EFunction {
	return &jsx.EFunction{
		Params: []string{"ctx"},
		Body: []jsx.S{&jsx.SIf{
			Test: jsx.Dot(jsx.Id("ctx"), "__elements"),
			Body: body,
		}},
	}
}

func ctxElement(ei int) jsx.E {
	return &jsx.EIndex{Target: jsx.Dot(jsx.Id("ctx"), "__elements"), Index: jsx.Num(ei)}
}

func ctxValue(xi int) jsx.E {
	return &jsx.EIndex{Target: jsx.Dot(jsx.Id("ctx"), "__values"), Index: jsx.Num(xi)}
}
