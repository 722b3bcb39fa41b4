package compiler

import (
	"github.com/roach88/snapc/internal/diag"
	"github.com/roach88/snapc/internal/jsx"
)

// marker is the prepass that decides how each element's children are
// updated. It rewrites child lists in place, grouping consecutive dynamic
// siblings under synthetic wrapper elements, and records every element whose
// children form one runtime slot.
//
// count is the total number of slots. When it is at most one the extractor
// can describe the whole snapshot with a single Children part; otherwise
// each slot becomes an independently addressable Slot part.
type marker struct {
	count int
	slots map[*jsx.Element]bool
}

func newMarker() *marker {
	return &marker{slots: make(map[*jsx.Element]bool)}
}

// isSlot reports whether el was recorded as a slot.
func (m *marker) isSlot(el *jsx.Element) bool {
	return m.slots[el]
}

func (m *marker) markElement(el *jsx.Element) {
	if jsx.IsCustom(el) {
		return
	}

	list := jsx.IsList(el)
	if list && len(el.Children) > 0 {
		el.Children = []jsx.Child{&jsx.ExprContainer{
			Expr: jsx.ChildrenToExpr(el.Children),
			Pos:  el.Pos,
		}}
	}

	if list || jsx.IsChildrenFullDynamic(el) {
		m.count++
		m.slots[el] = true
		return
	}
	el.Children = m.markChildren(el.Children)
}

// markChildren returns children with every maximal run of dynamic siblings
// replaced by one wrapper slot. Anchors stay in place and are marked
// recursively; a fragment anchor has its own children grouped.
func (m *marker) markChildren(children []jsx.Child) []jsx.Child {
	if len(children) == 0 {
		return children
	}

	out := make([]jsx.Child, 0, len(children))
	var run []jsx.Child
	flush := func() {
		if len(run) == 0 {
			return
		}
		w := &jsx.Element{Name: jsx.Ident("wrapper"), Children: run}
		m.slots[w] = true
		m.count++
		out = append(out, w)
		run = nil
	}

	for _, c := range children {
		if !isAnchor(c, len(run) == 0) {
			run = append(run, c)
			continue
		}
		flush()
		switch c := c.(type) {
		case *jsx.Element:
			m.markElement(c)
		case *jsx.Fragment:
			c.Children = m.markChildren(c.Children)
		}
		out = append(out, c)
	}
	flush()
	return out
}

// isAnchor reports whether c is kept in place rather than merged into the
// current run of dynamic siblings. Whitespace-only text joins a run that has
// already started and is otherwise left alone.
func isAnchor(c jsx.Child, runEmpty bool) bool {
	switch c := c.(type) {
	case *jsx.Text:
		if jsx.TextValue(c) == "" {
			return runEmpty
		}
		return true
	case *jsx.Element:
		return !jsx.IsCustom(c) && !jsx.HasDynamicKey(c)
	case *jsx.ExprContainer:
		_, empty := c.Expr.(*jsx.EEmpty)
		return empty
	case *jsx.Fragment:
		return true
	case *jsx.SpreadChild:
		diag.Internalf(c.Pos, "spread children are not supported")
	}
	return true
}
