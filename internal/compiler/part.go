package compiler

import (
	"github.com/roach88/snapc/internal/attr"
	"github.com/roach88/snapc/internal/jsx"
)

// DynamicPart is a piece of a template whose value is only known at runtime.
// The variants are the *Part types in this file.
type DynamicPart interface {
	isPart()
	// ElementIndex is the element the part applies to.
	ElementIndex() int
}

// AttrPart is one dynamic attribute (or aggregated attribute group, such as a
// parsed style or list-item platform info).
type AttrPart struct {
	Value   jsx.E
	Element int
	Name    attr.Name
}

// SpreadPart carries every attribute of an element that uses spread, as one
// props object.
type SpreadPart struct {
	Value   jsx.E
	Element int
}

// SlotPart is one merged run of dynamic siblings, rendered into a wrapper
// element at Element.
type SlotPart struct {
	Payload *jsx.Element
	Element int
}

// ChildrenPart is the whole child list of Element, collapsed into Expr.
type ChildrenPart struct {
	Expr    jsx.E
	Element int
}

// ListChildrenPart is ChildrenPart for a <list>.
type ListChildrenPart struct {
	Expr    jsx.E
	Element int
}

func (*AttrPart) isPart()         {}
func (*SpreadPart) isPart()       {}
func (*SlotPart) isPart()         {}
func (*ChildrenPart) isPart()     {}
func (*ListChildrenPart) isPart() {}

func (p *AttrPart) ElementIndex() int         { return p.Element }
func (p *SpreadPart) ElementIndex() int       { return p.Element }
func (p *SlotPart) ElementIndex() int         { return p.Element }
func (p *ChildrenPart) ElementIndex() int     { return p.Element }
func (p *ListChildrenPart) ElementIndex() int { return p.Element }

// IsStructural reports whether p describes children rather than attributes.
// Structural parts get no updater and no slot in the values array.
func IsStructural(p DynamicPart) bool {
	switch p.(type) {
	case *SlotPart, *ChildrenPart, *ListChildrenPart:
		return true
	}
	return false
}

// PartKind returns a short stable label for p.
func PartKind(p DynamicPart) string {
	switch p := p.(type) {
	case *AttrPart:
		return p.Name.Kind()
	case *SpreadPart:
		return "spread"
	case *SlotPart:
		return "slot"
	case *ChildrenPart:
		return "children"
	case *ListChildrenPart:
		return "list-children"
	}
	return "unknown"
}

// SlotKind is the runtime machinery that owns a structural part.
type SlotKind uint8

const (
	SlotChildren SlotKind = iota
	SlotListChildren
	SlotSlot
)

func (k SlotKind) String() string {
	switch k {
	case SlotChildren:
		return "children"
	case SlotListChildren:
		return "list-children"
	default:
		return "slot"
	}
}

// runtimeName is the runtime constant naming the slot kind.
func (k SlotKind) runtimeName() string {
	switch k {
	case SlotChildren:
		return "__DynamicPartChildren"
	case SlotListChildren:
		return "__DynamicPartListChildren"
	default:
		return "__DynamicPartSlot"
	}
}

// SlotDescriptor maps an element to the structural update it receives.
type SlotDescriptor struct {
	Kind    SlotKind
	Element int
}

// Snapshot is the compiled unit for one JSX root.
type Snapshot struct {
	UID string
	// Creator builds the element tree and returns the element handles in
	// ElementIndex order.
	Creator *jsx.EFunction
	// ElementCount is the length of the array Creator returns.
	ElementCount int
	// Parts lists every dynamic part in extraction order.
	Parts []DynamicPart
	// Updaters holds one closure per attribute-like part, in ExprIndex
	// order. Empty for TargetJS.
	Updaters []jsx.E
	// Values holds the replacement node's values array, in ExprIndex order.
	Values []jsx.E
	Slots  []SlotDescriptor
	CSSID  *int
	// Key is the root element's key attribute, lifted onto the reference.
	Key *jsx.Attr
	Pos jsx.Pos
}

// AttrParts returns the attribute-like parts in ExprIndex order.
func (s *Snapshot) AttrParts() []DynamicPart {
	var out []DynamicPart
	for _, p := range s.Parts {
		if !IsStructural(p) {
			out = append(out, p)
		}
	}
	return out
}

// StructuralParts returns the slot, children and list-children parts.
func (s *Snapshot) StructuralParts() []DynamicPart {
	var out []DynamicPart
	for _, p := range s.Parts {
		if IsStructural(p) {
			out = append(out, p)
		}
	}
	return out
}
