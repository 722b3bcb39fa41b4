package compiler

import (
	"fmt"

	"github.com/roach88/snapc/internal/attr"
)

// Validation error codes (E400-E499). A compiled snapshot that fails
// validation points at a compiler bug, not at the input.
const (
	ErrElementOutOfRange  = "E401" // part or slot refers past the creator's output
	ErrMixedChildren      = "E402" // element has both Children and Slot parts
	ErrDuplicateChildren  = "E403" // element has more than one Children part
	ErrUpdaterCount       = "E404" // updaters do not match attribute parts
	ErrValueCount         = "E405" // values do not match attribute parts
	ErrEmptyParsedStyle   = "E406" // parsed style part without properties
	ErrSlotDescriptorSize = "E407" // slot descriptors do not match structural parts
)

// ValidationError is one violated snapshot invariant.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks the invariants every compiled snapshot must hold.
// Returns all errors found (does not fail-fast).
func Validate(snap *Snapshot, target Target) []ValidationError {
	var errs []ValidationError

	children := make(map[int]int)
	slots := make(map[int]bool)
	for i, p := range snap.Parts {
		field := fmt.Sprintf("parts[%d]", i)

		// E401
		if ei := p.ElementIndex(); ei < 0 || ei >= snap.ElementCount {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s part refers to element %d, creator returns %d", PartKind(p), ei, snap.ElementCount),
				Code:    ErrElementOutOfRange,
			})
		}

		switch p := p.(type) {
		case *ChildrenPart:
			children[p.Element]++
		case *ListChildrenPart:
			children[p.Element]++
		case *SlotPart:
			slots[p.Element] = true
		case *AttrPart:
			// E406
			if ps, ok := p.Name.(attr.ParsedStyle); ok && len(ps.PropIDs) == 0 {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: "parsed style carries no properties",
					Code:    ErrEmptyParsedStyle,
				})
			}
		}
	}

	for ei, n := range children {
		// E403
		if n > 1 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("element[%d]", ei),
				Message: fmt.Sprintf("%d children parts on one element", n),
				Code:    ErrDuplicateChildren,
			})
		}
		// E402
		if slots[ei] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("element[%d]", ei),
				Message: "element has both children and slot parts",
				Code:    ErrMixedChildren,
			})
		}
	}

	attrParts := len(snap.AttrParts())

	// E404
	wantUpdaters := attrParts
	if target == TargetJS {
		wantUpdaters = 0
	}
	if len(snap.Updaters) != wantUpdaters {
		errs = append(errs, ValidationError{
			Field:   "updaters",
			Message: fmt.Sprintf("%d updaters for %d attribute parts", len(snap.Updaters), wantUpdaters),
			Code:    ErrUpdaterCount,
		})
	}

	// E405
	if len(snap.Values) != attrParts {
		errs = append(errs, ValidationError{
			Field:   "values",
			Message: fmt.Sprintf("%d values for %d attribute parts", len(snap.Values), attrParts),
			Code:    ErrValueCount,
		})
	}

	// E407
	if structural := len(snap.StructuralParts()); len(snap.Slots) != structural {
		errs = append(errs, ValidationError{
			Field:   "slots",
			Message: fmt.Sprintf("%d slot descriptors for %d structural parts", len(snap.Slots), structural),
			Code:    ErrSlotDescriptorSize,
		})
	}
	for i, s := range snap.Slots {
		if s.Element < 0 || s.Element >= snap.ElementCount {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("slots[%d]", i),
				Message: fmt.Sprintf("%s slot refers to element %d, creator returns %d", s.Kind, s.Element, snap.ElementCount),
				Code:    ErrElementOutOfRange,
			})
		}
	}

	return errs
}
