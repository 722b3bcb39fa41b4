package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/snapc/internal/attr"
	"github.com/roach88/snapc/internal/jsx"
)

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidateValid(t *testing.T) {
	snap := &Snapshot{
		ElementCount: 2,
		Parts: []DynamicPart{
			&AttrPart{Value: jsx.Id("x"), Element: 0, Name: attr.Attr{Name: "title"}},
			&ChildrenPart{Expr: jsx.Id("c"), Element: 1},
		},
		Updaters: []jsx.E{&jsx.ENull{}},
		Values:   []jsx.E{jsx.Id("x")},
		Slots:    []SlotDescriptor{{SlotChildren, 1}},
	}
	assert.Empty(t, Validate(snap, TargetLepus))
}

func TestValidateElementOutOfRange(t *testing.T) {
	snap := &Snapshot{
		ElementCount: 1,
		Parts:        []DynamicPart{&SlotPart{Element: 3}},
		Slots:        []SlotDescriptor{{SlotSlot, 3}},
	}
	assert.Equal(t, []string{ErrElementOutOfRange, ErrElementOutOfRange}, codes(Validate(snap, TargetLepus)))
}

func TestValidateChildrenExclusive(t *testing.T) {
	snap := &Snapshot{
		ElementCount: 1,
		Parts: []DynamicPart{
			&ChildrenPart{Element: 0},
			&ChildrenPart{Element: 0},
			&SlotPart{Element: 0},
		},
		Slots: []SlotDescriptor{{SlotChildren, 0}, {SlotChildren, 0}, {SlotSlot, 0}},
	}
	assert.ElementsMatch(t, []string{ErrDuplicateChildren, ErrMixedChildren}, codes(Validate(snap, TargetLepus)))
}

func TestValidateCounts(t *testing.T) {
	snap := &Snapshot{
		ElementCount: 1,
		Parts: []DynamicPart{
			&AttrPart{Element: 0, Name: attr.ParsedStyle{}},
		},
	}
	got := codes(Validate(snap, TargetLepus))
	assert.ElementsMatch(t, []string{ErrEmptyParsedStyle, ErrUpdaterCount, ErrValueCount}, got)

	// The JS target carries no updaters.
	snap.Values = []jsx.E{jsx.Id("v")}
	got = codes(Validate(snap, TargetJS))
	assert.Equal(t, []string{ErrEmptyParsedStyle}, got)
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Field: "parts[0]", Message: "bad", Code: ErrElementOutOfRange}
	assert.Equal(t, "[E401] parts[0]: bad", e.Error())
}
