package compiler

import (
	"strings"

	"github.com/roach88/snapc/internal/ir"
	"github.com/roach88/snapc/internal/printer"
)

// Manifest summarizes s for inspection and change detection. The returned
// manifest is sealed.
func (s *Snapshot) Manifest(filename string, target Target) (ir.Manifest, error) {
	m := ir.Manifest{
		UID:      s.UID,
		Filename: filename,
		Line:     s.Pos.Line,
		Target:   target.String(),
		Elements: s.ElementCount,
		Parts:    make([]ir.PartRecord, 0, len(s.Parts)),
		Slots:    make([]ir.SlotRecord, 0, len(s.Slots)),
		CSSID:    s.CSSID,
		HasKey:   s.Key != nil,
		Code:     s.code(),
	}

	xi := 0
	for _, p := range s.Parts {
		rec := ir.PartRecord{Kind: PartKind(p), Element: p.ElementIndex(), Value: -1}
		if !IsStructural(p) {
			rec.Value = xi
			xi++
		}
		m.Parts = append(m.Parts, rec)
	}
	for _, slot := range s.Slots {
		m.Slots = append(m.Slots, ir.SlotRecord{Kind: slot.Kind.String(), Element: slot.Element})
	}

	if err := m.Seal(); err != nil {
		return ir.Manifest{}, err
	}
	return m, nil
}

// code prints the creator and updaters.
func (s *Snapshot) code() string {
	var b strings.Builder
	if s.Creator != nil {
		b.WriteString(printer.Expr(s.Creator))
	}
	for _, u := range s.Updaters {
		b.WriteByte('\n')
		b.WriteString(printer.Expr(u))
	}
	return b.String()
}
