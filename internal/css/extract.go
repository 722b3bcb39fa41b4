package css

import (
	"strconv"
	"strings"

	"github.com/roach88/snapc/internal/diag"
	"github.com/roach88/snapc/internal/jsx"
)

// Decl is one style declaration resolved to a property id.
type Decl struct {
	ID    int
	Value jsx.E
}

// Decompose resolves every member of a style object literal to a property
// id, in source order. It fails when a member is a spread, a computed key, a
// method, or a key outside the property table; the last case also reports
// a warning. Numeric keys are taken as ids directly.
func Decompose(obj *jsx.EObject, pos jsx.Pos, sink diag.Sink) ([]Decl, bool) {
	decls := make([]Decl, 0, len(obj.Props))
	for _, p := range obj.Props {
		var key string
		switch p.Kind {
		case jsx.PropKeyValue:
			if p.NumericKey {
				id, err := strconv.Atoi(p.Key)
				if err != nil {
					return nil, false
				}
				decls = append(decls, Decl{ID: id, Value: p.Value})
				continue
			}
			key = p.Key
		case jsx.PropShorthand:
			key = p.Value.(*jsx.EIdent).Name
		default:
			return nil, false
		}

		id, ok := ID(Kebab(key))
		if !ok {
			diag.Warn(sink, diag.WarnUnknownCSS, pos, "Unknown css property, fallback to SetInlineStyle")
			return nil, false
		}
		decls = append(decls, Decl{ID: id, Value: p.Value})
	}
	return decls, len(decls) > 0
}

// Split partitions decls into those that can be applied once at creation and
// those that must be re-applied per instance. A constant declaration is
// hoisted unless a dynamic declaration for the same property precedes it,
// since hoisting it would let the earlier dynamic value win.
func Split(decls []Decl) (static, dynamic []Decl) {
	dynamicIDs := make(map[int]bool)
	for _, d := range decls {
		if jsx.IsLiteral(d.Value) && !dynamicIDs[d.ID] {
			static = append(static, d)
			continue
		}
		dynamicIDs[d.ID] = true
		dynamic = append(dynamic, d)
	}
	return static, dynamic
}

// InlineString folds a constant style value into the string passed to
// __SetInlineStyles. Strings and templates pass through; an object literal
// becomes "key:value;..." in source order, keeping only string and number
// members. Other constant shapes are reported and yield false.
func InlineString(e jsx.E, pos jsx.Pos, sink diag.Sink) (string, bool) {
	switch v := e.(type) {
	case *jsx.EString:
		return v.Value, true
	case *jsx.ETemplate:
		return v.Value, true
	case *jsx.EObject:
		var parts []string
		for _, p := range v.Props {
			if p.Kind != jsx.PropKeyValue {
				continue
			}
			var val string
			switch pv := p.Value.(type) {
			case *jsx.EString:
				val = pv.Value
			case *jsx.ETemplate:
				val = pv.Value
			case *jsx.ENumber:
				val = pv.Raw
			default:
				continue
			}
			parts = append(parts, Kebab(p.Key)+":"+val)
		}
		return strings.Join(parts, ";"), true
	}
	diag.Warn(sink, diag.WarnStyleLiteral, pos, "Unexpected literal for style")
	return "", false
}
