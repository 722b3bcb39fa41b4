// Package attr classifies JSX attribute names.
//
// Every physical attribute maps to exactly one Name variant, computed purely
// from its name and optional namespace. The compiler switches over the
// closed set of variants to pick a static setter or an update closure.
package attr

import (
	"fmt"
	"regexp"
	"strings"
)

// Name is the classification of one attribute. The variants are the
// exported types in this file; the unexported method seals the set.
type Name interface {
	isName()
	// Kind returns a short stable label used in manifests and metrics.
	Kind() string
}

// Attr is a plain attribute set with __SetAttribute.
type Attr struct{ Name string }

// Dataset is a data-* attribute; Name has the prefix stripped.
type Dataset struct{ Name string }

// Event is an event binding such as bindtap. Type is the binding flavor
// ("bindEvent", "catchEvent", "capture-bind", ...) and Name the event.
type Event struct {
	Type string
	Name string
}

// WorkletEvent is an event bound in a namespace (main-thread:bindtap).
type WorkletEvent struct {
	Namespace string
	Type      string
	Name      string
}

type Style struct{}

// ParsedStyle is a style object whose dynamic properties were resolved to
// numeric CSS property ids at compile time.
type ParsedStyle struct{ PropIDs []int }

type Class struct{}

type ID struct{}

type Ref struct{}

// TimingFlag is __lynx_timing_flag.
type TimingFlag struct{}

// WorkletRef is a namespaced ref (main-thread:ref).
type WorkletRef struct{ Namespace string }

// ListItemPlatformInfo is the aggregated set of list-item platform
// attributes hoisted into one dynamic part.
type ListItemPlatformInfo struct{}

// Gesture is a namespaced gesture binding (main-thread:gesture).
type Gesture struct{ Namespace string }

func (Attr) isName()                 {}
func (Dataset) isName()              {}
func (Event) isName()                {}
func (WorkletEvent) isName()         {}
func (Style) isName()                {}
func (ParsedStyle) isName()          {}
func (Class) isName()                {}
func (ID) isName()                   {}
func (Ref) isName()                  {}
func (TimingFlag) isName()           {}
func (WorkletRef) isName()           {}
func (ListItemPlatformInfo) isName() {}
func (Gesture) isName()              {}

func (Attr) Kind() string                 { return "attr" }
func (Dataset) Kind() string              { return "dataset" }
func (Event) Kind() string                { return "event" }
func (WorkletEvent) Kind() string         { return "worklet-event" }
func (Style) Kind() string                { return "style" }
func (ParsedStyle) Kind() string          { return "parsed-style" }
func (Class) Kind() string                { return "class" }
func (ID) Kind() string                   { return "id" }
func (Ref) Kind() string                  { return "ref" }
func (TimingFlag) Kind() string           { return "timing-flag" }
func (WorkletRef) Kind() string           { return "worklet-ref" }
func (ListItemPlatformInfo) Kind() string { return "list-item-platform-info" }
func (Gesture) Kind() string              { return "gesture" }

// TimingFlagAttr is the attribute name that marks a timing flag.
const TimingFlagAttr = "__lynx_timing_flag"

var eventPattern = regexp.MustCompile(`^(global-bind|bind|catch|capture-bind|capture-catch)([A-Za-z]+)$`)

// parseEvent splits an event attribute into its binding type and event
// name. Capture prefixes are their own type; the others get an "Event"
// suffix so bind and catch stay distinct.
func parseEvent(name string) (typ, event string, ok bool) {
	m := eventPattern.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	prefix := m[1]
	if strings.Contains(prefix, "capture") {
		return prefix, m[2], true
	}
	return prefix + "Event", m[2], true
}

// Classify maps an attribute name without a namespace. It is total: names
// matching no rule are plain attributes.
func Classify(name string) Name {
	switch {
	case strings.HasPrefix(name, "data-"):
		return Dataset{Name: name[len("data-"):]}
	case name == "class" || name == "className":
		return Class{}
	case name == "style":
		return Style{}
	case name == "id":
		return ID{}
	case name == "ref":
		return Ref{}
	case name == TimingFlagAttr:
		return TimingFlag{}
	}
	if typ, event, ok := parseEvent(name); ok {
		return Event{Type: typ, Name: event}
	}
	return Attr{Name: name}
}

// UnsupportedError reports a namespaced attribute that maps to no variant.
type UnsupportedError struct {
	Namespace string
	Name      string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported namespaced attribute %s:%s", e.Namespace, e.Name)
}

// ClassifyNS maps a namespaced attribute. Only ref, event bindings and
// gesture are defined in a namespace; anything else is an
// *UnsupportedError.
func ClassifyNS(ns, name string) (Name, error) {
	if name == "ref" {
		return WorkletRef{Namespace: ns}, nil
	}
	if typ, event, ok := parseEvent(name); ok {
		return WorkletEvent{Namespace: ns, Type: typ, Name: event}, nil
	}
	if name == "gesture" {
		return Gesture{Namespace: ns}, nil
	}
	return nil, &UnsupportedError{Namespace: ns, Name: name}
}
