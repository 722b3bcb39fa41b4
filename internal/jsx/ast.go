package jsx

import (
	"strconv"
	"strings"
)

// Pos is a source position. Line and Column are 1-based; a zero Pos means
// the node was synthesized by the compiler.
type Pos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// IsZero reports whether the position is unset.
func (p Pos) IsZero() bool {
	return p.Line == 0
}

// E is an expression node.
type E interface{ isExpr() }

// EString is a string literal. Raw keeps the source spelling (quotes
// included) so untouched literals print back verbatim; synthesized strings
// leave Raw empty and are quoted by the printer.
type EString struct {
	Value string
	Raw   string
}

// ENumber is a numeric literal, kept in source form. Negative literals
// ("-1") are folded into a single ENumber by the parser.
type ENumber struct {
	Raw string
}

type EBoolean struct {
	Value bool
}

type ENull struct{}

// EIdent is a bare identifier reference, including "undefined" and "this".
type EIdent struct {
	Name string
}

// ETemplate is a template literal without substitutions. Templates that
// interpolate are opaque and parse as ERaw.
type ETemplate struct {
	Value string
	Raw   string
}

type EArray struct {
	Items []E
}

// PropKind distinguishes object literal members.
type PropKind uint8

const (
	PropKeyValue PropKind = iota
	PropShorthand
	PropSpread
	PropComputed
	PropOther // methods, getters and setters, kept as raw text
)

// Property is one member of an object literal.
//
// For PropKeyValue, Key holds the cooked key and KeyRaw the source spelling
// (empty when synthesized). NumericKey is set when the key was a number
// literal. PropComputed keeps the key expression in KeyExpr. PropSpread and
// PropShorthand use Value only (Shorthand stores an EIdent). PropOther keeps
// its text in Raw.
type Property struct {
	Kind       PropKind
	Key        string
	KeyRaw     string
	NumericKey bool
	KeyExpr    E
	Value      E
	Raw        string
}

type EObject struct {
	Props []Property
}

// EJSXElement wraps a JSX element used in expression position.
type EJSXElement struct {
	Element *Element
}

// EJSXFragment wraps a JSX fragment used in expression position.
type EJSXFragment struct {
	Fragment *Fragment
}

// EEmpty is the empty JSX expression: "{}" or a container holding only
// comments. Raw is the container's inner text.
type EEmpty struct {
	Raw string
}

// RawPart is one piece of an ERaw or SRaw: either verbatim source text or a
// JSX node found inside it. Snapshot marks a JSX argument of an explicit
// __SNAPSHOT__(...) call; the whole call is represented by the part and is
// replaced by the compiled snapshot's identifier.
type RawPart struct {
	Text     string
	JSX      E
	Snapshot bool
}

// ERaw is an expression the compiler does not model, kept as source text
// with embedded JSX split out.
type ERaw struct {
	Parts []RawPart
}

// ECall is a call expression. Pure prefixes the call with a /*#__PURE__*/
// annotation.
type ECall struct {
	Target E
	Args   []E
	Pure   bool
}

// EDot is a property access with a static name.
type EDot struct {
	Target E
	Name   string
}

// EIndex is a computed property access.
type EIndex struct {
	Target E
	Index  E
}

// EFunction is an anonymous function expression.
type EFunction struct {
	Params []string
	Body   []S
}

// EArrow is an arrow function with an expression body.
type EArrow struct {
	Params []string
	Body   E
}

// EBinary is a binary or logical expression.
type EBinary struct {
	Op    string
	Left  E
	Right E
}

func (*EString) isExpr()      {}
func (*ENumber) isExpr()      {}
func (*EBoolean) isExpr()     {}
func (*ENull) isExpr()        {}
func (*EIdent) isExpr()       {}
func (*ETemplate) isExpr()    {}
func (*EArray) isExpr()       {}
func (*EObject) isExpr()      {}
func (*EJSXElement) isExpr()  {}
func (*EJSXFragment) isExpr() {}
func (*EEmpty) isExpr()       {}
func (*ERaw) isExpr()         {}
func (*ECall) isExpr()        {}
func (*EDot) isExpr()         {}
func (*EIndex) isExpr()       {}
func (*EFunction) isExpr()    {}
func (*EArrow) isExpr()       {}
func (*EBinary) isExpr()      {}

// S is a statement node.
type S interface{ isStmt() }

type SConst struct {
	Name  string
	Value E
}

type SLet struct {
	Name  string
	Value E
}

type SExpr struct {
	Value E
}

type SReturn struct {
	Value E
}

type SIf struct {
	Test E
	Body []S
}

// SImportStar is `import * as Name from "Path";`.
type SImportStar struct {
	Name string
	Path string
}

// SRaw is a top-level module item kept as source text.
type SRaw struct {
	Parts []RawPart
}

func (*SConst) isStmt()      {}
func (*SLet) isStmt()        {}
func (*SExpr) isStmt()       {}
func (*SReturn) isStmt()     {}
func (*SIf) isStmt()         {}
func (*SImportStar) isStmt() {}
func (*SRaw) isStmt()        {}

// Comment is a source comment; the compiler scans block comments for
// pragmas such as @jsxCSSId.
type Comment struct {
	Text  string
	Block bool
	Pos   Pos
}

// Module is one parsed source file.
type Module struct {
	Filename string
	Source   []byte
	Items    []S
	Comments []Comment
}

// NameKind classifies a JSX element name.
type NameKind uint8

const (
	NameIdent NameKind = iota
	NameMember
	NameNamespaced
)

// ElementName is a JSX tag name. For NameMember, Name holds the dotted path
// ("Foo.Bar"). For NameNamespaced, Namespace and Name hold the two halves.
type ElementName struct {
	Kind      NameKind
	Namespace string
	Name      string
}

// Ident returns a plain identifier name.
func Ident(name string) ElementName {
	return ElementName{Kind: NameIdent, Name: name}
}

// String returns the name as written in source.
func (n ElementName) String() string {
	if n.Kind == NameNamespaced {
		return n.Namespace + ":" + n.Name
	}
	return n.Name
}

// Child is a JSX child node.
type Child interface{ isChild() }

// Element is a JSX element.
type Element struct {
	Name        ElementName
	Attrs       []*Attr
	Children    []Child
	SelfClosing bool
	Pos         Pos
}

// Fragment is `<>...</>`.
type Fragment struct {
	Children []Child
	Pos      Pos
}

// Text is a run of JSX text, stored as written.
type Text struct {
	Raw string
	Pos Pos
}

// ExprContainer is `{expr}` in child position. Expr is *EEmpty for `{}` and
// comment-only containers.
type ExprContainer struct {
	Expr E
	Pos  Pos
}

// SpreadChild is `{...expr}` in child position.
type SpreadChild struct {
	Expr E
	Pos  Pos
}

func (*Element) isChild()       {}
func (*Fragment) isChild()      {}
func (*Text) isChild()          {}
func (*ExprContainer) isChild() {}
func (*SpreadChild) isChild()   {}

// Attr is a JSX attribute.
//
// A spread attribute `{...expr}` sets Spread and nothing else. Otherwise
// Value is nil for a bare attribute (`disabled`), an *EString for a quoted
// value, the contained expression when Container is true (*EEmpty for
// `attr={}`), or an *EJSXElement/*EJSXFragment for an element value.
type Attr struct {
	Spread    E
	Namespace string
	Name      string
	Value     E
	Container bool
	Pos       Pos
}

// FullName returns "ns:name" for namespaced attributes and the bare name
// otherwise.
func (a *Attr) FullName() string {
	if a.Namespace != "" {
		return a.Namespace + ":" + a.Name
	}
	return a.Name
}

// IsSpread reports whether a is a spread attribute.
func (a *Attr) IsSpread() bool {
	return a.Spread != nil
}

// Str builds a synthesized string literal.
func Str(s string) *EString {
	return &EString{Value: s}
}

// Id builds an identifier reference.
func Id(name string) *EIdent {
	return &EIdent{Name: name}
}

// Num builds a numeric literal from an int.
func Num(n int) *ENumber {
	return &ENumber{Raw: strconv.Itoa(n)}
}

// Call builds a call expression.
func Call(target E, args ...E) *ECall {
	return &ECall{Target: target, Args: args}
}

// Dot builds a static member access, splitting dotted paths.
func Dot(target E, path string) E {
	for _, name := range strings.Split(path, ".") {
		target = &EDot{Target: target, Name: name}
	}
	return target
}
