package parse

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/snapc/internal/jsx"
)

func mustParse(t *testing.T, src string) *jsx.Module {
	t.Helper()
	mod, err := Parse(context.Background(), "test.jsx", []byte(src))
	require.NoError(t, err)
	return mod
}

// onlyJSX returns the single JSX part of a one-item module.
func onlyJSX(t *testing.T, mod *jsx.Module) jsx.RawPart {
	t.Helper()
	require.Len(t, mod.Items, 1)
	raw, ok := mod.Items[0].(*jsx.SRaw)
	require.True(t, ok, "item is %T", mod.Items[0])
	var found []jsx.RawPart
	for _, p := range raw.Parts {
		if p.JSX != nil {
			found = append(found, p)
		}
	}
	require.Len(t, found, 1)
	return found[0]
}

func rootElement(t *testing.T, src string) *jsx.Element {
	t.Helper()
	part := onlyJSX(t, mustParse(t, src))
	el, ok := part.JSX.(*jsx.EJSXElement)
	require.True(t, ok, "jsx is %T", part.JSX)
	return el.Element
}

func TestParseSplitsStatementAroundJSX(t *testing.T) {
	mod := mustParse(t, "const a = <view />;\nfoo();\n")
	require.Len(t, mod.Items, 2)

	first := mod.Items[0].(*jsx.SRaw)
	require.Len(t, first.Parts, 3)
	assert.Equal(t, "const a = ", first.Parts[0].Text)
	assert.IsType(t, &jsx.EJSXElement{}, first.Parts[1].JSX)
	assert.Equal(t, ";", first.Parts[2].Text)

	second := mod.Items[1].(*jsx.SRaw)
	assert.Equal(t, []jsx.RawPart{{Text: "foo();"}}, second.Parts)
}

func TestParseElementNames(t *testing.T) {
	el := rootElement(t, `<view />;`)
	assert.Equal(t, jsx.Ident("view"), el.Name)
	assert.True(t, el.SelfClosing)

	el = rootElement(t, `<Foo.Bar></Foo.Bar>;`)
	assert.Equal(t, jsx.NameMember, el.Name.Kind)
	assert.Equal(t, "Foo.Bar", el.Name.Name)
	assert.False(t, el.SelfClosing)

	el = rootElement(t, `<svg:rect />;`)
	assert.Equal(t, jsx.ElementName{Kind: jsx.NameNamespaced, Namespace: "svg", Name: "rect"}, el.Name)
}

func TestParseAttributes(t *testing.T) {
	el := rootElement(t, `<view id="a&amp;b" hidden title={x} style={{ color: "red" }} {...rest} bindtap={} />;`)
	require.Len(t, el.Attrs, 6)

	assert.Equal(t, "id", el.Attrs[0].Name)
	assert.Equal(t, &jsx.EString{Value: "a&b", Raw: `"a&amp;b"`}, el.Attrs[0].Value)
	assert.False(t, el.Attrs[0].Container)

	assert.Equal(t, "hidden", el.Attrs[1].Name)
	assert.Nil(t, el.Attrs[1].Value)

	assert.True(t, el.Attrs[2].Container)
	assert.Equal(t, jsx.Id("x"), el.Attrs[2].Value)

	obj, ok := el.Attrs[3].Value.(*jsx.EObject)
	require.True(t, ok)
	require.Len(t, obj.Props, 1)
	assert.Equal(t, "color", obj.Props[0].Key)
	assert.Equal(t, "red", obj.Props[0].Value.(*jsx.EString).Value)

	assert.True(t, el.Attrs[4].IsSpread())
	assert.Equal(t, jsx.Id("rest"), el.Attrs[4].Spread)

	assert.IsType(t, &jsx.EEmpty{}, el.Attrs[5].Value)
}

func TestParseChildrenKeepTextWhitespace(t *testing.T) {
	el := rootElement(t, "<text>Hi <image /> there</text>;")
	require.Len(t, el.Children, 3)
	assert.Equal(t, "Hi ", el.Children[0].(*jsx.Text).Raw)
	assert.IsType(t, &jsx.Element{}, el.Children[1])
	assert.Equal(t, " there", el.Children[2].(*jsx.Text).Raw)
}

func TestParseNamespacedAttribute(t *testing.T) {
	el := rootElement(t, `<view main-thread:bindtap={fn} />;`)
	require.Len(t, el.Attrs, 1)
	assert.Equal(t, "main-thread", el.Attrs[0].Namespace)
	assert.Equal(t, "bindtap", el.Attrs[0].Name)
}

func TestParseChildrenDropWhitespaceOnlyGaps(t *testing.T) {
	el := rootElement(t, "<view>\n  <text>Hi {name}</text>\n</view>;")
	require.Len(t, el.Children, 1)

	inner := el.Children[0].(*jsx.Element)
	require.Len(t, inner.Children, 2)
	assert.Equal(t, "Hi ", inner.Children[0].(*jsx.Text).Raw)
	assert.Equal(t, jsx.Id("name"), inner.Children[1].(*jsx.ExprContainer).Expr)

	text := inner.Children[0].(*jsx.Text)
	assert.Equal(t, 2, text.Pos.Line)
	assert.Equal(t, 9, text.Pos.Column)
}

func TestParseContainers(t *testing.T) {
	el := rootElement(t, "<view>{}{/* note */}{...items}</view>;")
	require.Len(t, el.Children, 3)
	assert.Equal(t, &jsx.EEmpty{Raw: ""}, el.Children[0].(*jsx.ExprContainer).Expr)
	assert.Equal(t, &jsx.EEmpty{Raw: "/* note */"}, el.Children[1].(*jsx.ExprContainer).Expr)
	assert.Equal(t, jsx.Id("items"), el.Children[2].(*jsx.SpreadChild).Expr)
}

func TestParseFragment(t *testing.T) {
	part := onlyJSX(t, mustParse(t, "<><view /></>;"))
	frag, ok := part.JSX.(*jsx.EJSXFragment)
	require.True(t, ok)
	require.Len(t, frag.Fragment.Children, 1)
	assert.IsType(t, &jsx.Element{}, frag.Fragment.Children[0])
}

func TestParseLiterals(t *testing.T) {
	el := rootElement(t, `<view a={-1} b={'it\'s'} c={[1, "x"]} d={null} e={true} f={`+"`t`"+`} g={a + b} />;`)
	require.Len(t, el.Attrs, 7)
	assert.Equal(t, &jsx.ENumber{Raw: "-1"}, el.Attrs[0].Value)
	assert.Equal(t, "it's", el.Attrs[1].Value.(*jsx.EString).Value)
	arr := el.Attrs[2].Value.(*jsx.EArray)
	assert.Len(t, arr.Items, 2)
	assert.Equal(t, &jsx.ENull{}, el.Attrs[3].Value)
	assert.Equal(t, &jsx.EBoolean{Value: true}, el.Attrs[4].Value)
	assert.Equal(t, &jsx.ETemplate{Value: "t", Raw: "`t`"}, el.Attrs[5].Value)
	assert.Equal(t, &jsx.ERaw{Parts: []jsx.RawPart{{Text: "a + b"}}}, el.Attrs[6].Value)
}

func TestParseOpaqueExpressionKeepsJSX(t *testing.T) {
	el := rootElement(t, `<view>{list.map((i) => <text>{i}</text>)}</view>;`)
	require.Len(t, el.Children, 1)
	raw, ok := el.Children[0].(*jsx.ExprContainer).Expr.(*jsx.ERaw)
	require.True(t, ok)
	require.Len(t, raw.Parts, 3)
	assert.Equal(t, "list.map((i) => ", raw.Parts[0].Text)
	assert.IsType(t, &jsx.EJSXElement{}, raw.Parts[1].JSX)
	assert.Equal(t, ")", raw.Parts[2].Text)
}

func TestParseSnapshotCall(t *testing.T) {
	mod := mustParse(t, "const s = __SNAPSHOT__(<view />);")
	part := onlyJSX(t, mod)
	assert.True(t, part.Snapshot)
	parts := mod.Items[0].(*jsx.SRaw).Parts
	assert.Equal(t, "const s = ", parts[0].Text)
	assert.Equal(t, ";", parts[2].Text)
}

func TestParseComments(t *testing.T) {
	mod := mustParse(t, "/**\n * @jsxCSSId 7\n */\n// line\nfoo();\n")
	require.Len(t, mod.Comments, 2)
	assert.True(t, mod.Comments[0].Block)
	assert.Equal(t, "*\n * @jsxCSSId 7\n ", mod.Comments[0].Text)
	assert.False(t, mod.Comments[1].Block)
	assert.Equal(t, " line", mod.Comments[1].Text)
	assert.Len(t, mod.Items, 3)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(context.Background(), "bad.jsx", []byte("const a = <view>;"))
	var syn *SyntaxError
	require.True(t, errors.As(err, &syn), "got %v", err)
	assert.Equal(t, "bad.jsx", syn.Filename)
	assert.Equal(t, 1, syn.Pos.Line)
}

func TestParseRejectsInvalidInput(t *testing.T) {
	_, err := Parse(context.Background(), "x.jsx", []byte{0xff, 0xfe})
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Parse(ctx, "x.jsx", []byte("foo();"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnescape(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{`plain`, "plain"},
		{`a\nb`, "a\nb"},
		{`\x41B\u{43}`, "ABC"},
		{`q\"\'`, `q"'`},
	} {
		got, ok := unescape(tc.in)
		assert.True(t, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
	_, ok := unescape(`\u12`)
	assert.False(t, ok)
}
