package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/snapc/internal/diag"
	"github.com/roach88/snapc/internal/jsx"
)

func TestPropertyIDs(t *testing.T) {
	// Ids are a wire contract with the runtime.
	cases := map[string]int{
		"top":                            1,
		"color":                          22,
		"display":                        24,
		"height":                         26,
		"width":                          27,
		"flex":                           49,
		"flex-shrink":                    51,
		"flex-direction":                 53,
		"-x-auto-font-size-preset-sizes": 198,
	}
	for name, want := range cases {
		id, ok := ID(name)
		require.True(t, ok, name)
		assert.Equal(t, want, id, name)

		back, ok := Name(want)
		require.True(t, ok)
		assert.Equal(t, name, back)
	}
	assert.Equal(t, 198, Count())

	_, ok := Name(0)
	assert.False(t, ok)
	_, ok = ID("not-a-property")
	assert.False(t, ok)

	def, ok := DefaultValue(22)
	require.True(t, ok)
	assert.Equal(t, "black", def)
}

func TestPropertyNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range properties {
		assert.False(t, seen[p.name], "duplicate %s", p.name)
		seen[p.name] = true
	}
}

func TestKebab(t *testing.T) {
	assert.Equal(t, "flex-direction", Kebab("flexDirection"))
	assert.Equal(t, "flex-shrink", Kebab("flex-shrink"))
	assert.Equal(t, "background-color", Kebab("backgroundColor"))
	assert.Equal(t, "border-top-left-radius", Kebab("borderTopLeftRadius"))
	assert.Equal(t, "width", Kebab("width"))
}

func obj(props ...jsx.Property) *jsx.EObject {
	return &jsx.EObject{Props: props}
}

func kv(key string, v jsx.E) jsx.Property {
	return jsx.Property{Kind: jsx.PropKeyValue, Key: key, Value: v}
}

func TestDecompose(t *testing.T) {
	c := &diag.Collector{}
	decls, ok := Decompose(obj(
		kv("width", jsx.Str("200px")),
		kv("height", jsx.Id("h")),
		jsx.Property{Kind: jsx.PropShorthand, Value: jsx.Id("flex")},
		kv("flexDirection", jsx.Str("column")),
		jsx.Property{Kind: jsx.PropKeyValue, Key: "51", NumericKey: true, Value: jsx.Num(1)},
	), jsx.Pos{}, c)
	require.True(t, ok)

	ids := make([]int, len(decls))
	for i, d := range decls {
		ids[i] = d.ID
	}
	assert.Equal(t, []int{27, 26, 49, 53, 51}, ids)
	assert.Empty(t, c.Diagnostics())
}

func TestDecomposeFailures(t *testing.T) {
	tests := []struct {
		name     string
		obj      *jsx.EObject
		wantWarn bool
	}{
		{"unknown key", obj(kv("width", jsx.Str("1px")), kv("invalid", jsx.Id("x"))), true},
		{"spread", obj(kv("width", jsx.Str("1px")), jsx.Property{Kind: jsx.PropSpread, Value: jsx.Id("o")}), false},
		{"computed", obj(jsx.Property{Kind: jsx.PropComputed, KeyExpr: jsx.Id("k"), Value: jsx.Id("v")}), false},
		{"empty", obj(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &diag.Collector{}
			_, ok := Decompose(tt.obj, jsx.Pos{}, c)
			assert.False(t, ok)
			if tt.wantWarn {
				assert.Equal(t, []string{diag.WarnUnknownCSS}, c.Codes())
			} else {
				assert.Empty(t, c.Codes())
			}
		})
	}
}

func TestSplit(t *testing.T) {
	decls := []Decl{
		{ID: 22, Value: jsx.Str("red")},
		{ID: 27, Value: jsx.Id("w")},
		{ID: 26, Value: jsx.Str("10px")},
		{ID: 27, Value: jsx.Str("5px")},
	}
	static, dynamic := Split(decls)
	require.Len(t, static, 2)
	assert.Equal(t, 22, static[0].ID)
	assert.Equal(t, 26, static[1].ID)
	// The constant width follows a dynamic width and stays dynamic.
	require.Len(t, dynamic, 2)
	assert.Equal(t, 27, dynamic[0].ID)
	assert.Equal(t, 27, dynamic[1].ID)
}

func TestInlineString(t *testing.T) {
	c := &diag.Collector{}

	s, ok := InlineString(obj(
		kv("backgroundColor", jsx.Str("red")),
		kv("flexShrink", &jsx.ENumber{Raw: "1"}),
		kv("hidden", &jsx.EBoolean{Value: true}),
	), jsx.Pos{}, c)
	require.True(t, ok)
	assert.Equal(t, "background-color:red;flex-shrink:1", s)

	s, ok = InlineString(&jsx.ETemplate{Value: "color: red;"}, jsx.Pos{}, c)
	require.True(t, ok)
	assert.Equal(t, "color: red;", s)
	assert.Empty(t, c.Codes())

	_, ok = InlineString(&jsx.ENumber{Raw: "1"}, jsx.Pos{}, c)
	assert.False(t, ok)
	assert.Equal(t, []string{diag.WarnStyleLiteral}, c.Codes())
}
