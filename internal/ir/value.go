package ir

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the values a manifest may hold.
// There is no float and no null: both break byte-stable hashing.
type Value interface {
	irValue()
}

// String is a string value.
type String string

// Int is an integer value.
type Int int64

// Bool is a boolean value.
type Bool bool

// Array is an ordered list of values.
type Array []Value

// Object maps keys to values. Iterate with SortedKeys for stable output.
type Object map[string]Value

func (String) irValue() {}
func (Int) irValue()    {}
func (Bool) irValue()   {}
func (Array) irValue()  {}
func (Object) irValue() {}

// Strings builds an Array of String values.
func Strings(ss ...string) Array {
	arr := make(Array, len(ss))
	for i, s := range ss {
		arr[i] = String(s)
	}
	return arr
}

// SortedKeys returns keys in RFC 8785 order: by UTF-16 code units, which
// differs from Go's byte-wise string order outside the BMP.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
