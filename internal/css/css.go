// Package css resolves inline style declarations to the numeric CSS property
// ids the runtime understands, and folds constant style values into inline
// style strings.
package css

import "strings"

type property struct {
	name         string
	defaultValue string
}

var byName = func() map[string]int {
	m := make(map[string]int, len(properties))
	for i, p := range properties {
		m[p.name] = i + 1
	}
	return m
}()

// Count returns the number of known properties. Valid ids are 1..Count().
func Count() int {
	return len(properties)
}

// ID returns the id of a kebab-case property name.
func ID(name string) (int, bool) {
	id, ok := byName[name]
	return id, ok
}

// Name returns the kebab-case name for id.
func Name(id int) (string, bool) {
	if id < 1 || id > len(properties) {
		return "", false
	}
	return properties[id-1].name, true
}

// DefaultValue returns the initial value the runtime assumes for id.
func DefaultValue(id int) (string, bool) {
	if id < 1 || id > len(properties) {
		return "", false
	}
	return properties[id-1].defaultValue, true
}

// Kebab converts a camelCase style key to kebab-case. A dash is inserted
// before every upper-case letter that follows a lower-case letter or digit.
// Keys already in kebab-case pass through unchanged.
func Kebab(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				if p := key[i-1]; (p >= 'a' && p <= 'z') || (p >= '0' && p <= '9') {
					b.WriteByte('-')
				}
			}
			b.WriteByte(c + ('a' - 'A'))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
