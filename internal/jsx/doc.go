// Package jsx defines the syntax tree the snapshot compiler consumes and
// produces.
//
// The tree is deliberately small. Only the parts of JavaScript the compiler
// must reason about are modeled structurally: JSX elements, fragments,
// attributes and children, plus the literal shapes (strings, numbers,
// templates without substitutions, arrays and object literals) that decide
// whether an attribute is static. Everything else is kept as opaque source
// text in an ERaw node, with any JSX found inside it split out so nested
// templates can still be compiled.
//
// The compiler also builds new code with the same node types (calls, member
// access, function expressions, statements), so the printer only has to know
// one tree.
//
// Sum types follow the sealed-interface pattern: E, S and Child each carry an
// unexported marker method, so only this package can add variants and every
// type switch in the compiler is over a closed set.
package jsx
