// Package compiler turns JSX element trees into snapshots.
//
// A snapshot splits one intrinsic JSX root into a creator function, run once
// per instance to build the element tree, and an ordered list of dynamic
// parts patched at runtime. Compilation runs in three stages per root:
//
//   - the marker groups dynamic children into slots (marker.go)
//   - the extractor walks the marked tree, emitting creation statements and
//     collecting dynamic parts in document order (extract.go)
//   - the emitter builds updater closures for the target, defines the
//     snapshot at module level and substitutes a reference element for the
//     root (emit.go)
//
// Element indices number the creator's returned handles; expression indices
// number the values array of the reference element. Both are assigned in
// document order, so identical input always yields identical output.
package compiler
