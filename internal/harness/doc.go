// Package harness runs end-to-end compile scenarios.
//
// A scenario names a source file, the compiler options to use and a list of
// assertions over the result. The harness parses the source, transforms it,
// prints the module and evaluates each assertion against the printed output,
// the snapshot manifests and the reported diagnostics.
//
// # Scenario Format
//
//	name: dynamic_children
//	description: "Text content is a children slot"
//	filename: Card.jsx
//	options:
//	  target: LEPUS
//	source: |
//	  const Card = ({ title }) => <view><text>{title}</text></view>;
//	assertions:
//	  - type: snapshot_count
//	    count: 1
//	  - type: part_kinds
//	    snapshot: 0
//	    kinds: [children]
//
// Either source or source_file must be set. source_file is resolved
// relative to the scenario file.
//
// # Assertion Types
//
//   - output_contains / output_not_contains: substring of the printed module
//   - snapshot_count: number of compiled snapshots
//   - part_kinds: part kinds of one snapshot, in order
//   - slot_kinds: slot descriptor kinds of one snapshot, in order
//   - diagnostic: a diagnostic with the code was reported (count optional)
//   - no_diagnostics: nothing was reported
//
// # Golden Files
//
// RunWithGolden compares the printed module against
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
