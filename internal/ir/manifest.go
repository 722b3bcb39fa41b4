package ir

// Manifest is the stable, serializable summary of one compiled snapshot.
// The CLI prints it, the store persists it and ManifestHash detects when a
// snapshot's shape or generated code changed between builds.
type Manifest struct {
	UID      string       `json:"uid"`
	Filename string       `json:"filename"`
	Line     int          `json:"line"`
	Target   string       `json:"target"`
	Elements int          `json:"elements"`
	Parts    []PartRecord `json:"parts"`
	Slots    []SlotRecord `json:"slots"`
	CSSID    *int         `json:"css_id,omitempty"`
	HasKey   bool         `json:"has_key"`
	// Code is the printed creator and updaters.
	Code string `json:"code,omitempty"`
	Hash string `json:"hash,omitempty"`
}

// PartRecord describes one dynamic part. Value is the part's index in the
// values array, or -1 for structural parts, which carry no value.
type PartRecord struct {
	Kind    string `json:"kind"`
	Element int    `json:"element"`
	Value   int    `json:"value"`
}

// SlotRecord is one entry of the slot descriptor.
type SlotRecord struct {
	Kind    string `json:"kind"`
	Element int    `json:"element"`
}

// Value returns the hashed view of m: everything except Filename, Line and
// Hash itself.
func (m Manifest) Value() Object {
	parts := make(Array, len(m.Parts))
	for i, p := range m.Parts {
		parts[i] = Object{
			"kind":    String(p.Kind),
			"element": Int(p.Element),
			"value":   Int(p.Value),
		}
	}
	slots := make(Array, len(m.Slots))
	for i, s := range m.Slots {
		slots[i] = Object{
			"kind":    String(s.Kind),
			"element": Int(s.Element),
		}
	}
	obj := Object{
		"version":  String(ManifestVersion),
		"uid":      String(m.UID),
		"target":   String(m.Target),
		"elements": Int(m.Elements),
		"parts":    parts,
		"slots":    slots,
		"has_key":  Bool(m.HasKey),
		"code":     String(m.Code),
	}
	if m.CSSID != nil {
		obj["css_id"] = Int(*m.CSSID)
	}
	return obj
}

// Seal sets m.Hash.
func (m *Manifest) Seal() error {
	h, err := ManifestHash(*m)
	if err != nil {
		return err
	}
	m.Hash = h
	return nil
}
