// Package layout describes the geometry of a save image: which byte
// ranges hold data, where the known tables and landmarks sit, and how the
// fields of a record are arranged. Everything here is plain configuration
// passed explicitly into the decoding and scanning packages; nothing is
// process-wide state, so alternate save layouts substitute without code
// changes.
package layout

import "fmt"

// Range is a half-open byte span [Start, End). Start <= End always holds
// for ranges produced by this module.
type Range struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether offset lies inside the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Overlaps reports whether the two ranges share at least one offset.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[0x%04X, 0x%04X)", r.Start, r.End)
}

// Landmark is a known byte offset used to anchor region inspection. It
// tags and bounds regions; decoding never depends on it.
type Landmark struct {
	Offset int    `yaml:"offset" json:"offset"`
	Label  string `yaml:"label" json:"label"`
}

// FieldLayout gives the positions, within one record, of the three name
// bytes and the three time bytes. Time positions are ordered lsb, mid,
// msb. The positions differ between table families but the decode
// algorithm is identical given a layout.
type FieldLayout struct {
	Name [3]int `yaml:"name" json:"name"`
	Time [3]int `yaml:"time" json:"time"`
}

// Max returns the largest byte position the layout touches, for bounds
// validation before any record is read.
func (f FieldLayout) Max() int {
	max := 0
	for _, p := range f.Name {
		if p > max {
			max = p
		}
	}
	for _, p := range f.Time {
		if p > max {
			max = p
		}
	}
	return max
}

// TableSpec fully determines a decodable table: where it starts, how far
// apart its records sit, how many there are, and how each record's fields
// are laid out.
type TableSpec struct {
	Name   string      `yaml:"name" json:"name"`
	Base   int         `yaml:"base" json:"base"`
	Stride int         `yaml:"stride" json:"stride"`
	Count  int         `yaml:"count" json:"count"`
	Fields FieldLayout `yaml:"fields" json:"fields"`
}

// Extent returns the highest byte offset the spec will read, plus one.
func (s TableSpec) Extent() int {
	return s.Base + (s.Count-1)*s.Stride + s.Fields.Max() + 1
}

// RangeError reports a table specification whose byte accesses would
// exceed the buffer. It signals a wrong structural hypothesis about the
// save layout, so decoding fails fast instead of substituting defaults.
type RangeError struct {
	Table  string
	Extent int
	Have   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("table %q needs %d bytes, buffer has %d", e.Table, e.Extent, e.Have)
}
