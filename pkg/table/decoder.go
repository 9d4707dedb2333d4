// Package table decodes fixed-stride record tables from a save image.
// A table is fully described by a layout.TableSpec; the decoder itself
// knows nothing about which game or table family it is reading.
package table

import (
	"github.com/sramdig/sramdig/pkg/layout"
	"github.com/sramdig/sramdig/pkg/timecode"
)

// placeholder replaces name bytes outside the printable ASCII range.
const placeholder = '.'

// Entry is one decoded record: the 3-character name, the raw tick count
// and its derived forms, plus the field bytes as read for verification.
type Entry struct {
	Index        int     `json:"index"`
	Name         string  `json:"name"`
	Ticks        uint32  `json:"ticks"`
	Centiseconds int     `json:"centiseconds"`
	Time         string  `json:"time"`
	Raw          [6]byte `json:"raw"`
}

// Decode extracts spec.Count records from buf. The full extent of the
// table is validated before any byte is read, so a malformed spec never
// yields a partial decode: the error is a *layout.RangeError and the
// entry slice is nil. Identical inputs always produce identical output.
func Decode(buf []byte, spec layout.TableSpec) ([]Entry, error) {
	if spec.Extent() > len(buf) {
		return nil, &layout.RangeError{Table: spec.Name, Extent: spec.Extent(), Have: len(buf)}
	}

	entries := make([]Entry, 0, spec.Count)
	for k := 0; k < spec.Count; k++ {
		base := spec.Base + k*spec.Stride

		var raw [6]byte
		name := make([]byte, 3)
		for i, pos := range spec.Fields.Name {
			b := buf[base+pos]
			raw[i] = b
			name[i] = printable(b)
		}

		var tb [3]byte
		for i, pos := range spec.Fields.Time {
			tb[i] = buf[base+pos]
			raw[3+i] = tb[i]
		}

		ticks := timecode.Ticks(tb[0], tb[1], tb[2])
		cs := timecode.Centiseconds(ticks)
		entries = append(entries, Entry{
			Index:        k,
			Name:         string(name),
			Ticks:        ticks,
			Centiseconds: cs,
			Time:         timecode.Format(cs),
			Raw:          raw,
		})
	}
	return entries, nil
}

// DecodeAll decodes every spec in order, keyed by table name. Any single
// failure aborts the whole decode.
func DecodeAll(buf []byte, specs []layout.TableSpec) (map[string][]Entry, error) {
	out := make(map[string][]Entry, len(specs))
	for _, spec := range specs {
		entries, err := Decode(buf, spec)
		if err != nil {
			return nil, err
		}
		out[spec.Name] = entries
	}
	return out, nil
}

func printable(b byte) byte {
	if b >= 32 && b <= 126 {
		return b
	}
	return placeholder
}
