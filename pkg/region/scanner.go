// Package region partitions a save image into blank and non-blank byte
// ranges and relates them to known landmarks. All operations take an
// explicit bound; the mirror copy of the main chunk is excluded simply by
// never being inside any bound a caller passes.
package region

import "github.com/sramdig/sramdig/pkg/layout"

// Info describes one region for inspection tooling.
type Info struct {
	Range layout.Range `json:"range"`
	Size  int          `json:"size"`
	Blank bool         `json:"blank"`
	Tags  []string     `json:"tags,omitempty"`
}

// BlankRanges returns every maximal run of blank bytes inside bounds
// whose length is at least minLen, ordered and non-overlapping. Shorter
// runs are dropped entirely, never merged into a neighbour: a non-blank
// region may legitimately contain short blank sub-runs.
func BlankRanges(buf []byte, bounds layout.Range, blank byte, minLen int) []layout.Range {
	var ranges []layout.Range
	end := bounds.End
	if end > len(buf) {
		end = len(buf)
	}

	i := bounds.Start
	for i < end {
		if buf[i] != blank {
			i++
			continue
		}
		runStart := i
		for i < end && buf[i] == blank {
			i++
		}
		if i-runStart >= minLen {
			ranges = append(ranges, layout.Range{Start: runStart, End: i})
		}
	}
	return ranges
}

// Complement returns the ordered ranges covering every offset of bounds
// not inside one of the supplied blank ranges, filling the gaps between
// and around them. Together with the blank ranges it tiles bounds
// exactly. The blank ranges must be ordered and non-overlapping, as
// produced by BlankRanges.
func Complement(bounds layout.Range, blanks []layout.Range) []layout.Range {
	var ranges []layout.Range
	cursor := bounds.Start
	for _, b := range blanks {
		if b.Start > cursor {
			ranges = append(ranges, layout.Range{Start: cursor, End: b.Start})
		}
		cursor = b.End
	}
	if cursor < bounds.End {
		ranges = append(ranges, layout.Range{Start: cursor, End: bounds.End})
	}
	return ranges
}

// Tags returns the labels of every landmark whose offset lies inside r.
func Tags(r layout.Range, landmarks []layout.Landmark) []string {
	var tags []string
	for _, lm := range landmarks {
		if r.Contains(lm.Offset) {
			tags = append(tags, lm.Label)
		}
	}
	return tags
}

// Summary partitions bounds into blank and non-blank regions and tags
// each against the landmark list, in offset order.
func Summary(buf []byte, bounds layout.Range, blank byte, minLen int, landmarks []layout.Landmark) []Info {
	blanks := BlankRanges(buf, bounds, blank, minLen)
	others := Complement(bounds, blanks)

	infos := make([]Info, 0, len(blanks)+len(others))
	bi, oi := 0, 0
	for bi < len(blanks) || oi < len(others) {
		takeBlank := oi >= len(others) || (bi < len(blanks) && blanks[bi].Start < others[oi].Start)
		if takeBlank {
			r := blanks[bi]
			infos = append(infos, Info{Range: r, Size: r.Len(), Blank: true, Tags: Tags(r, landmarks)})
			bi++
		} else {
			r := others[oi]
			infos = append(infos, Info{Range: r, Size: r.Len(), Blank: false, Tags: Tags(r, landmarks)})
			oi++
		}
	}
	return infos
}
