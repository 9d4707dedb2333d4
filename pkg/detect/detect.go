// Package detect scans unmapped stretches of a save image for byte
// windows that plausibly encode a race time. Its findings are hypotheses
// for display and manual verification, never authoritative decodes, and
// scanning an implausible or empty range simply yields no candidates.
package detect

import (
	"github.com/sramdig/sramdig/pkg/layout"
	"github.com/sramdig/sramdig/pkg/timecode"
)

// WindowLength is the size of every candidate window: two 3-byte tick
// triplets, or one record-shaped msb/gap/lsb/mid group.
const WindowLength = 6

// Kind names the heuristic that produced a candidate.
type Kind string

const (
	// KindDuplicate marks two adjacent triplets decoding to the same
	// centisecond value.
	KindDuplicate Kind = "duplicate"
	// KindRecordLayout marks a window matching the confirmed record
	// shape: msb, three zero padding bytes, lsb, mid.
	KindRecordLayout Kind = "record-layout"
)

// Candidate is one hypothesized time window.
type Candidate struct {
	Start        int    `json:"start"`
	Length       int    `json:"length"`
	Centiseconds int    `json:"centiseconds"`
	Time         string `json:"time"`
	Kind         Kind   `json:"kind"`
	Score        int    `json:"score"`
}

// RowOverlay is the non-overlapping candidate set selected for one
// scanned row.
type RowOverlay struct {
	Row        layout.Range `json:"row"`
	Candidates []Candidate  `json:"candidates"`
}

// Options tune the scan. The plausibility band rejects tick values too
// short or too long to be a recorded lap or race time.
type Options struct {
	RowWidth  int // horizontal slice width, conventionally 32
	MinCentis int // inclusive lower bound of plausible times
	MaxCentis int // inclusive upper bound of plausible times
}

// DefaultOptions covers roughly 3 seconds to 10 minutes on 32-byte rows.
func DefaultOptions() Options {
	return Options{RowWidth: 32, MinCentis: 300, MaxCentis: 60000}
}

func (o Options) plausible(cs int) bool {
	return cs >= o.MinCentis && cs <= o.MaxCentis
}

// Scan walks bounds row by row, collects every candidate both heuristics
// produce, and selects a non-overlapping subset per row. Rows with no
// surviving candidate are omitted. An empty or inverted range yields an
// empty result; Scan never fails.
func Scan(buf []byte, bounds layout.Range, opts Options) []RowOverlay {
	if opts.RowWidth <= 0 {
		opts.RowWidth = DefaultOptions().RowWidth
	}
	end := bounds.End
	if end > len(buf) {
		end = len(buf)
	}

	var overlays []RowOverlay
	for rowStart := bounds.Start; rowStart < end; rowStart += opts.RowWidth {
		rowEnd := rowStart + opts.RowWidth
		if rowEnd > end {
			rowEnd = end
		}
		row := layout.Range{Start: rowStart, End: rowEnd}

		cands := scanRow(buf, row, opts)
		if len(cands) == 0 {
			continue
		}
		overlays = append(overlays, RowOverlay{Row: row, Candidates: selectRow(cands)})
	}
	return overlays
}

// scanRow collects every firing candidate in the row, in offset order.
// Both heuristics may fire at overlapping offsets; selection happens
// afterwards over the full set.
func scanRow(buf []byte, row layout.Range, opts Options) []Candidate {
	var cands []Candidate
	for i := row.Start; i+WindowLength <= row.End; i++ {
		if c, ok := duplicateTriplet(buf, i, opts); ok {
			cands = append(cands, c)
		}
		if c, ok := recordLayout(buf, i, opts); ok {
			cands = append(cands, c)
		}
	}
	return cands
}

// duplicateTriplet fires when bytes [i..i+2] and [i+3..i+5], each decoded
// as an independent 24-bit little-endian tick count, yield the same
// plausible centisecond value. The game writes a confirmed time twice in
// several known structures, so repetition is weak evidence of one.
func duplicateTriplet(buf []byte, i int, opts Options) (Candidate, bool) {
	a := timecode.Centiseconds(timecode.Ticks(buf[i], buf[i+1], buf[i+2]))
	b := timecode.Centiseconds(timecode.Ticks(buf[i+3], buf[i+4], buf[i+5]))
	if a != b || !opts.plausible(a) {
		return Candidate{}, false
	}
	return Candidate{
		Start:        i,
		Length:       WindowLength,
		Centiseconds: a,
		Time:         timecode.Format(a),
		Kind:         KindDuplicate,
		Score:        1,
	}, true
}

// recordLayout fires when the window matches the confirmed record shape:
// byte i as msb, an all-zero 3-byte gap, then lsb and mid. A matching gap
// plus a plausible value is stronger evidence than mere repetition, hence
// the higher score.
func recordLayout(buf []byte, i int, opts Options) (Candidate, bool) {
	if buf[i+1] != 0 || buf[i+2] != 0 || buf[i+3] != 0 {
		return Candidate{}, false
	}
	cs := timecode.Centiseconds(timecode.Ticks(buf[i+4], buf[i+5], buf[i]))
	if !opts.plausible(cs) {
		return Candidate{}, false
	}
	return Candidate{
		Start:        i,
		Length:       WindowLength,
		Centiseconds: cs,
		Time:         timecode.Format(cs),
		Kind:         KindRecordLayout,
		Score:        2,
	}, true
}

// selectRow reduces a row's candidates to a non-overlapping overlay via
// the generic span picker, preserving acceptance order.
func selectRow(cands []Candidate) []Candidate {
	spans := make([]Span, len(cands))
	for i, c := range cands {
		spans[i] = Span{Start: c.Start, Length: c.Length, Score: c.Score}
	}

	accepted := SelectSpans(spans)
	out := make([]Candidate, 0, len(accepted))
	for _, idx := range accepted {
		out = append(out, cands[idx])
	}
	return out
}
