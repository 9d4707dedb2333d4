package detect

import "sort"

// Span is a byte window with a confidence score. It is deliberately free
// of time-domain fields so the same selection can serve other table-shape
// discovery heuristics.
type Span struct {
	Start  int
	Length int
	Score  int
}

// End returns the exclusive end offset of the span.
func (s Span) End() int {
	return s.Start + s.Length
}

// intersects reports whether the two spans share at least one byte.
func (s Span) intersects(o Span) bool {
	return s.Start < o.End() && o.Start < s.End()
}

// SelectSpans picks a mutually non-overlapping subset of spans: sort by
// score descending then start descending, then walk the sorted list
// accepting any span that does not intersect an already accepted one.
//
// This is a greedy approximation to weighted interval scheduling, not an
// exact optimum; near-ties can produce a globally suboptimal covering.
// The exact ordering is kept for overlay-output compatibility. Accepted
// indices into the input slice are returned in acceptance order.
func SelectSpans(spans []Span) []int {
	order := make([]int, len(spans))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		sa, sb := spans[order[a]], spans[order[b]]
		if sa.Score != sb.Score {
			return sa.Score > sb.Score
		}
		return sa.Start > sb.Start
	})

	var accepted []int
	var taken []Span
	for _, idx := range order {
		s := spans[idx]
		clear := true
		for _, t := range taken {
			if s.intersects(t) {
				clear = false
				break
			}
		}
		if clear {
			accepted = append(accepted, idx)
			taken = append(taken, s)
		}
	}
	return accepted
}
