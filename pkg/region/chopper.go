package region

import "github.com/sramdig/sramdig/pkg/layout"

// NextBlankRun returns the first index at or after from that begins a run
// of at least minLen consecutive blank bytes, staying inside bounds. The
// second result is false if bounds end before such a run starts.
func NextBlankRun(buf []byte, bounds layout.Range, from int, blank byte, minLen int) (int, bool) {
	end := bounds.End
	if end > len(buf) {
		end = len(buf)
	}
	if from < bounds.Start {
		from = bounds.Start
	}

	i := from
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
			return runStart, true
		}
	}
	return 0, false
}

// LandmarkRegion bounds an inspection window forward from a landmark: it
// runs from the landmark's offset until the next sufficiently long run of
// filler bytes, or to the end of bounds if no such run interrupts it.
// This keeps the window from overrunning into an adjacent table.
func LandmarkRegion(buf []byte, bounds layout.Range, lm layout.Landmark, blank byte, minLen int) layout.Range {
	end := bounds.End
	if runStart, ok := NextBlankRun(buf, bounds, lm.Offset, blank, minLen); ok {
		end = runStart
	}
	return layout.Range{Start: lm.Offset, End: end}
}
