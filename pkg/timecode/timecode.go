// Package timecode converts the save image's raw 24-bit tick counters
// to and from the "MM:SS.cc" race-time notation the game displays.
//
// The hardware stores elapsed time as ticks at 6000 Hz; 60 ticks make one
// centisecond. The tick-to-centisecond derivation is lossy (the sub-60
// remainder is discarded), but the textual form round-trips exactly back
// to the same centisecond value.
package timecode

import (
	"fmt"
	"regexp"
)

// TicksPerCentisecond is the hardware timer resolution.
const TicksPerCentisecond = 60

var timePattern = regexp.MustCompile(`^(\d\d):(\d\d)\.(\d\d)$`)

// FormatError reports a time string that does not match the exact
// "MM:SS.cc" pattern.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed time string %q: want MM:SS.cc", e.Input)
}

// Ticks assembles a 24-bit little-endian tick count from its three bytes.
func Ticks(lsb, mid, msb byte) uint32 {
	return uint32(lsb) | uint32(mid)<<8 | uint32(msb)<<16
}

// Centiseconds converts a tick count to centiseconds, discarding the
// sub-centisecond remainder.
func Centiseconds(ticks uint32) int {
	return int(ticks / TicksPerCentisecond)
}

// Format renders a centisecond count as "MM:SS.cc". Each field is
// zero-padded to two digits. Minutes stay below 100 for any time the game
// can record; values beyond that widen the minute field rather than wrap.
func Format(cs int) string {
	minutes := cs / 6000
	seconds := (cs % 6000) / 100
	hundredths := cs % 100
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, hundredths)
}

// Parse converts an exact "MM:SS.cc" string back to centiseconds. Any
// deviation from the two-digit:two-digit.two-digit pattern returns a
// *FormatError.
func Parse(s string) (int, error) {
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &FormatError{Input: s}
	}
	minutes := digits2(m[1])
	seconds := digits2(m[2])
	hundredths := digits2(m[3])
	return minutes*6000 + seconds*100 + hundredths, nil
}

// digits2 converts an already-validated two-digit string.
func digits2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}
