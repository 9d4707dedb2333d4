package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sramdig/sramdig/pkg/layout"
)

// filler builds an n-byte buffer of 0xFF, the save image's idle filler,
// so nothing fires except what a test writes in.
func filler(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = 0xFF
	}
	return buf
}

// putTicks writes a 24-bit little-endian tick count at off.
func putTicks(buf []byte, off int, ticks uint32) {
	buf[off] = byte(ticks)
	buf[off+1] = byte(ticks >> 8)
	buf[off+2] = byte(ticks >> 16)
}

func TestScan_DuplicateTriplet(t *testing.T) {
	buf := filler(64)
	// "01:02.03" = 6203 cs = 372180 ticks, stored twice back to back.
	putTicks(buf, 10, 372180)
	putTicks(buf, 13, 372180)

	overlays := Scan(buf, layout.Range{Start: 0, End: 64}, DefaultOptions())
	require.Len(t, overlays, 1)
	require.Len(t, overlays[0].Candidates, 1)

	c := overlays[0].Candidates[0]
	assert.Equal(t, 10, c.Start)
	assert.Equal(t, WindowLength, c.Length)
	assert.Equal(t, KindDuplicate, c.Kind)
	assert.Equal(t, 1, c.Score)
	assert.Equal(t, 6203, c.Centiseconds)
	assert.Equal(t, "01:02.03", c.Time)
}

func TestScan_DuplicateOutsidePlausibleBand(t *testing.T) {
	buf := filler(64)
	// 2 seconds: under the 3-second floor.
	putTicks(buf, 10, 200*60)
	putTicks(buf, 13, 200*60)
	// 11 minutes: over the 10-minute ceiling.
	putTicks(buf, 40, 66000*60)
	putTicks(buf, 43, 66000*60)

	overlays := Scan(buf, layout.Range{Start: 0, End: 64}, DefaultOptions())
	assert.Empty(t, overlays)
}

func TestScan_RecordLayout(t *testing.T) {
	buf := filler(64)
	// msb, three zero padding bytes, lsb, mid for 372180 ticks.
	buf[10] = 0x05
	buf[11], buf[12], buf[13] = 0, 0, 0
	buf[14] = 0xD4
	buf[15] = 0xAD

	overlays := Scan(buf, layout.Range{Start: 0, End: 64}, DefaultOptions())
	require.Len(t, overlays, 1)
	require.Len(t, overlays[0].Candidates, 1)

	c := overlays[0].Candidates[0]
	assert.Equal(t, 10, c.Start)
	assert.Equal(t, KindRecordLayout, c.Kind)
	assert.Equal(t, 2, c.Score)
	assert.Equal(t, 6203, c.Centiseconds)
}

func TestScan_RecordLayoutRequiresZeroGap(t *testing.T) {
	buf := filler(64)
	buf[10] = 0x05
	buf[11], buf[12], buf[13] = 0, 1, 0 // gap not all zero
	buf[14] = 0xD4
	buf[15] = 0xAD

	overlays := Scan(buf, layout.Range{Start: 0, End: 64}, DefaultOptions())
	assert.Empty(t, overlays)
}

func TestScan_RecordLayoutBeatsOverlappingDuplicate(t *testing.T) {
	buf := filler(64)
	// Record-shaped window at [10, 16).
	buf[10] = 0x05
	buf[11], buf[12], buf[13] = 0, 0, 0
	buf[14] = 0xD4
	buf[15] = 0xAD
	// Duplicate triplets at [14, 20) overlapping its tail: 0x00ADD4
	// ticks twice (741 cs, plausible).
	buf[16] = 0x00
	buf[17], buf[18], buf[19] = 0xD4, 0xAD, 0x00

	overlays := Scan(buf, layout.Range{Start: 0, End: 64}, DefaultOptions())
	require.Len(t, overlays, 1)
	require.Len(t, overlays[0].Candidates, 1)
	assert.Equal(t, KindRecordLayout, overlays[0].Candidates[0].Kind)
	assert.Equal(t, 10, overlays[0].Candidates[0].Start)
}

func TestScan_SelectedCandidatesNeverOverlap(t *testing.T) {
	buf := filler(128)
	// A dense cluster of duplicates at 2-byte spacing.
	for _, off := range []int{4, 6, 8, 10, 12} {
		putTicks(buf, off, 600*60)
		putTicks(buf, off+3, 600*60)
	}

	overlays := Scan(buf, layout.Range{Start: 0, End: 128}, DefaultOptions())
	for _, row := range overlays {
		for i, a := range row.Candidates {
			for _, b := range row.Candidates[i+1:] {
				ra := layout.Range{Start: a.Start, End: a.Start + a.Length}
				rb := layout.Range{Start: b.Start, End: b.Start + b.Length}
				assert.False(t, ra.Overlaps(rb), "selected candidates %v and %v overlap", a, b)
			}
		}
	}
}

func TestScan_RowsAreIndependent(t *testing.T) {
	buf := filler(96)
	putTicks(buf, 42, 372180)
	putTicks(buf, 45, 372180)

	overlays := Scan(buf, layout.Range{Start: 0, End: 96}, DefaultOptions())
	require.Len(t, overlays, 1)
	assert.Equal(t, layout.Range{Start: 32, End: 64}, overlays[0].Row)
	assert.Equal(t, 42, overlays[0].Candidates[0].Start)
}

func TestScan_WindowNeverCrossesRowEnd(t *testing.T) {
	buf := filler(64)
	// A duplicate straddling the row boundary at 32 is never windowed.
	putTicks(buf, 28, 372180)
	putTicks(buf, 31, 372180)

	overlays := Scan(buf, layout.Range{Start: 0, End: 64}, DefaultOptions())
	assert.Empty(t, overlays)
}

func TestScan_WindowNeverPassesRangeEnd(t *testing.T) {
	buf := filler(64)
	putTicks(buf, 12, 372180)
	putTicks(buf, 15, 372180)

	// The scanned range ends at 16; the window at 12 would need 18.
	overlays := Scan(buf, layout.Range{Start: 0, End: 16}, DefaultOptions())
	assert.Empty(t, overlays)
}

func TestScan_EmptyAndInvertedRanges(t *testing.T) {
	buf := filler(64)
	putTicks(buf, 10, 372180)
	putTicks(buf, 13, 372180)

	assert.Empty(t, Scan(buf, layout.Range{Start: 5, End: 5}, DefaultOptions()))
	assert.Empty(t, Scan(buf, layout.Range{Start: 40, End: 8}, DefaultOptions()))
}

func TestScan_CustomPlausibilityBand(t *testing.T) {
	buf := filler(64)
	putTicks(buf, 10, 200*60) // 2 seconds
	putTicks(buf, 13, 200*60)

	opts := Options{RowWidth: 32, MinCentis: 100, MaxCentis: 60000}
	overlays := Scan(buf, layout.Range{Start: 0, End: 64}, opts)
	require.Len(t, overlays, 1)
	assert.Equal(t, 200, overlays[0].Candidates[0].Centiseconds)
}
