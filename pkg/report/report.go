// Package report aggregates decoded entries per player and renders
// analysis results as fixed-width text for the CLI. It never touches the
// save image itself.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sramdig/sramdig/pkg/detect"
	"github.com/sramdig/sramdig/pkg/region"
	"github.com/sramdig/sramdig/pkg/table"
	"github.com/sramdig/sramdig/pkg/timecode"
)

// PlayerTotal sums every decoded time recorded under one name.
type PlayerTotal struct {
	Name         string `json:"name"`
	Entries      int    `json:"entries"`
	Centiseconds int    `json:"centiseconds"`
	Total        string `json:"total"`
}

// PlayerTotals groups entries by name and sums their centiseconds,
// sorted by total ascending, then name for stable output.
func PlayerTotals(entries []table.Entry) []PlayerTotal {
	byName := make(map[string]*PlayerTotal)
	for _, e := range entries {
		pt, ok := byName[e.Name]
		if !ok {
			pt = &PlayerTotal{Name: e.Name}
			byName[e.Name] = pt
		}
		pt.Entries++
		pt.Centiseconds += e.Centiseconds
	}

	totals := make([]PlayerTotal, 0, len(byName))
	for _, pt := range byName {
		pt.Total = timecode.Format(pt.Centiseconds)
		totals = append(totals, *pt)
	}
	sort.Slice(totals, func(a, b int) bool {
		if totals[a].Centiseconds != totals[b].Centiseconds {
			return totals[a].Centiseconds < totals[b].Centiseconds
		}
		return totals[a].Name < totals[b].Name
	})
	return totals
}

// RenderEntries formats a decoded table, one record per line.
func RenderEntries(name string, entries []table.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d records)\n", name, len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "  %2d  %-3s  %s  (%d ticks)\n", e.Index+1, e.Name, e.Time, e.Ticks)
	}
	return b.String()
}

// RenderRegions formats a region summary, one region per line.
func RenderRegions(infos []region.Info) string {
	var b strings.Builder
	for _, info := range infos {
		kind := "data "
		if info.Blank {
			kind = "blank"
		}
		fmt.Fprintf(&b, "%s  %s  %5d bytes", info.Range, kind, info.Size)
		if len(info.Tags) > 0 {
			fmt.Fprintf(&b, "  <- %s", strings.Join(info.Tags, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderOverlays formats scan results row by row, with each candidate's
// offset, heuristic and decoded time.
func RenderOverlays(overlays []detect.RowOverlay) string {
	var b strings.Builder
	for _, row := range overlays {
		fmt.Fprintf(&b, "row %s\n", row.Row)
		for _, c := range row.Candidates {
			fmt.Fprintf(&b, "  0x%04X  %-13s  score %d  %s\n", c.Start, c.Kind, c.Score, c.Time)
		}
	}
	return b.String()
}

// RenderTotals formats per-player aggregates.
func RenderTotals(totals []PlayerTotal) string {
	var b strings.Builder
	for _, pt := range totals {
		fmt.Fprintf(&b, "%-3s  %2d entries  %s\n", pt.Name, pt.Entries, pt.Total)
	}
	return b.String()
}
