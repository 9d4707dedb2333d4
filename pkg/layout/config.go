package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Layout is the full geometry of one save-image format. MainChunk bounds
// every scan and decode; the byte-identical mirror at MirrorOffset must
// never be scanned, which every consumer enforces by taking MainChunk (or
// a sub-range of it) as an explicit bound.
type Layout struct {
	MainChunk    Range       `yaml:"main_chunk"`
	MirrorOffset int         `yaml:"mirror_offset"`
	BlankByte    byte        `yaml:"blank_byte"`
	MinBlankRun  int         `yaml:"min_blank_run"`
	RowWidth     int         `yaml:"row_width"`
	Landmarks    []Landmark  `yaml:"landmarks"`
	Tables       []TableSpec `yaml:"tables"`
}

// Table returns the named table spec.
func (l *Layout) Table(name string) (TableSpec, bool) {
	for _, t := range l.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableSpec{}, false
}

// TableNames returns the configured table names in declaration order.
func (l *Layout) TableNames() []string {
	names := make([]string, 0, len(l.Tables))
	for _, t := range l.Tables {
		names = append(names, t.Name)
	}
	return names
}

// leaderboard-family records keep the name bytes low and the time bytes
// in the back half; the practice family shifts both by the same deltas.
var (
	leaderFields   = FieldLayout{Name: [3]int{1, 0, 5}, Time: [3]int{20, 21, 16}}
	practiceFields = FieldLayout{Name: [3]int{11, 10, 15}, Time: [3]int{30, 31, 26}}
)

// Default returns the known layout of the supported game's save image:
// a 0x38C0-byte main chunk starting at 0x0147, mirrored wholesale at
// +0x10000, holding a top-16 championship leaderboard, four per-track
// top-3 tables and four per-track top-8 practice tables, all on a 32-byte
// record stride.
func Default() *Layout {
	return &Layout{
		MainChunk:    Range{Start: 0x0147, End: 0x38C0},
		MirrorOffset: 0x10000,
		BlankByte:    0xFF,
		MinBlankRun:  8,
		RowWidth:     32,
		Landmarks: []Landmark{
			{Offset: 0x0147, Label: "championship top 16"},
			{Offset: 0x0747, Label: "track 1 top 3"},
			{Offset: 0x07A7, Label: "track 2 top 3"},
			{Offset: 0x0807, Label: "track 3 top 3"},
			{Offset: 0x0867, Label: "track 4 top 3"},
		},
		Tables: []TableSpec{
			{Name: "championship", Base: 0x0147, Stride: 32, Count: 16, Fields: leaderFields},
			{Name: "track1-top3", Base: 0x0747, Stride: 32, Count: 3, Fields: leaderFields},
			{Name: "track2-top3", Base: 0x07A7, Stride: 32, Count: 3, Fields: leaderFields},
			{Name: "track3-top3", Base: 0x0807, Stride: 32, Count: 3, Fields: leaderFields},
			{Name: "track4-top3", Base: 0x0867, Stride: 32, Count: 3, Fields: leaderFields},
			{Name: "track1-practice", Base: 0x2A47, Stride: 32, Count: 8, Fields: practiceFields},
			{Name: "track2-practice", Base: 0x2B47, Stride: 32, Count: 8, Fields: practiceFields},
			{Name: "track3-practice", Base: 0x2C47, Stride: 32, Count: 8, Fields: practiceFields},
			{Name: "track4-practice", Base: 0x2D47, Stride: 32, Count: 8, Fields: practiceFields},
		},
	}
}

// Load reads a layout from the specified yaml file.
func Load(path string) (*Layout, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("layout file does not exist: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}

	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse layout file: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	return &l, nil
}

// Save writes the layout to the specified yaml file, creating the parent
// directory if needed.
func Save(l *Layout, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}

	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout file: %w", err)
	}

	return nil
}

// Validate checks the structural sanity of a loaded layout.
func (l *Layout) Validate() error {
	if l.MainChunk.Start < 0 || l.MainChunk.End < l.MainChunk.Start {
		return fmt.Errorf("invalid main chunk %s", l.MainChunk)
	}
	if l.MirrorOffset != 0 && l.MirrorOffset < l.MainChunk.End {
		return fmt.Errorf("mirror offset 0x%X overlaps main chunk %s", l.MirrorOffset, l.MainChunk)
	}
	for _, t := range l.Tables {
		if t.Stride <= 0 || t.Count <= 0 {
			return fmt.Errorf("table %q: stride and count must be positive", t.Name)
		}
		if t.Base < l.MainChunk.Start || t.Extent() > l.MainChunk.End {
			return fmt.Errorf("table %q extends outside main chunk %s", t.Name, l.MainChunk)
		}
	}
	for _, lm := range l.Landmarks {
		if !l.MainChunk.Contains(lm.Offset) {
			return fmt.Errorf("landmark %q at 0x%X outside main chunk %s", lm.Label, lm.Offset, l.MainChunk)
		}
	}
	return nil
}
