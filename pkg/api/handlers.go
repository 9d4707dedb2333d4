package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/sramdig/sramdig/pkg/detect"
	"github.com/sramdig/sramdig/pkg/region"
	"github.com/sramdig/sramdig/pkg/report"
	"github.com/sramdig/sramdig/pkg/table"
)

// Server holds the API server state
type Server struct {
	analysis Analysis
	config   ServerConfig
	metrics  *Metrics
	session  string
}

// NewServer creates a new API server over one loaded save image. The
// session ID names this analysis run in every response.
func NewServer(analysis Analysis, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		analysis: analysis,
		config:   config,
		metrics:  metrics,
		session:  ksuid.New().String(),
	}
}

// handleHealth reports the loaded image and session.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, map[string]interface{}{
		"status":     "healthy",
		"image":      s.analysis.Image.Path(),
		"image_size": s.analysis.Image.Len(),
		"main_chunk": s.analysis.Layout.MainChunk,
	})
}

// handleTables lists the configured table specifications.
func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, s.analysis.Layout.Tables)
}

// handleTable decodes one named table.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")

	spec, ok := s.analysis.Layout.Table(name)
	if !ok {
		sendError(w, fmt.Sprintf("Unknown table: %s", name), http.StatusNotFound)
		return
	}

	entries, err := table.Decode(s.analysis.Image.Bytes(), spec)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordAnalysisOperation("decode", false, time.Since(start))
		}
		sendError(w, fmt.Sprintf("Failed to decode table: %v", err), http.StatusUnprocessableEntity)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordAnalysisOperation("decode", true, time.Since(start))
	}
	s.sendSuccess(w, entries)
}

// handleRegions returns the blank/non-blank partition of the main chunk
// with landmark tags.
func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	l := s.analysis.Layout

	infos := region.Summary(s.analysis.Image.Bytes(), l.MainChunk, l.BlankByte, l.MinBlankRun, l.Landmarks)

	if s.metrics != nil {
		s.metrics.RecordAnalysisOperation("regions", true, time.Since(start))
	}
	s.sendSuccess(w, infos)
}

// handleScan runs the pattern detector over a sub-range of the main
// chunk (or the whole chunk when no bounds are given).
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	l := s.analysis.Layout

	bounds := l.MainChunk
	var err error
	if bounds.Start, err = queryOffset(r, "start", bounds.Start); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if bounds.End, err = queryOffset(r, "end", bounds.End); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !l.MainChunk.Contains(bounds.Start) || bounds.End > l.MainChunk.End {
		sendError(w, fmt.Sprintf("Scan bounds %s outside main chunk %s", bounds, l.MainChunk), http.StatusBadRequest)
		return
	}

	opts := detect.DefaultOptions()
	opts.RowWidth = l.RowWidth
	overlays := detect.Scan(s.analysis.Image.Bytes(), bounds, opts)

	if s.metrics != nil {
		s.metrics.RecordAnalysisOperation("scan", true, time.Since(start))
		counts := map[detect.Kind]int{}
		for _, row := range overlays {
			for _, c := range row.Candidates {
				counts[c.Kind]++
			}
		}
		for kind, n := range counts {
			s.metrics.RecordCandidates(string(kind), n)
		}
	}
	s.sendSuccess(w, overlays)
}

// handleTotals aggregates every decodable table per player.
func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	decoded, err := table.DecodeAll(s.analysis.Image.Bytes(), s.analysis.Layout.Tables)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordAnalysisOperation("totals", false, time.Since(start))
		}
		sendError(w, fmt.Sprintf("Failed to decode tables: %v", err), http.StatusUnprocessableEntity)
		return
	}

	var all []table.Entry
	for _, name := range s.analysis.Layout.TableNames() {
		all = append(all, decoded[name]...)
	}

	if s.metrics != nil {
		s.metrics.RecordAnalysisOperation("totals", true, time.Since(start))
	}
	s.sendSuccess(w, report.PlayerTotals(all))
}

// queryOffset parses a decimal or 0x-prefixed hex query parameter,
// returning fallback when absent.
func queryOffset(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s offset %q", name, raw)
	}
	return int(v), nil
}
