package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/garda-insights/riskmap/internal/dataset"
	"github.com/garda-insights/riskmap/internal/geo"
	"github.com/garda-insights/riskmap/internal/model"
	"github.com/garda-insights/riskmap/internal/pipeline"
	"github.com/garda-insights/riskmap/internal/zones"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload replaces the session dataset with the request body
// (CSV or TSV; delimiter auto-detected). A successful upload supersedes
// the previous dataset for all subsequent queries.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.Server.MaxUploadMB) << 20
	body := http.MaxBytesReader(w, r.Body, maxBytes)

	loader := dataset.NewLoader(s.cfg.Scope.RegionTokens)
	records, stats, err := loader.LoadReader(r.Context(), body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	snap := s.session.replace(records, stats)
	zap.L().Info("dataset replaced",
		zap.String("dataset_id", snap.ID),
		zap.Int("accepted", stats.Accepted),
		zap.Int("skipped", stats.Skipped()),
	)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset_id": snap.ID,
		"load_stats": stats,
		"quarters":   dataset.Quarters(records),
		"regions":    dataset.Regions(records),
		"offences":   dataset.Offences(records),
	})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	vm, ok := s.compute(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id": vm.RunID,
		"scores": vm.Scores,
	})
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	vm, ok := s.compute(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":     vm.RunID,
		"zones":      vm.Zones,
		"zone_stats": vm.ZoneStats,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	vm, ok := s.compute(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":       vm.RunID,
		"load_stats":   vm.LoadStats,
		"zone_stats":   vm.ZoneStats,
		"top_regions":  vm.TopRegions,
		"top_offences": vm.TopOffences,
		"distribution": vm.Distribution,
	})
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	vm, ok := s.compute(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id": vm.RunID,
		"matrix": vm.Matrix,
	})
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	vm, ok := s.compute(w, r)
	if !ok {
		return
	}
	data, err := geo.FeatureCollection(vm.Zones, s.centroids, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleLatest returns the last successfully computed view-model, the
// state a client keeps showing when a newer request failed.
func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	vm := s.session.last()
	if vm == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("no pipeline run has completed yet"))
		return
	}
	writeJSON(w, http.StatusOK, vm)
}

// compute runs the pipeline for the current dataset and the request's
// filter and threshold parameters. Concurrent identical requests share
// one run via singleflight. On success the view-model also becomes the
// session's remembered result.
func (s *Server) compute(w http.ResponseWriter, r *http.Request) (*pipeline.ViewModel, bool) {
	snap := s.session.current()
	if snap == nil {
		writeError(w, http.StatusConflict, fmt.Errorf("no dataset loaded; POST /api/dataset first"))
		return nil, false
	}

	opts, err := s.parseOptions(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return nil, false
	}

	key := computeKey(snap.ID, r.URL.Query().Encode())
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		return pipeline.Run(r.Context(), snap.Records, snap.Stats, opts)
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return nil, false
	}

	vm := result.(*pipeline.ViewModel)
	s.session.remember(vm)
	return vm, true
}

// parseOptions builds pipeline options from query parameters, falling
// back to configured defaults.
func (s *Server) parseOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()

	opts := pipeline.Options{
		Severity: s.cfg.Severity,
		Zones: zones.Config{
			DangerPercentile:  s.cfg.Zones.DangerPercentile,
			WarningPercentile: s.cfg.Zones.WarningPercentile,
		},
		TopN: s.cfg.Summary.TopN,
	}

	if v := q.Get("danger_pct"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid danger_pct %q", v)
		}
		opts.Zones.DangerPercentile = f
	}
	if v := q.Get("warning_pct"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid warning_pct %q", v)
		}
		opts.Zones.WarningPercentile = f
	}
	if v := q.Get("top_n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, fmt.Errorf("invalid top_n %q", v)
		}
		opts.TopN = n
	}

	for _, label := range splitParam(q.Get("quarters")) {
		p, err := model.ParsePeriod(label)
		if err != nil {
			return opts, fmt.Errorf("invalid quarter %q", label)
		}
		opts.Filter.Quarters = append(opts.Filter.Quarters, p)
	}
	opts.Filter.Regions = splitParam(q.Get("regions"))
	opts.Filter.Offences = splitParam(q.Get("offences"))

	return opts, nil
}

func computeKey(datasetID, query string) string {
	return datasetID + "?" + query
}

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
