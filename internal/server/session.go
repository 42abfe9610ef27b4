// Package server exposes the pipeline over HTTP: dataset upload plus
// scores, zones, summaries, trend matrix, and GeoJSON queries.
package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/garda-insights/riskmap/internal/model"
	"github.com/garda-insights/riskmap/internal/pipeline"
)

// snapshot is one immutable loaded dataset. A new upload produces a new
// snapshot; handlers always read the latest one, so results computed
// from a superseded dataset are never merged with a newer one.
type snapshot struct {
	ID       string
	Records  []model.Record
	Stats    model.LoadStats
	LoadedAt time.Time
}

// session holds the mutable per-process state: the current dataset and
// the last successfully computed view-model (kept so a failed recompute
// leaves the previous result available).
type session struct {
	mu     sync.RWMutex
	data   *snapshot
	lastVM *pipeline.ViewModel
}

func (s *session) replace(records []model.Record, stats model.LoadStats) *snapshot {
	snap := &snapshot{
		ID:       uuid.NewString(),
		Records:  records,
		Stats:    stats,
		LoadedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.data = snap
	s.mu.Unlock()
	return snap
}

func (s *session) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

func (s *session) remember(vm *pipeline.ViewModel) {
	s.mu.Lock()
	s.lastVM = vm
	s.mu.Unlock()
}

func (s *session) last() *pipeline.ViewModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastVM
}
