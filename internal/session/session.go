package session

import (
	"sync"
	"time"

	"github.com/KaramelBytes/unirank-cli/internal/rankings"
	"github.com/KaramelBytes/unirank-cli/internal/view"
	"github.com/google/uuid"
)

// Options controls session behavior.
type Options struct {
	// Cache keeps rendered specs keyed by mode and params.
	Cache bool
}

// Session owns one load of the rankings dataset.
type Session struct {
	ID       string
	Source   string
	LoadedAt time.Time
	// Dataset is nil when Err is set.
	Dataset *rankings.Dataset
	// Err is the load failure, if any. It is terminal for the session.
	Err error

	opt   Options
	mu    sync.Mutex
	cache map[string]view.ChartSpec
}

// Open loads path into a new session. It always returns a session; a load
// failure is recorded on Err so adapters can render the no-data state.
func Open(path string, opt Options) *Session {
	ds, err := rankings.Load(path)
	s := newSession(path, opt)
	s.Dataset, s.Err = ds, err
	return s
}

// FromDataset wraps an already-loaded dataset.
func FromDataset(ds *rankings.Dataset, opt Options) *Session {
	var source string
	if ds != nil {
		source = ds.Source
	}
	s := newSession(source, opt)
	s.Dataset = ds
	return s
}

func newSession(source string, opt Options) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Source:   source,
		LoadedAt: time.Now(),
		opt:      opt,
		cache:    make(map[string]view.ChartSpec),
	}
}

// Size returns the number of clean records.
func (s *Session) Size() int { return s.Dataset.Len() }

// NoData reports whether there is nothing to chart.
func (s *Session) NoData() bool { return s.Err != nil || s.Dataset.Empty() }

// NoDataReason explains NoData for display.
func (s *Session) NoDataReason() string {
	switch {
	case s.Err != nil:
		return s.Err.Error()
	case s.Dataset.Empty():
		return "No data: every row is missing a required column"
	}
	return ""
}

// Render returns the chart for mode and params. A session without data
// yields a no-data spec; failures come back as error specs.
func (s *Session) Render(mode view.Mode, p view.Params) view.ChartSpec {
	if s.NoData() {
		return view.NoDataSpec(s.NoDataReason())
	}
	if !s.opt.Cache {
		return view.Render(mode, p, s.Dataset)
	}
	key := view.Key(mode, p)
	s.mu.Lock()
	defer s.mu.Unlock()
	if spec, ok := s.cache[key]; ok {
		return spec
	}
	spec := view.Render(mode, p, s.Dataset)
	s.cache[key] = spec
	return spec
}

// CachedViews returns how many specs are cached.
func (s *Session) CachedViews() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}
