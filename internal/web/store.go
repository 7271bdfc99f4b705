package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/autoviz/internal/viz"
)

// Run holds the results of one upload-and-generate pipeline execution.
// Runs live only in memory and expire after the retention window;
// nothing persists across restarts.
type Run struct {
	ID      string
	Created time.Time

	Dataset string
	Rows    int
	Cols    int

	// Raw-data preview: header plus the first few rows.
	Header  []string
	Preview [][]string

	NumericCols     []string
	CategoricalCols []string
	DatetimeCols    []string

	Summary   string
	Artifacts []viz.Artifact
	Skipped   []viz.SkippedPlot
	Total     int
}

// runStore keeps recent runs keyed by UUID, evicting entries older
// than the retention window on each insert.
type runStore struct {
	mu        sync.Mutex
	runs      map[string]*Run
	retention time.Duration
	now       func() time.Time
}

func newRunStore(retention time.Duration) *runStore {
	return &runStore{
		runs:      make(map[string]*Run),
		retention: retention,
		now:       time.Now,
	}
}

// Put registers the run under a fresh UUID and returns the ID.
func (s *runStore) Put(r *Run) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = uuid.NewString()
	r.Created = s.now()
	for id, old := range s.runs {
		if s.now().Sub(old.Created) > s.retention {
			delete(s.runs, id)
		}
	}
	s.runs[r.ID] = r
	return r.ID
}

func (s *runStore) Get(id string) (*Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	if !ok || s.now().Sub(r.Created) > s.retention {
		return nil, false
	}
	return r, ok
}
