package server

import (
	"sync"

	"github.com/nguyentantai21042004/accent-lens/internal/processor"
)

// runStore keeps recent runs in memory so the UI can fetch audio and reports
// after the analyze response. Bounded: oldest runs are evicted first, and
// nothing survives a restart.
type runStore struct {
	mu    sync.Mutex
	cap   int
	runs  map[string]*processor.Run
	order []string
}

func newRunStore(capacity int) *runStore {
	if capacity < 1 {
		capacity = 1
	}
	return &runStore{
		cap:  capacity,
		runs: make(map[string]*processor.Run),
	}
}

func (s *runStore) Put(run *processor.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; !exists {
		s.order = append(s.order, run.ID)
	}
	s.runs[run.ID] = run

	for len(s.order) > s.cap {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.runs, oldest)
	}
}

func (s *runStore) Get(id string) (*processor.Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	return run, ok
}
