package memory

import "sync/atomic"

type Stats struct {
	inserts    atomic.Uint64
	evictions  atomic.Uint64
	duplicates atomic.Uint64
}

func NewStats() *Stats { return &Stats{} }

func (s *Stats) IncInsert()    { s.inserts.Add(1) }
func (s *Stats) IncEviction()  { s.evictions.Add(1) }
func (s *Stats) IncDuplicate() { s.duplicates.Add(1) }

func (s *Stats) Snapshot() (inserts, evictions, duplicates uint64) {
	return s.inserts.Load(), s.evictions.Load(), s.duplicates.Load()
}
