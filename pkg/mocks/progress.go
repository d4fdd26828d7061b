package mocks

import (
	"sync"

	"github.com/user/lapse/pkg/ports"
)

// Progress records progress reports.
type Progress struct {
	mu sync.Mutex

	Total    int64
	Started  bool
	Count    int
	Finished bool
}

func (m *Progress) Start(total int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Started = true
	m.Total = total
}

func (m *Progress) Add(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Count += n
}

func (m *Progress) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Finished = true
}

var _ ports.Progress = (*Progress)(nil)
