package memory

import (
	"sync"
	"time"

	"github.com/omarshaarawi/flickerreport/internal/models"
)

// Snapshot is one generated report: the populated league, the rendered
// message, and when it was built.
type Snapshot struct {
	League      *models.League
	Rendered    string
	Week        int
	GeneratedAt time.Time
}

type Repository struct {
	snapshot *Snapshot
	mu       sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SaveSnapshot(snapshot *Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = snapshot
}

func (r *Repository) GetSnapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}
