package store

import (
	"context"
	"fmt"
	"sync"

	"iranconnect-web/internal/domain"
)

// Memory is an ordered in-process job store.
type Memory struct {
	mu   sync.RWMutex
	jobs []domain.Job
}

var _ domain.JobStore = (*Memory)(nil)

// NewMemory validates jobs and keeps them in the order given.
func NewMemory(jobs ...domain.Job) (*Memory, error) {
	m := &Memory{jobs: make([]domain.Job, 0, len(jobs))}
	seen := make(map[domain.JobID]bool, len(jobs))
	for _, j := range jobs {
		j = j.Normalized()
		if err := j.Validate(); err != nil {
			return nil, err
		}
		if seen[j.ID] {
			return nil, fmt.Errorf("duplicate job id %q", j.ID)
		}
		seen[j.ID] = true
		m.jobs = append(m.jobs, j)
	}
	return m, nil
}

func (m *Memory) FetchJobs(ctx context.Context, f domain.Filter) ([]domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.Apply(m.jobs, f), nil
}

func (m *Memory) FetchJobByID(ctx context.Context, id domain.JobID) (domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return domain.Job{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.index(id); i >= 0 {
		return m.jobs[i], nil
	}
	return domain.Job{}, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
}

func (m *Memory) UpsertJob(ctx context.Context, j domain.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j = j.Normalized()
	if err := j.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.index(j.ID); i >= 0 {
		m.jobs[i] = j
		return nil
	}
	m.jobs = append(m.jobs, j)
	return nil
}

func (m *Memory) DeleteJob(ctx context.Context, id domain.JobID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	m.jobs = append(m.jobs[:i:i], m.jobs[i+1:]...)
	return nil
}

func (m *Memory) Count(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.jobs), nil
}

func (m *Memory) index(id domain.JobID) int {
	for i, j := range m.jobs {
		if j.ID == id {
			return i
		}
	}
	return -1
}
