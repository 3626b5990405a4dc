package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avdeyev/vidpull/internal/fetch"
)

// ErrNotFound indicates an unknown job ID.
var ErrNotFound = errors.New("job not found")

// Downloader is the fetch side the manager drives; satisfied by
// *fetch.Fetcher.
type Downloader interface {
	Fetch(ctx context.Context, req fetch.Request, onProgress func(fetch.Event)) (*fetch.Result, error)
}

// Manager owns the in-memory job table and bounds how many downloads run at
// once. All methods are safe for concurrent use from HTTP handlers.
type Manager struct {
	mu      sync.Mutex
	jobs    map[string]*Job
	cancels map[string]context.CancelFunc

	fetcher Downloader
	slots   chan struct{}
}

func NewManager(fetcher Downloader, maxParallel int) *Manager {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &Manager{
		jobs:    make(map[string]*Job),
		cancels: make(map[string]context.CancelFunc),
		fetcher: fetcher,
		slots:   make(chan struct{}, maxParallel),
	}
}

// Start registers a new job and begins downloading in the background as
// soon as a slot frees up. The returned snapshot carries the assigned ID.
func (m *Manager) Start(req fetch.Request, title string) Job {
	j := &Job{
		ID:        uuid.NewString(),
		URL:       req.URL,
		Title:     title,
		Kind:      req.Kind,
		Option:    req.Option,
		Label:     req.Option.Label,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithCancel(context.Background())

	m.mu.Lock()
	m.jobs[j.ID] = j
	m.cancels[j.ID] = cancel
	m.mu.Unlock()

	go m.run(ctx, j.ID, req)

	return *j
}

// Get returns a snapshot of the job.
func (m *Manager) Get(id string) (Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *j, true
}

// List returns snapshots of all jobs, newest first.
func (m *Manager) List() []Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobs := make([]Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		jobs = append(jobs, *j)
	}
	sort.Slice(jobs, func(i, k int) bool {
		if jobs[i].CreatedAt.Equal(jobs[k].CreatedAt) {
			return jobs[i].ID < jobs[k].ID
		}
		return jobs[i].CreatedAt.After(jobs[k].CreatedAt)
	})
	return jobs
}

// Cancel stops a pending or running job.
func (m *Manager) Cancel(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if j.Status.Finished() {
		return fmt.Errorf("job %s already %s", id, j.Status)
	}
	if cancel := m.cancels[id]; cancel != nil {
		cancel()
	}
	return nil
}

// Remove drops a finished job from the table.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if !j.Status.Finished() {
		return fmt.Errorf("job %s is still %s", id, j.Status)
	}
	delete(m.jobs, id)
	delete(m.cancels, id)
	return nil
}

func (m *Manager) run(ctx context.Context, id string, req fetch.Request) {
	select {
	case m.slots <- struct{}{}:
	case <-ctx.Done():
		m.finish(id, nil, ctx.Err())
		return
	}
	defer func() { <-m.slots }()

	m.update(id, func(j *Job) { j.Status = StatusRunning })

	result, err := m.fetcher.Fetch(ctx, req, func(e fetch.Event) {
		if e.Kind != fetch.EventProgress {
			return
		}
		m.update(id, func(j *Job) {
			j.Progress = Progress{
				Percent:   e.Percent,
				TotalSize: e.TotalSize,
				Speed:     e.Speed,
				ETA:       e.ETA,
			}
		})
	})

	m.finish(id, result, err)
}

func (m *Manager) finish(id string, result *fetch.Result, err error) {
	m.update(id, func(j *Job) {
		switch {
		case err == nil:
			j.Status = StatusDone
			j.Progress.Percent = 100
			j.FilePath = result.FilePath
			j.FileName = filepath.Base(result.FilePath)
			j.FileSize = result.Size
		case errors.Is(err, context.Canceled):
			j.Status = StatusCanceled
		default:
			j.Status = StatusFailed
			j.Error = err.Error()
			slog.Error("download job failed", "id", id, "err", err)
		}
	})
}

func (m *Manager) update(id string, fn func(*Job)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[id]; ok {
		fn(j)
	}
}
