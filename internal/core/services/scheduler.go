package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
	"github.com/hopwise/hopwise/internal/core/ports/driving"
	"github.com/hopwise/hopwise/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

const (
	defaultSchedulerTick = time.Minute
	maxTaskHistory       = 100
)

type taskFunc func(ctx context.Context) (int64, error)

// Scheduler runs background maintenance tasks on a ticker. It keeps task
// state in memory; nothing survives a restart.
type Scheduler struct {
	tick time.Duration
	now  func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
	tasks   map[string]*domain.ScheduledTask
	runners map[string]taskFunc
	active  map[string]bool
	history []domain.TaskResult
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerTick sets how often due tasks are checked.
func WithSchedulerTick(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.tick = d
		}
	}
}

// WithSchedulerClock replaces time.Now.
func WithSchedulerClock(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) { s.now = now }
}

// NewScheduler creates a scheduler. The cache purge task is registered
// when purger is non-nil and the task is enabled in config.
func NewScheduler(config domain.SchedulerConfig, purger driven.CachePurger, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		tick:    defaultSchedulerTick,
		now:     time.Now,
		tasks:   make(map[string]*domain.ScheduledTask),
		runners: make(map[string]taskFunc),
		active:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg := config.Task(domain.TaskIDCachePurge); cfg.Enabled && purger != nil {
		s.register(domain.TaskIDCachePurge, "Cache purge", cfg, purger.Purge)
	}
	return s
}

func (s *Scheduler) register(id, name string, cfg domain.TaskConfig, run taskFunc) {
	interval := cfg.Interval
	if interval <= 0 {
		interval = domain.DefaultPurgeInterval
	}
	s.tasks[id] = &domain.ScheduledTask{
		ID:       id,
		Name:     name,
		Interval: interval,
		Enabled:  true,
		NextRun:  s.now().Add(interval),
	}
	s.runners[id] = run
}

// Start runs the loop and blocks until ctx is cancelled or Stop is called.
// A scheduler with no tasks returns immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	if len(s.tasks) == 0 {
		s.mu.Unlock()
		logger.Debug("Scheduler has no tasks")
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			s.wg.Wait()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.runDue(ctx)
		}
	}
}

// Stop ends the loop and waits for running tasks.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		s.wg.Wait()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// RunNow runs task id immediately and returns its result.
func (s *Scheduler) RunNow(ctx context.Context, id string) (domain.TaskResult, error) {
	s.mu.Lock()
	task, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return domain.TaskResult{}, fmt.Errorf("%w: unknown task %q", domain.ErrNotFound, id)
	}
	s.active[id] = true
	s.mu.Unlock()

	return s.execute(ctx, task), nil
}

// Tasks returns a snapshot of the registered tasks sorted by ID.
func (s *Scheduler) Tasks() []domain.ScheduledTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ScheduledTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// History returns the most recent results, oldest first.
func (s *Scheduler) History() []domain.TaskResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TaskResult(nil), s.history...)
}

// runDue starts every due task that is not already running.
func (s *Scheduler) runDue(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	var due []*domain.ScheduledTask
	for id, t := range s.tasks {
		if t.Due(now) && !s.active[id] {
			s.active[id] = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		s.wg.Add(1)
		go func(t *domain.ScheduledTask) {
			defer s.wg.Done()
			s.execute(ctx, t)
		}(t)
	}
}

// execute runs task and records its outcome. The caller marks it active.
func (s *Scheduler) execute(ctx context.Context, task *domain.ScheduledTask) domain.TaskResult {
	s.mu.Lock()
	run := s.runners[task.ID]
	s.mu.Unlock()

	result := domain.TaskResult{TaskID: task.ID, StartedAt: s.now()}
	n, err := run(ctx)
	result.EndedAt = s.now()
	result.ItemsProcessed = n

	s.mu.Lock()
	defer s.mu.Unlock()

	task.LastRun = result.StartedAt
	task.NextRun = result.EndedAt.Add(task.Interval)
	if err != nil {
		result.Error = err.Error()
		task.LastError = err.Error()
		logger.Warn("Task %s failed: %v", task.ID, err)
	} else {
		result.Success = true
		task.LastError = ""
		task.LastSuccess = result.EndedAt
		if n > 0 {
			logger.Debug("Task %s processed %d items", task.ID, n)
		}
	}

	s.history = append(s.history, result)
	if len(s.history) > maxTaskHistory {
		s.history = s.history[len(s.history)-maxTaskHistory:]
	}
	delete(s.active, task.ID)
	return result
}
