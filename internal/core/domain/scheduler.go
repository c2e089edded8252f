package domain

import "time"

// Built-in background task IDs.
const (
	TaskIDCachePurge = "cache-purge"
)

// DefaultPurgeInterval is how often expired cache entries are swept.
const DefaultPurgeInterval = 10 * time.Minute

// ScheduledTask is a recurring background job and its last known state.
type ScheduledTask struct {
	ID       string
	Name     string
	Interval time.Duration
	Enabled  bool

	LastRun     time.Time
	NextRun     time.Time
	LastSuccess time.Time

	// LastError is empty after a successful run.
	LastError string
}

// Due reports whether the task should run at now.
func (t ScheduledTask) Due(now time.Time) bool {
	return t.Enabled && (t.NextRun.IsZero() || !t.NextRun.After(now))
}

// TaskResult is the outcome of one task run.
type TaskResult struct {
	TaskID    string
	StartedAt time.Time
	EndedAt   time.Time
	Success   bool
	Error     string

	// ItemsProcessed counts what the run handled, e.g. purged entries.
	ItemsProcessed int64
}

// Duration returns how long the run took.
func (r TaskResult) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// TaskConfig enables a task and sets its interval.
type TaskConfig struct {
	Enabled  bool
	Interval time.Duration
}

// SchedulerConfig holds per-task configuration keyed by task ID.
type SchedulerConfig struct {
	Enabled bool
	Tasks   map[string]TaskConfig
}

// Task returns the configuration for id, or a disabled zero value.
func (c SchedulerConfig) Task(id string) TaskConfig {
	if !c.Enabled || c.Tasks == nil {
		return TaskConfig{}
	}
	return c.Tasks[id]
}

// DefaultSchedulerConfig enables the cache purge task.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled: true,
		Tasks: map[string]TaskConfig{
			TaskIDCachePurge: {Enabled: true, Interval: DefaultPurgeInterval},
		},
	}
}
