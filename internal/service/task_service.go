package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/tasklist-api/internal/cache"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/platform/metrics"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// Operation names used for error context and metrics labels.
const (
	OpList   = "list_tasks"
	OpCreate = "create_task"
	OpUpdate = "update_task"
	OpToggle = "toggle_task"
	OpDelete = "delete_task"
	OpHealth = "check_health"
)

// DefaultHealthTimeout bounds CheckHealth when no timeout is configured.
const DefaultHealthTimeout = 2 * time.Second

// TaskInput carries the raw editable fields of a task as received from a client.
type TaskInput struct {
	Name        string
	Title       string
	Description string
	DueDate     string
}

// TaskService provides task-related operations
type TaskService interface {
	// List returns every task, newest first
	List(ctx context.Context) ([]domain.Task, error)

	// Create validates input and stores a new uncompleted task
	Create(ctx context.Context, input TaskInput) (*domain.Task, error)

	// Update replaces the editable fields of an existing task
	Update(ctx context.Context, id int64, input TaskInput) (*domain.Task, error)

	// Toggle flips the completion flag and returns the new value
	Toggle(ctx context.Context, id int64) (bool, error)

	// Delete removes a task permanently
	Delete(ctx context.Context, id int64) error

	// CheckHealth performs a round-trip to the store
	CheckHealth(ctx context.Context) error
}

// Option configures a task service.
type Option func(*taskServiceImpl)

// WithHealthTimeout sets the deadline applied to CheckHealth.
func WithHealthTimeout(d time.Duration) Option {
	return func(s *taskServiceImpl) {
		if d > 0 {
			s.healthTimeout = d
		}
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store         store.TaskStore
	cache         cache.Cache
	metrics       *metrics.Metrics
	logger        *slog.Logger
	cacheTTL      time.Duration
	healthTimeout time.Duration
}

// NewTaskService creates a new TaskService.
// It returns an error if the store or cache is nil. metrics may be nil.
func NewTaskService(
	taskStore store.TaskStore,
	taskCache cache.Cache,
	m *metrics.Metrics,
	log *slog.Logger,
	cacheTTL time.Duration,
	opts ...Option,
) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}
	if taskCache == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskCache cannot be nil",
		}
	}

	if log == nil {
		log = slog.Default()
	}

	s := &taskServiceImpl{
		store:         taskStore,
		cache:         taskCache,
		metrics:       m,
		logger:        log.With("component", "task_service"),
		cacheTTL:      cacheTTL,
		healthTimeout: DefaultHealthTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// List returns all tasks, consulting the cache first.
func (s *taskServiceImpl) List(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if tasks, ok := s.cachedTasks(ctx, log); ok {
		s.metrics.ObserveTaskOperation(OpList, metrics.OutcomeSuccess)
		return tasks, nil
	}

	tasks, err := s.store.List(ctx)
	if err != nil {
		log.Error("failed to list tasks", "error", err)
		s.observe(OpList, err)
		return nil, NewTaskServiceError(OpList, "failed to retrieve tasks", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}

	s.fillCache(ctx, log, tasks)

	log.Debug("listed tasks from store", "count", len(tasks))
	s.metrics.ObserveTaskOperation(OpList, metrics.OutcomeSuccess)
	return tasks, nil
}

// Create validates input and inserts a new task.
func (s *taskServiceImpl) Create(ctx context.Context, input TaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	details, err := parseInput(input)
	if err != nil {
		log.Debug("rejected task input", "error", err)
		s.observe(OpCreate, err)
		return nil, err
	}

	task := domain.NewTask(details)
	if err := s.store.Create(ctx, task); err != nil {
		log.Error("failed to create task", "error", err)
		s.observe(OpCreate, err)
		return nil, NewTaskServiceError(OpCreate, "failed to save task", err)
	}

	s.invalidate(ctx, log)

	log.Info("task created", "task_id", task.ID)
	s.metrics.ObserveDescriptionLength(len(task.Description))
	s.metrics.ObserveTaskOperation(OpCreate, metrics.OutcomeSuccess)
	return task, nil
}

// Update overwrites the editable fields of an existing task.
func (s *taskServiceImpl) Update(ctx context.Context, id int64, input TaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With("task_id", id)

	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		s.logLookupFailure(log, err)
		s.observe(OpUpdate, err)
		return nil, NewTaskServiceError(OpUpdate, "failed to retrieve task", err)
	}

	details, err := parseInput(input)
	if err != nil {
		log.Debug("rejected task input", "error", err)
		s.observe(OpUpdate, err)
		return nil, err
	}

	task.Apply(details)
	if err := s.store.Update(ctx, task); err != nil {
		log.Error("failed to update task", "error", err)
		s.observe(OpUpdate, err)
		return nil, NewTaskServiceError(OpUpdate, "failed to save task", err)
	}

	s.invalidate(ctx, log)

	log.Info("task updated")
	s.metrics.ObserveDescriptionLength(len(task.Description))
	s.metrics.ObserveTaskOperation(OpUpdate, metrics.OutcomeSuccess)
	return task, nil
}

// Toggle flips is_completed on an existing task.
func (s *taskServiceImpl) Toggle(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With("task_id", id)

	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		s.logLookupFailure(log, err)
		s.observe(OpToggle, err)
		return false, NewTaskServiceError(OpToggle, "failed to retrieve task", err)
	}

	completed := task.Toggle()
	if err := s.store.Update(ctx, task); err != nil {
		log.Error("failed to toggle task", "error", err)
		s.observe(OpToggle, err)
		return false, NewTaskServiceError(OpToggle, "failed to save task", err)
	}

	s.invalidate(ctx, log)

	log.Info("task toggled", "is_completed", completed)
	s.metrics.ObserveTaskOperation(OpToggle, metrics.OutcomeSuccess)
	return completed, nil
}

// Delete removes a task.
func (s *taskServiceImpl) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With("task_id", id)

	if err := s.store.Delete(ctx, id); err != nil {
		s.logLookupFailure(log, err)
		s.observe(OpDelete, err)
		return NewTaskServiceError(OpDelete, "failed to delete task", err)
	}

	s.invalidate(ctx, log)

	log.Info("task deleted")
	s.metrics.ObserveTaskOperation(OpDelete, metrics.OutcomeSuccess)
	return nil
}

// CheckHealth pings the store within the health timeout.
func (s *taskServiceImpl) CheckHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.healthTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("health check failed", "error", err)
		s.observe(OpHealth, err)
		return NewTaskServiceError(OpHealth, "database unreachable", err)
	}

	s.metrics.ObserveTaskOperation(OpHealth, metrics.OutcomeSuccess)
	return nil
}

// cachedTasks returns the cached listing if present and decodable.
func (s *taskServiceImpl) cachedTasks(ctx context.Context, log *slog.Logger) ([]domain.Task, bool) {
	data, found, err := s.cache.Get(ctx, cache.AllTasksKey)
	if err != nil {
		log.Warn("cache read failed", "key", cache.AllTasksKey, "error", err)
		s.metrics.ObserveCacheLookup(metrics.CacheError)
		return nil, false
	}
	if !found {
		s.metrics.ObserveCacheLookup(metrics.CacheMiss)
		return nil, false
	}

	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		log.Warn("cached task list is corrupt", "key", cache.AllTasksKey, "error", err)
		s.metrics.ObserveCacheLookup(metrics.CacheError)
		return nil, false
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}

	log.Debug("served tasks from cache", "count", len(tasks))
	s.metrics.ObserveCacheLookup(metrics.CacheHit)
	return tasks, true
}

func (s *taskServiceImpl) fillCache(ctx context.Context, log *slog.Logger, tasks []domain.Task) {
	data, err := json.Marshal(tasks)
	if err != nil {
		log.Warn("failed to encode task list for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, cache.AllTasksKey, data, s.cacheTTL); err != nil {
		log.Warn("cache write failed", "key", cache.AllTasksKey, "error", err)
	}
}

// invalidate drops the cached listing. It runs after the store has committed,
// so it must not be cut short by the request's cancellation. Failure is
// logged only; the TTL bounds how long a stale listing can survive.
func (s *taskServiceImpl) invalidate(ctx context.Context, log *slog.Logger) {
	if err := s.cache.Delete(context.WithoutCancel(ctx), cache.AllTasksKey); err != nil {
		log.Error("cache invalidation failed", "key", cache.AllTasksKey, "error", err)
	}
}

func (s *taskServiceImpl) logLookupFailure(log *slog.Logger, err error) {
	if store.IsNotFoundError(err) {
		log.Debug("task not found")
		return
	}
	log.Error("failed to retrieve task", "error", err)
}

func (s *taskServiceImpl) observe(operation string, err error) {
	s.metrics.ObserveTaskOperation(operation, outcomeFor(err))
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case store.IsNotFoundError(err), errors.Is(err, ErrTaskNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

func parseInput(input TaskInput) (domain.TaskDetails, error) {
	return domain.ParseTaskDetails(input.Name, input.Title, input.Description, input.DueDate)
}
