package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bodasandeepsai/task-manager/internal/domain"
	"github.com/bodasandeepsai/task-manager/internal/events"
	"github.com/bodasandeepsai/task-manager/internal/store"
)

// AssigneeIdentity is the subset of a user's identity exposed when a
// task's assignee is resolved. The password hash never appears here.
type AssigneeIdentity struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// TaskDetail is a task with its assignee identity resolved, as returned
// by every task operation.
type TaskDetail struct {
	*domain.Task
	Assignee AssigneeIdentity `json:"assignee"`
}

// CreateTaskInput carries the caller-supplied fields for task creation.
// Status is deliberately absent: new tasks always start as TODO.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    domain.TaskPriority
	DueDate     time.Time
	AssignedTo  uuid.UUID
}

// UpdateTaskInput carries a partial field set for task updates. Nil
// fields are left untouched; supplied fields overwrite, with no
// transition validation beyond enum membership.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
	AssignedTo  *uuid.UUID
}

// TaskService is the task lifecycle manager: it enforces creation
// defaults, ownership rules, and field merging, and emits a mutation
// event for every successful write.
type TaskService interface {
	// List returns every task the user can see: created by them or
	// assigned to them. Storage order, no pagination.
	List(ctx context.Context, userID uuid.UUID) ([]*TaskDetail, error)

	// Create validates and persists a new task with status TODO and the
	// given creator. Returns the task with assignee resolved.
	Create(ctx context.Context, input CreateTaskInput, creatorID uuid.UUID) (*TaskDetail, error)

	// Get returns the task if the caller is its creator or assignee.
	// Returns store.ErrTaskNotFound if absent, ErrTaskNotOwned otherwise.
	Get(ctx context.Context, id, callerID uuid.UUID) (*TaskDetail, error)

	// Update merges the supplied fields over the stored task, refreshes
	// the updated timestamp, and returns the result with assignee
	// re-resolved. Ownership rules match Get.
	Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput, callerID uuid.UUID) (*TaskDetail, error)

	// Delete removes the task. Ownership rules match Get.
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	userStore store.UserStore
	emitter   events.EventEmitter
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskStore store.TaskStore,
	userStore store.UserStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		taskStore: taskStore,
		userStore: userStore,
		emitter:   emitter,
		logger:    logger.With("component", "task_service"),
	}
}

// List implements TaskService.List.
func (s *TaskServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]*TaskDetail, error) {
	tasks, err := s.taskStore.ListForUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	details := make([]*TaskDetail, 0, len(tasks))
	for _, task := range tasks {
		detail, err := s.resolveAssignee(ctx, task)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return details, nil
}

// Create implements TaskService.Create.
func (s *TaskServiceImpl) Create(
	ctx context.Context,
	input CreateTaskInput,
	creatorID uuid.UUID,
) (*TaskDetail, error) {
	// Validation happens before any write: a bad title or missing due
	// date never reaches the store.
	task, err := domain.NewTask(
		input.Title,
		input.Description,
		input.Priority,
		input.DueDate,
		input.AssignedTo,
		creatorID,
	)
	if err != nil {
		return nil, err
	}

	assignee, err := s.userStore.GetByID(ctx, task.AssignedTo)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrAssigneeNotFound
		}
		s.logger.Error("failed to look up assignee",
			"error", err,
			"assigned_to", task.AssignedTo)
		return nil, fmt.Errorf("failed to look up assignee: %w", err)
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"task_id", task.ID,
			"created_by", creatorID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	detail := newTaskDetail(task, assignee)
	s.emit(ctx, events.TaskCreated, task.ID, detail)

	s.logger.Info("task created",
		"task_id", task.ID,
		"created_by", creatorID,
		"assigned_to", task.AssignedTo)
	return detail, nil
}

// Get implements TaskService.Get.
func (s *TaskServiceImpl) Get(ctx context.Context, id, callerID uuid.UUID) (*TaskDetail, error) {
	task, err := s.loadOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	return s.resolveAssignee(ctx, task)
}

// Update implements TaskService.Update.
func (s *TaskServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateTaskInput,
	callerID uuid.UUID,
) (*TaskDetail, error) {
	task, err := s.loadOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = *input.DueDate
	}
	if input.AssignedTo != nil {
		task.AssignedTo = *input.AssignedTo
	}
	task.Touch()

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			return nil, ErrAssigneeNotFound
		}
		s.logger.Error("failed to update task",
			"error", err,
			"task_id", id)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	detail, err := s.resolveAssignee(ctx, task)
	if err != nil {
		// The write has already happened; there is no compensating
		// action for a failed resolve.
		return nil, err
	}

	s.emit(ctx, events.TaskUpdated, task.ID, detail)

	s.logger.Info("task updated",
		"task_id", task.ID,
		"status", string(task.Status))
	return detail, nil
}

// Delete implements TaskService.Delete.
func (s *TaskServiceImpl) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return err
		}
		s.logger.Error("failed to delete task",
			"error", err,
			"task_id", id)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.emit(ctx, events.TaskDeleted, id, nil)

	s.logger.Info("task deleted", "task_id", id)
	return nil
}

// loadOwned fetches the task and enforces the visibility rule: only the
// creator or the assignee may operate on a task.
func (s *TaskServiceImpl) loadOwned(ctx context.Context, id, callerID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, err
		}
		s.logger.Error("failed to get task",
			"error", err,
			"task_id", id)
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if task.CreatedBy != callerID && task.AssignedTo != callerID {
		s.logger.Warn("task access denied",
			"task_id", id,
			"caller_id", callerID)
		return nil, ErrTaskNotOwned
	}

	return task, nil
}

// resolveAssignee attaches the assignee's identity to the task.
func (s *TaskServiceImpl) resolveAssignee(ctx context.Context, task *domain.Task) (*TaskDetail, error) {
	assignee, err := s.userStore.GetByID(ctx, task.AssignedTo)
	if err != nil {
		s.logger.Error("failed to resolve assignee",
			"error", err,
			"task_id", task.ID,
			"assigned_to", task.AssignedTo)
		return nil, fmt.Errorf("failed to resolve assignee: %w", err)
	}
	return newTaskDetail(task, assignee), nil
}

// emit publishes a mutation event. Notification delivery is best effort:
// a failed emit is logged and never fails the operation that caused it.
func (s *TaskServiceImpl) emit(ctx context.Context, eventType string, taskID uuid.UUID, detail *TaskDetail) {
	if s.emitter == nil {
		return
	}

	event, err := events.NewTaskEvent(eventType, taskID, detail)
	if err != nil {
		s.logger.Error("failed to build task event",
			"error", err,
			"event_type", eventType,
			"task_id", taskID)
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit task event",
			"error", err,
			"event_type", eventType,
			"task_id", taskID)
	}
}

func newTaskDetail(task *domain.Task, assignee *domain.User) *TaskDetail {
	return &TaskDetail{
		Task: task,
		Assignee: AssigneeIdentity{
			ID:       assignee.ID,
			Username: assignee.Username,
			Email:    assignee.Email,
		},
	}
}
