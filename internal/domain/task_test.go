package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	assignee := uuid.New()
	creator := uuid.New()
	due := time.Now().Add(48 * time.Hour)

	task, err := NewTask("  Write report  ", " quarterly numbers ", TaskPriorityHigh, due, assignee, creator)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	// Title and description are trimmed
	if task.Title != "Write report" {
		t.Errorf("Expected trimmed title, got %q", task.Title)
	}

	if task.Description != "quarterly numbers" {
		t.Errorf("Expected trimmed description, got %q", task.Description)
	}

	// Status is forced to TODO on creation
	if task.Status != TaskStatusTodo {
		t.Errorf("Expected status %s, got %s", TaskStatusTodo, task.Status)
	}

	if task.Priority != TaskPriorityHigh {
		t.Errorf("Expected priority %s, got %s", TaskPriorityHigh, task.Priority)
	}

	if task.AssignedTo != assignee {
		t.Errorf("Expected assignee %s, got %s", assignee, task.AssignedTo)
	}

	if task.CreatedBy != creator {
		t.Errorf("Expected creator %s, got %s", creator, task.CreatedBy)
	}

	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}
}

func TestNewTaskDefaultsPriority(t *testing.T) {
	task, err := NewTask("Write report", "", "", time.Now(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Priority != TaskPriorityMedium {
		t.Errorf("Expected default priority %s, got %s", TaskPriorityMedium, task.Priority)
	}
}

func TestNewTaskValidation(t *testing.T) {
	assignee := uuid.New()
	creator := uuid.New()
	due := time.Now()

	// Empty or whitespace-only title
	if _, err := NewTask("", "", TaskPriorityLow, due, assignee, creator); err != ErrEmptyTaskTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskTitle, err)
	}

	if _, err := NewTask("   ", "", TaskPriorityLow, due, assignee, creator); err != ErrEmptyTaskTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskTitle, err)
	}

	// Missing due date
	if _, err := NewTask("Title", "", TaskPriorityLow, time.Time{}, assignee, creator); err != ErrMissingDueDate {
		t.Errorf("Expected error %v, got %v", ErrMissingDueDate, err)
	}

	// Unknown priority
	if _, err := NewTask("Title", "", "URGENT", due, assignee, creator); err != ErrInvalidPriority {
		t.Errorf("Expected error %v, got %v", ErrInvalidPriority, err)
	}

	// Missing assignee
	if _, err := NewTask("Title", "", TaskPriorityLow, due, uuid.Nil, creator); err != ErrMissingAssignee {
		t.Errorf("Expected error %v, got %v", ErrMissingAssignee, err)
	}

	// Missing creator
	if _, err := NewTask("Title", "", TaskPriorityLow, due, assignee, uuid.Nil); err != ErrMissingCreator {
		t.Errorf("Expected error %v, got %v", ErrMissingCreator, err)
	}
}

func TestTaskValidateStatus(t *testing.T) {
	task, err := NewTask("Title", "", TaskPriorityLow, time.Now(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	task.Status = "DONE"
	if err := task.Validate(); err != ErrInvalidStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidStatus, err)
	}

	for _, status := range []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted} {
		task.Status = status
		if err := task.Validate(); err != nil {
			t.Errorf("Expected status %s to be valid, got %v", status, err)
		}
	}
}

func TestTaskStatusIsValid(t *testing.T) {
	valid := []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("Expected status %s to be valid", s)
		}
	}

	invalid := []TaskStatus{"", "todo", "DONE", "PENDING"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("Expected status %s to be invalid", s)
		}
	}
}

func TestTaskPriorityIsValid(t *testing.T) {
	valid := []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
	for _, p := range valid {
		if !p.IsValid() {
			t.Errorf("Expected priority %s to be valid", p)
		}
	}

	invalid := []TaskPriority{"", "low", "URGENT"}
	for _, p := range invalid {
		if p.IsValid() {
			t.Errorf("Expected priority %s to be invalid", p)
		}
	}
}

func TestTaskTouch(t *testing.T) {
	task, err := NewTask("Title", "", TaskPriorityLow, time.Now(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before := task.UpdatedAt
	time.Sleep(time.Millisecond)
	task.Touch()

	if !task.UpdatedAt.After(before) {
		t.Error("Expected UpdatedAt to advance after Touch")
	}
}
