package service

import "errors"

// Common service errors
var (
	// ErrTaskNotOwned is returned when the caller is neither the creator
	// nor the assignee of the task they are trying to access.
	ErrTaskNotOwned = errors.New("task does not belong to the caller")

	// ErrAssigneeNotFound is returned when a task references an assignee
	// that does not exist.
	ErrAssigneeNotFound = errors.New("assigned user does not exist")
)
