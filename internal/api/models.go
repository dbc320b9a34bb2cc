package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/bodasandeepsai/task-manager/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the public identity of a user: the fields exposed to
// other users and embedded in auth responses. Never carries a password
// in any form.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// AuthResponse defines the successful response for authentication
// endpoints. The token itself travels in the HTTP-only cookie, not the
// body.
type AuthResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
}

// CreateTaskRequest defines the payload for task creation. Any
// caller-supplied status is ignored: new tasks always start as TODO.
type CreateTaskRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"    validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     time.Time `json:"due_date"    validate:"required"`
	AssignedTo  uuid.UUID `json:"assigned_to" validate:"required"`
}

// UpdateTaskRequest defines the partial field set accepted by the task
// update endpoint. Absent fields leave the stored value untouched.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"   validate:"omitempty,oneof=TODO IN_PROGRESS COMPLETED"`
	Priority    *string    `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
}

// TaskResponse is the representation of a task returned by every task
// endpoint, with the assignee's identity resolved.
type TaskResponse struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	DueDate     time.Time    `json:"due_date"`
	AssignedTo  UserResponse `json:"assigned_to"`
	CreatedBy   uuid.UUID    `json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// AdviceRequest defines the payload for the AI advice endpoint.
type AdviceRequest struct {
	Message string `json:"message" validate:"required"`
}

// AdviceResponse carries the sanitized plain-text reply.
type AdviceResponse struct {
	Response string `json:"response"`
}

// MessageResponse is a simple confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// newUserResponse builds the public view of a user.
func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
