package dto

import (
	"net/mail"
	"time"

	"github.com/GhofranWarrakia/Task-Management-API/internal/models/task"
	"github.com/GhofranWarrakia/Task-Management-API/internal/models/user"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 string `json:"role"`
}

// Validate возвращает сообщение о первом невалидном поле
func (r RegisterRequest) Validate() string {
	if r.Name == "" {
		return "The name field is required."
	}
	if r.Email == "" {
		return "The email field is required."
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return "The email must be a valid email address."
	}
	if r.Password == "" {
		return "The password field is required."
	}
	if len(r.Password) < 6 {
		return "The password must be at least 6 characters."
	}
	if r.Password != r.PasswordConfirmation {
		return "The password confirmation does not match."
	}
	if !user.Role(r.Role).Valid() {
		return "The selected role is invalid."
	}
	return ""
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() string {
	if r.Email == "" {
		return "The email field is required."
	}
	if r.Password == "" {
		return "The password field is required."
	}
	return ""
}

type TokenResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// TaskRequest обслуживает и POST, и PUT: у обновления семантика
// полной замены, набор обязательных полей тот же
type TaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
}

func (r TaskRequest) Validate() string {
	if r.Title == "" {
		return "The title field is required."
	}
	if !task.Priority(r.Priority).Valid() {
		return "The selected priority is invalid."
	}
	if !task.Status(r.Status).Valid() {
		return "The selected status is invalid."
	}
	return ""
}

func (r TaskRequest) Fields() task.Fields {
	return task.Fields{
		Title:       r.Title,
		Description: r.Description,
		Priority:    task.Priority(r.Priority),
		Status:      task.Status(r.Status),
		DueDate:     r.DueDate,
		AssignedTo:  r.AssignedTo,
	}
}

type AssignRequest struct {
	AssignedTo *uuid.UUID `json:"assigned_to"`
}

func (r AssignRequest) Validate() string {
	if r.AssignedTo == nil {
		return "The assigned_to field is required."
	}
	return ""
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r CreateUserRequest) Validate() string {
	if r.Name == "" {
		return "The name field is required."
	}
	if r.Email == "" {
		return "The email field is required."
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return "The email must be a valid email address."
	}
	if r.Password == "" {
		return "The password field is required."
	}
	if len(r.Password) < 8 {
		return "The password must be at least 8 characters."
	}
	if !user.Role(r.Role).Valid() {
		return "The selected role is invalid."
	}
	return ""
}

// UpdateUserRequest - частичное обновление, nil-поле не трогается
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (r UpdateUserRequest) Validate() string {
	if r.Name != nil && *r.Name == "" {
		return "The name field is required."
	}
	if r.Email != nil {
		if _, err := mail.ParseAddress(*r.Email); err != nil {
			return "The email must be a valid email address."
		}
	}
	if r.Password != nil && len(*r.Password) < 8 {
		return "The password must be at least 8 characters."
	}
	if r.Role != nil && !user.Role(*r.Role).Valid() {
		return "The selected role is invalid."
	}
	return ""
}
