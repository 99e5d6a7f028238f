package service

import "fmt"

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

const (
	CodeNotFound           = "NOT_FOUND"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeForbidden          = "FORBIDDEN"
	CodeNotDeleted         = "NOT_DELETED"
)

func NewNotFound(resource string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// сообщение называет первое невалидное поле, как и требует контракт API
func NewValidationError(message string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidationError,
		Message: message,
	}
}

func NewDuplicateEmail() *BusinessError {
	return &BusinessError{
		Code:    CodeDuplicateEmail,
		Message: "The email has already been taken.",
	}
}

// один и тот же ответ для неизвестного email и неверного пароля,
// чтобы нельзя было перебирать адреса
func NewInvalidCredentials() *BusinessError {
	return &BusinessError{
		Code:    CodeInvalidCredentials,
		Message: "Invalid credentials",
	}
}

func NewForbidden() *BusinessError {
	return &BusinessError{
		Code:    CodeForbidden,
		Message: "This action is unauthorized.",
	}
}

func NewNotDeleted(resource string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotDeleted,
		Message: fmt.Sprintf("%s is not deleted", resource),
	}
}
