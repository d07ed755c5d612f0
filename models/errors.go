package models

import "errors"

var (
	ErrInvalidEmail   = errors.New("email must contain @")
	ErrEmptyPassword  = errors.New("password must not be empty")
	ErrEmptyAnswer    = errors.New("security answer must not be empty")
	ErrEmptyTaskText  = errors.New("task text must not be empty")
	ErrEmptyVoiceTask = errors.New("a voice note is required")
	ErrInvalidDueDate = errors.New("due date must be YYYY-MM-DDTHH:MM")
)
