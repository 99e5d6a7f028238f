package repository

import "errors"

var ErrNotFound = errors.New("запись не найдена")
var ErrDuplicateEmail = errors.New("email уже занят")
var ErrNotDeleted = errors.New("запись не удалена")
