package errors

import "errors"

var ErrUnauthorized = errors.New("unauthorized")

var ErrOutlineNotFound = errors.New("контур не найден")

var ErrOutlineAlreadyExists = errors.New("контур с таким именем уже существует")
