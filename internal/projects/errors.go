package projects

import "errors"

var (
	ErrNotFound   = errors.New("project not found")
	ErrNotAllowed = errors.New("operation not allowed")
)
