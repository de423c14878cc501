package git

import "errors"

var (
	ErrRepositoryUnreachable = errors.New("repository unreachable")
	ErrBranchNotFound        = errors.New("branch not found")
)
