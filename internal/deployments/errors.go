package deployments

import "errors"

var (
	ErrNotFound          = errors.New("deployment not found")
	ErrValidation        = errors.New("invalid deployment request")
	ErrInvalidState      = errors.New("invalid deployment state")
	ErrCancelUnsupported = errors.New("provider does not support cancellation")
)
