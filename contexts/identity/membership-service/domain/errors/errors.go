package errors

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRole    = errors.New("unknown role")
)
