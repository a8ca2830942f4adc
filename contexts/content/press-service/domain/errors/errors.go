package errors

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrSlugTaken    = errors.New("slug already in use")
	ErrInvalidPost  = errors.New("post is missing a title or content")
)
