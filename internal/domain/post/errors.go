package post

import "errors"

// Post domain errors
var (
	ErrPostNotFound   = errors.New("post not found")
	ErrCodeExists     = errors.New("a post with this code already exists")
	ErrTooManyWindows = errors.New("a post supports at most three shift windows")
	ErrNoWindows      = errors.New("a post requires at least one shift window")
)
