package repository

import "errors"

var (
	// ErrResultNotFound indicates no cached result exists for the text
	ErrResultNotFound = errors.New("analysis result not found")

	// ErrRepositoryUnavailable indicates the repository is unavailable
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)
