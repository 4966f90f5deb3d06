package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrVectorNotFound signals a missing item vector record.
	ErrVectorNotFound = errors.New("vector not found")
	// ErrInvalidArtifact signals a malformed or inconsistent model artifact.
	ErrInvalidArtifact = errors.New("invalid model artifact")
	// ErrUpstream signals a reasoning-service transport failure.
	ErrUpstream = errors.New("upstream reasoning service error")
)
