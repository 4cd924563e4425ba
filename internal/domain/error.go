package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrAlreadyExists   = errors.New("entity already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthenticated = errors.New("authentication required")
	ErrAccountInactive = errors.New("account is not active")

	// Activation errors
	ErrCodeNotFound    = errors.New("redemption code not found")
	ErrCodeAlreadyUsed = errors.New("redemption code already used")
	ErrInvalidData     = errors.New("stored data is invalid")

	// Infra errors
	ErrInvalidExecContext = errors.New("invalid executor context")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
)
