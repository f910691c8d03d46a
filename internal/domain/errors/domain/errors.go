// Package domain provides domain-specific error definitions and utilities.
package domain

import "errors"

// Animal-related errors.
var (
	ErrAnimalNotFound = errors.New("animal not found")
	ErrUnknownAnimal  = errors.New("animal is not in the point table")
	ErrDuplicateID    = errors.New("animal ID already exists in collection")
)

// Storage-related errors.
var (
	ErrStorageRead  = errors.New("unable to read storage")
	ErrStorageWrite = errors.New("unable to write storage")
)

// General domain errors.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnrecognizedCommand = errors.New("unrecognized command")
)
