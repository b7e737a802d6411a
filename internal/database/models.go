package database

import (
	"errors"
	"fmt"
)

// ErrNoGeneratedKey is returned when an insert completes without
// handing back the identifier assigned by the store.
var ErrNoGeneratedKey = errors.New("insert returned no generated key")

type Account struct {
	Id       int
	Username string
	Password string
}

type Message struct {
	Id              int
	PostedBy        int
	MessageText     string
	TimePostedEpoch int64
}

type CreateAccountParams struct {
	Username string
	Password string
}

type CreateMessageParams struct {
	PostedBy        int
	MessageText     string
	TimePostedEpoch int64
}

// StorageError reports a failed query or connection against the store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
