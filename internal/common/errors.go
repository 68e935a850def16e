// Package common defines sentinel errors shared by the repositories, services
// and HTTP layer of the quiz server. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Account errors.
	ErrDuplicateUsername   = errors.New("username already taken")
	ErrUnknownUser         = errors.New("unknown user")
	ErrBadPassword         = errors.New("bad password")
	ErrInvalidCredentials  = errors.New("username and password are required")
	ErrPasswordTooLong     = errors.New("password is too long")
	ErrUnauthenticated     = errors.New("login required")
	ErrUnsupportedHashType = errors.New("unsupported password hash")

	// Quiz errors.
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidQuestion  = errors.New("invalid question")
	ErrQuizFinished     = errors.New("quiz already finished")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
