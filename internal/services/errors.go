// Package services defines the business logic for preferences, the dog
// catalog, the interaction ledger and the next-dog selector. This file
// centralizes service-level error values so they can be returned by service
// methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed in
// the handler layer.
package services

import "errors"

var (
	// ErrInvalidStatus is returned for a status word outside liked,
	// disliked and undecided.
	ErrInvalidStatus = errors.New("status must be one of liked, disliked, undecided")

	// ErrInvalidPreference wraps a code that does not belong to its set.
	ErrInvalidPreference = errors.New("invalid preference")

	// ErrInvalidDog is returned when a dog to be created fails validation.
	ErrInvalidDog = errors.New("invalid dog")

	// ErrNoDogFound means no dog satisfies the filter after the cursor.
	ErrNoDogFound = errors.New("no dog found")

	// ErrDogNotFound indicates that the referenced dog does not exist.
	ErrDogNotFound = errors.New("dog not found")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmptyUsername is returned when username or password is blank.
	ErrEmptyUsername = errors.New("username and password are required")

	// ErrInvalidCredentials is returned by Login for an unknown user or a
	// wrong password.
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")

	// ErrUnauthenticated is returned for an unknown token.
	ErrUnauthenticated = errors.New("invalid token")
)
