package program

import "errors"

var (
	// ErrInvalidGuess rejects guesses outside [MinResult, MaxResult].
	ErrInvalidGuess = errors.New("guess is out of bounds")
	// ErrRequestNotReady gates re-guessing while a recent request is pending.
	ErrRequestNotReady = errors.New("request not ready for a new guess")
	// ErrAlreadySettled rejects settlement when no pending guess exists.
	ErrAlreadySettled = errors.New("request already settled")
	// ErrUnauthorized covers failed signer and account constraints.
	ErrUnauthorized = errors.New("unauthorized")

	ErrAlreadyInitialized = errors.New("program state already initialized")
	ErrNotInitialized     = errors.New("program state not initialized")
	ErrUserExists         = errors.New("user already exists")
	ErrUnknownUser        = errors.New("unknown user")
	ErrInvalidJob         = errors.New("job does not accept requests")
)
