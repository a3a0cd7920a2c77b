package auth

import "errors"

// Sign-in rejections shown to the admin. There is no lockout or backoff
// policy; the provider throttles on its side.
var (
	ErrAccountNotFound = errors.New("auth: no account exists for this email")
	ErrWrongCredential = errors.New("auth: wrong email or password")
	ErrMalformedEmail  = errors.New("auth: email address is malformed")
	ErrSignInFailed    = errors.New("auth: sign-in failed")
)

// Message returns the user-facing text for a sign-in error.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return "No account exists for this email."
	case errors.Is(err, ErrWrongCredential):
		return "Invalid credentials. Please try again."
	case errors.Is(err, ErrMalformedEmail):
		return "That email address doesn't look right."
	default:
		return "Sign-in failed. Please try again later."
	}
}
