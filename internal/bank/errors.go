package bank

import "errors"

// Recoverable outcome kinds. Each is wrapped in a *Failure carrying the
// message shown to the user; state is left as it was before the call.
var (
	ErrAlreadyLoggedIn  = errors.New("already logged in")
	ErrLoginFailed      = errors.New("login failed")
	ErrCancelled        = errors.New("operation cancelled")
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrInvalidID        = errors.New("invalid id")
	ErrDuplicateID      = errors.New("id taken")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrWrongPassword    = errors.New("wrong password")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrUnknownRecipient = errors.New("unknown recipient")
	ErrNotAdmin         = errors.New("admin only")
)

// Failure is a recoverable outcome: the operation was refused and nothing
// changed. Any other error returned by the ledger is fatal.
type Failure struct {
	Err     error
	Message string
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// IsRecoverable reports whether err is a *Failure.
func IsRecoverable(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}
