/*
Package fault defines the error classes of this module.

Every error returned by an operation belongs to exactly one class;
individual errors are declared in their domain packages as typed
constants so that callers can match either the exact error with
errors.Is or the whole class with errors.As.
*/
package fault

// GenericError - a string based error to allow constant error values.
type GenericError string

// error classes
type (
	// ValidationError - malformed metadata: length, share, uses or
	// overflow violations. Recoverable by resubmitting corrected input.
	ValidationError GenericError

	// AuthorizationError - the acting principal is not permitted to
	// perform the operation.
	AuthorizationError GenericError

	// QuotaError - mint request or tree capacity exhausted; additional
	// approval is required before retrying.
	QuotaError GenericError

	// ProofError - supplied leaf contents or proof do not match the
	// committed tree state; refetch and retry.
	ProofError GenericError

	// StateError - the target record is missing or in the wrong
	// lifecycle state for the operation.
	StateError GenericError
)

func (e GenericError) Error() string { return string(e) }

func (e ValidationError) Error() string { return string(e) }

func (e AuthorizationError) Error() string { return string(e) }

func (e QuotaError) Error() string { return string(e) }

func (e ProofError) Error() string { return string(e) }

func (e StateError) Error() string { return string(e) }
