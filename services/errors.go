package services

import "errors"

// Payment core error taxonomy. Checkout errors surface to the initiating
// caller; notification errors are logged and audited but never surfaced to
// the gateway as a processing failure, except ErrPersistenceFailure which
// must produce a 5xx so the gateway retries.
var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrDuplicatePayment   = errors.New("payment already finalized for this order")
	ErrUnknownOrder       = errors.New("no payment record for order")
	ErrInvalidSignature   = errors.New("notification hash verification failed")
	ErrUnmappedStatus     = errors.New("unrecognized gateway status code")
	ErrConflictingStatus  = errors.New("notification conflicts with recorded terminal status")
	ErrPersistenceFailure = errors.New("payment store unavailable")
)
