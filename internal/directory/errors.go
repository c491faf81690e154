package directory

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/aws/smithy-go"
)

// Kind classifies a directory failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindUnauthorized
	KindTransient
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindTransient:
		return "transient"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is a failed directory operation. The underlying error is kept so
// callers can still inspect SDK-specific details.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("directory: %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err, or KindUnknown if err is not a directory error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// IsRetryable reports whether retrying the failed operation may succeed.
func IsRetryable(err error) bool {
	return KindOf(err) == KindTransient
}

func newError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// classify maps an SDK error to a directory Error.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	return newError(op, kindFor(err), err)
}

func kindFor(err error) Kind {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UserNotFoundException",
			"ResourceNotFoundException":
			return KindNotFound
		case "NotAuthorizedException",
			"AccessDeniedException",
			"UnrecognizedClientException",
			"ExpiredTokenException",
			"InvalidClientTokenId":
			return KindUnauthorized
		case "TooManyRequestsException",
			"LimitExceededException",
			"ThrottlingException",
			"InternalErrorException",
			"ServiceUnavailable":
			return KindTransient
		case "InvalidParameterException",
			"InvalidPasswordException",
			"UsernameExistsException",
			"AliasExistsException",
			"UnsupportedUserStateException",
			"ValidationException":
			return KindValidation
		}

		if apiErr.ErrorFault() == smithy.FaultServer {
			return KindTransient
		}
		return KindUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransient
	}

	return KindUnknown
}
