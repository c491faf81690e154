package directory

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"user not found", &smithy.GenericAPIError{Code: "UserNotFoundException"}, KindNotFound},
		{"pool not found", &smithy.GenericAPIError{Code: "ResourceNotFoundException"}, KindNotFound},
		{"not authorized", &smithy.GenericAPIError{Code: "NotAuthorizedException"}, KindUnauthorized},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDeniedException"}, KindUnauthorized},
		{"throttled", &smithy.GenericAPIError{Code: "TooManyRequestsException"}, KindTransient},
		{"internal", &smithy.GenericAPIError{Code: "InternalErrorException"}, KindTransient},
		{"invalid parameter", &smithy.GenericAPIError{Code: "InvalidParameterException"}, KindValidation},
		{"username exists", &smithy.GenericAPIError{Code: "UsernameExistsException"}, KindValidation},
		{"invalid password", &smithy.GenericAPIError{Code: "InvalidPasswordException"}, KindValidation},
		{"unknown server fault", &smithy.GenericAPIError{Code: "Whatever", Fault: smithy.FaultServer}, KindTransient},
		{"unknown client fault", &smithy.GenericAPIError{Code: "Whatever", Fault: smithy.FaultClient}, KindUnknown},
		{"wrapped api error", fmt.Errorf("operation error: %w", &smithy.GenericAPIError{Code: "UserNotFoundException"}), KindNotFound},
		{"deadline", context.DeadlineExceeded, KindTransient},
		{"network", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, KindTransient},
		{"plain", errors.New("boom"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify("ListUsers", tt.err)

			var de *Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "ListUsers", de.Op)
			assert.Equal(t, tt.want, de.Kind)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, classify("ListUsers", nil))
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("lookup: %w", newError("ListUsers", KindTransient, errors.New("slow down")))

	assert.Equal(t, KindTransient, KindOf(err))
	assert.True(t, IsRetryable(err))

	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(newError("AdminCreateUser", KindValidation, errors.New("bad"))))
}

func TestError_Message(t *testing.T) {
	err := newError("AdminLinkProviderForUser", KindNotFound, errors.New("user does not exist"))

	assert.Equal(t, "directory: AdminLinkProviderForUser (not_found): user does not exist", err.Error())
}
