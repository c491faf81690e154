package handler

import (
	"context"
	"errors"
	"testing"

	"presignup-linker/internal/auth"
	"presignup-linker/internal/auth/resolver"
	"presignup-linker/internal/directory"
	"presignup-linker/internal/directory/directorytest"
	"presignup-linker/internal/middleware"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPool = "eu-west-1_pool"

func fixedPassword() (string, error) {
	return "Fixed-Password-1234", nil
}

func newEvent(triggerSource, userName string) events.CognitoEventUserPoolsPreSignup {
	var event events.CognitoEventUserPoolsPreSignup
	event.TriggerSource = triggerSource
	event.UserPoolID = testPool
	event.UserName = userName
	event.Request.UserAttributes = map[string]string{
		"email": "a@x.com",
	}
	return event
}

func newTestHandler(dir directory.Directory) *Handler {
	return NewHandler(resolver.NewDirectoryResolver(dir, fixedPassword))
}

func TestPreSignUp_NoExistingUser(t *testing.T) {
	dir := &directorytest.Recorder{}
	h := newTestHandler(dir)

	out, err := h.PreSignUp(context.Background(), newEvent(TriggerSourceExternalProvider, "Google_998877"))
	require.NoError(t, err)

	assert.True(t, out.Response.AutoConfirmUser)
	assert.True(t, out.Response.AutoVerifyEmail)

	calls := dir.Calls()
	require.Equal(t, []string{
		directorytest.OpSearchUsers,
		directorytest.OpCreateUser,
		directorytest.OpSetUserPassword,
		directorytest.OpLinkProviderForUser,
	}, dir.Ops())

	assert.Equal(t, "a@x.com", calls[1].Create.Username)
	assert.Equal(t, "a@x.com", calls[2].Password.Username)

	link := calls[3].Link
	assert.Equal(t, "998877", link.Source.AttributeValue)
	assert.Equal(t, "Google", link.Source.ProviderName)
	assert.Equal(t, "a@x.com", link.Destination.AttributeValue)
}

func TestPreSignUp_ExistingUser(t *testing.T) {
	dir := &directorytest.Recorder{
		Users: []directory.User{{Username: "native-42"}},
	}
	h := newTestHandler(dir)

	out, err := h.PreSignUp(context.Background(), newEvent(TriggerSourceExternalProvider, "Google_998877"))
	require.NoError(t, err)

	assert.True(t, out.Response.AutoConfirmUser)
	assert.True(t, out.Response.AutoVerifyEmail)

	require.Equal(t, []string{
		directorytest.OpSearchUsers,
		directorytest.OpLinkProviderForUser,
	}, dir.Ops())

	link := dir.Calls()[1].Link
	assert.Equal(t, "998877", link.Source.AttributeValue)
	assert.Equal(t, "native-42", link.Destination.AttributeValue)
	assert.Equal(t, "Google", link.Source.ProviderName)
}

func TestPreSignUp_LowercaseProviderIsNormalized(t *testing.T) {
	dir := &directorytest.Recorder{
		Users: []directory.User{{Username: "native-42"}},
	}
	h := newTestHandler(dir)

	_, err := h.PreSignUp(context.Background(), newEvent(TriggerSourceExternalProvider, "facebook_1234"))
	require.NoError(t, err)

	assert.Equal(t, "Facebook", dir.Calls()[1].Link.Source.ProviderName)
}

func TestPreSignUp_NativeSignupsPassThrough(t *testing.T) {
	for _, source := range []string{TriggerSourceAdminCreateUser, TriggerSourceSignUp} {
		t.Run(source, func(t *testing.T) {
			dir := &directorytest.Recorder{}
			h := newTestHandler(dir)

			in := newEvent(source, "a@x.com")
			in.Request.UserAttributes["cognito:user_status"] = "UNCONFIRMED"

			out, err := h.PreSignUp(context.Background(), in)
			require.NoError(t, err)

			assert.Equal(t, in, out)
			assert.False(t, out.Response.AutoConfirmUser)
			assert.False(t, out.Response.AutoVerifyEmail)
			assert.Empty(t, dir.Calls())
		})
	}
}

func TestPreSignUp_MalformedUsername(t *testing.T) {
	dir := &directorytest.Recorder{}
	h := newTestHandler(dir)

	out, err := h.PreSignUp(context.Background(), newEvent(TriggerSourceExternalProvider, "Google998877"))
	assert.ErrorIs(t, err, auth.ErrMalformedUsername)
	assert.False(t, out.Response.AutoConfirmUser)
	assert.Empty(t, dir.Calls())
}

func TestPreSignUp_MissingEmail(t *testing.T) {
	dir := &directorytest.Recorder{}
	h := newTestHandler(dir)

	event := newEvent(TriggerSourceExternalProvider, "Google_998877")
	delete(event.Request.UserAttributes, "email")

	_, err := h.PreSignUp(context.Background(), event)
	assert.ErrorIs(t, err, ErrMissingEmail)
	assert.Empty(t, dir.Calls())
}

func TestPreSignUp_DirectoryErrorPropagates(t *testing.T) {
	boom := errors.New("directory unavailable")
	dir := &directorytest.Recorder{
		Errors: map[string]error{directorytest.OpCreateUser: boom},
	}
	h := newTestHandler(dir)

	out, err := h.PreSignUp(context.Background(), newEvent(TriggerSourceExternalProvider, "Google_998877"))
	assert.ErrorIs(t, err, boom)
	assert.False(t, out.Response.AutoConfirmUser)
	assert.False(t, out.Response.AutoVerifyEmail)
	assert.NotContains(t, dir.Ops(), directorytest.OpLinkProviderForUser)
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, requestID(context.Background()))

	lambdaCtx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{
		AwsRequestID: "lambda-req-1",
	})
	assert.Equal(t, "lambda-req-1", requestID(lambdaCtx))

	httpCtx := middleware.WithRequestID(lambdaCtx, "http-req-1")
	assert.Equal(t, "http-req-1", requestID(httpCtx))
}
