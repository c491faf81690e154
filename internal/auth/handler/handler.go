package handler

import (
	"context"
	"errors"
	"fmt"

	"presignup-linker/internal/auth"
	"presignup-linker/internal/auth/resolver"
	"presignup-linker/internal/logger"
	"presignup-linker/internal/middleware"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

const (
	TriggerSourceExternalProvider = "PreSignUp_ExternalProvider"
	TriggerSourceSignUp           = "PreSignUp_SignUp"
	TriggerSourceAdminCreateUser  = "PreSignUp_AdminCreateUser"
)

// ErrMissingEmail is returned when a federated signup carries no email attribute.
var ErrMissingEmail = errors.New("signup event has no email attribute")

type Handler struct {
	resolver resolver.Resolver
}

func NewHandler(resolver resolver.Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// PreSignUp reconciles federated signups with native accounts. Events from
// any other trigger source are returned unchanged.
func (h *Handler) PreSignUp(
	ctx context.Context,
	event events.CognitoEventUserPoolsPreSignup,
) (events.CognitoEventUserPoolsPreSignup, error) {

	logger.Info("pre signup event", map[string]any{
		"request_id":     requestID(ctx),
		"trigger_source": event.TriggerSource,
		"user_pool_id":   event.UserPoolID,
		"user_name":      event.UserName,
	})

	if event.TriggerSource != TriggerSourceExternalProvider {
		return event, nil
	}

	// userName looks like "Facebook_12324325436" or "google_1237823478"
	identity, err := auth.ParseUsername(event.UserName)
	if err != nil {
		return event, fmt.Errorf("%w: %q", err, event.UserName)
	}

	email := event.Request.UserAttributes["email"]
	if email == "" {
		return event, ErrMissingEmail
	}

	res, err := h.resolver.Resolve(ctx, resolver.Signup{
		PoolID:     event.UserPoolID,
		Identity:   identity,
		Email:      email,
		Attributes: event.Request.UserAttributes,
	})
	if err != nil {
		return event, err
	}

	event.Response.AutoConfirmUser = true
	event.Response.AutoVerifyEmail = true

	logger.Info("pre signup resolved", map[string]any{
		"request_id":   requestID(ctx),
		"user_pool_id": event.UserPoolID,
		"provider":     identity.Provider,
		"action":       string(res.Action),
		"username":     res.Username,
	})

	return event, nil
}

func requestID(ctx context.Context) string {
	if id, ok := middleware.RequestIDFromContext(ctx); ok {
		return id
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return ""
}
