package directory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// CognitoAPI is the part of the Cognito user pools client used by Cognito.
type CognitoAPI interface {
	ListUsers(ctx context.Context, params *cip.ListUsersInput, optFns ...func(*cip.Options)) (*cip.ListUsersOutput, error)
	AdminCreateUser(ctx context.Context, params *cip.AdminCreateUserInput, optFns ...func(*cip.Options)) (*cip.AdminCreateUserOutput, error)
	AdminSetUserPassword(ctx context.Context, params *cip.AdminSetUserPasswordInput, optFns ...func(*cip.Options)) (*cip.AdminSetUserPasswordOutput, error)
	AdminLinkProviderForUser(ctx context.Context, params *cip.AdminLinkProviderForUserInput, optFns ...func(*cip.Options)) (*cip.AdminLinkProviderForUserOutput, error)
}

// CognitoOptions configures the Cognito client. Empty fields fall back to
// the default AWS configuration chain.
type CognitoOptions struct {
	Region    string
	Endpoint  string // e.g. a local emulator
	AccessKey string
	SecretKey string
}

// Cognito implements Directory on top of Amazon Cognito user pools.
type Cognito struct {
	api CognitoAPI
}

func NewCognito(api CognitoAPI) *Cognito {
	return &Cognito{api: api}
}

// NewCognitoFromOptions loads AWS configuration and builds a Cognito directory.
func NewCognitoFromOptions(ctx context.Context, opts CognitoOptions) (*Cognito, error) {
	var loadOpts []func(*config.LoadOptions) error

	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := cip.NewFromConfig(awsConfig, func(o *cip.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	return NewCognito(client), nil
}

func (c *Cognito) SearchUsers(ctx context.Context, poolID string, filter Filter) ([]User, error) {
	out, err := c.api.ListUsers(ctx, &cip.ListUsersInput{
		UserPoolId: aws.String(poolID),
		Filter:     aws.String(filter.String()),
	})
	if err != nil {
		return nil, classify("ListUsers", err)
	}

	users := make([]User, 0, len(out.Users))
	for _, u := range out.Users {
		users = append(users, fromUserType(u.Username, u.UserStatus, u.Enabled, u.Attributes))
	}

	return users, nil
}

func (c *Cognito) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	params := &cip.AdminCreateUserInput{
		UserPoolId:     aws.String(in.PoolID),
		Username:       aws.String(in.Username),
		UserAttributes: toAttributeTypes(in.Attributes),
	}
	if in.SuppressMessage {
		params.MessageAction = types.MessageActionTypeSuppress
	}

	out, err := c.api.AdminCreateUser(ctx, params)
	if err != nil {
		return nil, classify("AdminCreateUser", err)
	}

	if out.User == nil {
		return &User{}, nil
	}

	u := fromUserType(out.User.Username, out.User.UserStatus, out.User.Enabled, out.User.Attributes)
	return &u, nil
}

func (c *Cognito) SetUserPassword(ctx context.Context, in SetPasswordInput) error {
	_, err := c.api.AdminSetUserPassword(ctx, &cip.AdminSetUserPasswordInput{
		UserPoolId: aws.String(in.PoolID),
		Username:   aws.String(in.Username),
		Password:   aws.String(in.Password),
		Permanent:  in.Permanent,
	})
	return classify("AdminSetUserPassword", err)
}

func (c *Cognito) LinkProviderForUser(ctx context.Context, poolID string, link LinkRequest) error {
	_, err := c.api.AdminLinkProviderForUser(ctx, &cip.AdminLinkProviderForUserInput{
		UserPoolId:      aws.String(poolID),
		SourceUser:      toProviderUser(link.Source),
		DestinationUser: toProviderUser(link.Destination),
	})
	return classify("AdminLinkProviderForUser", err)
}

func fromUserType(username *string, status types.UserStatusType, enabled bool, attrs []types.AttributeType) User {
	u := User{
		Username:   aws.ToString(username),
		Status:     string(status),
		Enabled:    enabled,
		Attributes: make(map[string]string, len(attrs)),
	}
	for _, a := range attrs {
		u.Attributes[aws.ToString(a.Name)] = aws.ToString(a.Value)
	}
	return u
}

func toAttributeTypes(attrs []Attribute) []types.AttributeType {
	out := make([]types.AttributeType, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, types.AttributeType{
			Name:  aws.String(a.Name),
			Value: aws.String(a.Value),
		})
	}
	return out
}

func toProviderUser(p ProviderIdentity) *types.ProviderUserIdentifierType {
	id := &types.ProviderUserIdentifierType{
		ProviderName:           aws.String(p.ProviderName),
		ProviderAttributeValue: aws.String(p.AttributeValue),
	}
	if p.AttributeName != "" {
		id.ProviderAttributeName = aws.String(p.AttributeName)
	}
	return id
}
