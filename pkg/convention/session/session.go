package session

import (
	"context"
	"fmt"

	"github.com/linecard/recorder/pkg/convention/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	ststypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
	"github.com/rs/zerolog/log"
)

type IdentityService interface {
	AssumeRole(ctx context.Context, roleArn, sessionName string) (ststypes.Credentials, error)
}

// RoleAssumptionError means the target account cannot be reached. Callers
// treat it as a skip rather than a failure.
type RoleAssumptionError struct {
	Account string
	RoleArn string
	Err     error
}

func (e *RoleAssumptionError) Error() string {
	return fmt.Sprintf("failed to assume %s in account %s: %v", e.RoleArn, e.Account, e.Err)
}

func (e *RoleAssumptionError) Unwrap() error {
	return e.Err
}

type Services struct {
	Identity IdentityService
}

type Convention struct {
	Config    config.Config
	AwsConfig aws.Config
	Service   Services
}

func FromServices(c config.Config, awsConfig aws.Config, i IdentityService) Convention {
	return Convention{
		Config:    c,
		AwsConfig: awsConfig,
		Service: Services{
			Identity: i,
		},
	}
}

// Session returns AWS configuration acting in account. The caller's own
// account is served by the ambient configuration without touching STS.
func (c Convention) Session(ctx context.Context, account string) (aws.Config, error) {
	if account == c.Config.Caller.Account {
		return c.AwsConfig, nil
	}

	ctx, span := otel.Tracer("").Start(ctx, "session.Session")
	defer span.End()

	roleArn := c.Config.ExecutionRoleArn(account)
	sessionName := c.Config.ExecutionSessionName(account)

	span.SetAttributes(
		attribute.String("account", account),
		attribute.String("role", roleArn),
	)

	log.Ctx(ctx).Debug().
		Str("role", roleArn).
		Str("session", sessionName).
		Msg("assuming execution role")

	creds, err := c.Service.Identity.AssumeRole(ctx, roleArn, sessionName)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return aws.Config{}, &RoleAssumptionError{
			Account: account,
			RoleArn: roleArn,
			Err:     err,
		}
	}

	assumed := c.AwsConfig.Copy()
	assumed.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
		aws.ToString(creds.AccessKeyId),
		aws.ToString(creds.SecretAccessKey),
		aws.ToString(creds.SessionToken),
	))

	return assumed, nil
}
