package identity

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/aws-sdk-go-v2/service/sts/types"
)

type STSClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

type Client struct {
	Sts STSClient
}

type Service struct {
	Client Client
}

func FromClients(stsClient STSClient) Service {
	return Service{
		Client: Client{
			Sts: stsClient,
		},
	}
}

func (s Service) WhoAmI(ctx context.Context) (*sts.GetCallerIdentityOutput, error) {
	return s.Client.Sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
}

// AssumeRole returns the temporary credentials issued for roleArn.
func (s Service) AssumeRole(ctx context.Context, roleArn, sessionName string) (types.Credentials, error) {
	assumeRoleOutput, err := s.Client.Sts.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleArn),
		RoleSessionName: aws.String(sessionName),
	})
	if err != nil {
		return types.Credentials{}, err
	}

	if assumeRoleOutput.Credentials == nil {
		return types.Credentials{}, fmt.Errorf("assume role %s returned no credentials", roleArn)
	}

	return *assumeRoleOutput.Credentials, nil
}
