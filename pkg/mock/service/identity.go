package mock

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ststypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
	"github.com/stretchr/testify/mock"
)

type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) AssumeRole(ctx context.Context, roleArn, sessionName string) (ststypes.Credentials, error) {
	args := m.Called(ctx, roleArn, sessionName)
	return args.Get(0).(ststypes.Credentials), args.Error(1)
}

func MockCredentials() ststypes.Credentials {
	return ststypes.Credentials{
		AccessKeyId:     aws.String("ASIAMOCKACCESSKEY"),
		SecretAccessKey: aws.String("mockSecretAccessKey"),
		SessionToken:    aws.String("mockSessionToken"),
		Expiration:      aws.Time(time.Now().Add(time.Hour)),
	}
}
