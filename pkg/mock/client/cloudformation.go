package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/stretchr/testify/mock"
)

type MockCloudFormationClient struct {
	mock.Mock
}

func (m *MockCloudFormationClient) ListStackInstances(ctx context.Context, params *cloudformation.ListStackInstancesInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ListStackInstancesOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*cloudformation.ListStackInstancesOutput), args.Error(1)
}
